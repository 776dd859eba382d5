package services

import (
	"context"
	"fmt"
	"time"

	"pixel-veil/internal/imageio"
	"pixel-veil/internal/logger"
	"pixel-veil/internal/models"
)

// ImageService handles image loading and saving through one image backend
type ImageService struct {
	backend imageio.Backend
	logger  logger.Logger
}

// NewImageService creates a new image service
func NewImageService(backend imageio.Backend, log logger.Logger) *ImageService {
	return &ImageService{backend: backend, logger: log}
}

// BackendName reports which image library is in use
func (is *ImageService) BackendName() string {
	return is.backend.Name
}

// LoadImage decodes path into a BGR grid
func (is *ImageService) LoadImage(ctx context.Context, path string) (*models.ImageData, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if path == "" {
		return nil, fmt.Errorf("%w: no file selected", models.ErrInvalidInput)
	}

	start := time.Now()
	grid, err := is.backend.Loader.Load(path)
	if err != nil {
		is.logger.Error("Image load failed", err, map[string]interface{}{"path": path})
		return nil, err
	}

	format, _ := imageio.FormatFromPath(path)
	is.logger.Debug("Image loaded", map[string]interface{}{
		"path":     path,
		"size":     grid.String(),
		"backend":  is.backend.Name,
		"duration": time.Since(start).String(),
	})

	return &models.ImageData{
		Grid:     grid,
		Path:     path,
		Format:   string(format),
		LoadTime: time.Now(),
	}, nil
}

// SaveNext writes grid to the next free dir/base_N.png and returns its path
func (is *ImageService) SaveNext(ctx context.Context, grid *models.PixelGrid, dir, base string) (*models.ImageData, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	path, err := imageio.NextFilename(dir, base)
	if err != nil {
		return nil, err
	}

	if err := is.backend.Writer.Write(grid, path); err != nil {
		is.logger.Error("Image write failed", err, map[string]interface{}{"path": path})
		return nil, err
	}

	is.logger.Debug("Image written", map[string]interface{}{
		"path":    path,
		"size":    grid.String(),
		"backend": is.backend.Name,
	})

	return &models.ImageData{
		Grid:     grid,
		Path:     path,
		Format:   string(imageio.FormatPNG),
		LoadTime: time.Now(),
	}, nil
}
