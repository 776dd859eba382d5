// Package conversion moves PixelGrids in and out of OpenCV and provides the
// OpenCV-backed resampler and image backend.
package conversion

import (
	"fmt"

	"pixel-veil/internal/models"
	"pixel-veil/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// GridToMat copies a grid into a new 8-bit Mat. Grids are BGR, so a
// 3-channel result is directly usable by OpenCV colour routines.
func GridToMat(grid *models.PixelGrid) (*safe.Mat, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}

	matType, err := safe.MatTypeForChannels(grid.Channels)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrShapeMismatch, err)
	}

	return safe.NewMatFromBytes(grid.Height, grid.Width, matType, grid.Pix)
}

// MatToGrid copies an 8-bit Mat into a new grid
func MatToGrid(src *safe.Mat) (*models.PixelGrid, error) {
	if err := safe.ValidateMatForOperation(src, "Mat to grid conversion"); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}
	if err := safe.ValidateMatType(src.Type(), "Mat to grid conversion"); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrShapeMismatch, err)
	}

	data, err := src.Bytes()
	if err != nil {
		return nil, err
	}

	return models.NewPixelGridFromBytes(src.Rows(), src.Cols(), src.Channels(), data)
}

// ConvertToGrayscale converts multi-channel images to single-channel grayscale
func ConvertToGrayscale(src *safe.Mat) (*safe.Mat, error) {
	if err := safe.ValidateMatForOperation(src, "grayscale conversion"); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if src.Channels() == 1 {
		return src.Clone()
	}

	dst := gocv.NewMat()
	srcMat := src.GetMat()

	switch src.Channels() {
	case 3:
		gocv.CvtColor(srcMat, &dst, gocv.ColorBGRToGray)
	case 4:
		gocv.CvtColor(srcMat, &dst, gocv.ColorBGRAToGray)
	default:
		dst.Close()
		return nil, fmt.Errorf("unsupported channel count: %d", src.Channels())
	}

	return safe.Own(dst)
}

// GrayscaleGrid reduces a BGR grid to luma through OpenCV
func GrayscaleGrid(grid *models.PixelGrid) (*models.PixelGrid, error) {
	mat, err := GridToMat(grid)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	gray, err := ConvertToGrayscale(mat)
	if err != nil {
		return nil, err
	}
	defer gray.Close()

	return MatToGrid(gray)
}
