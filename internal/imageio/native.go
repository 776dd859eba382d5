package imageio

import (
	"bufio"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"

	"pixel-veil/internal/models"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// NativeLoader decodes with the standard library and golang.org/x/image
type NativeLoader struct{}

// Load implements Loader
func (NativeLoader) Load(path string) (*models.PixelGrid, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrDecode, err)
	}
	defer file.Close()

	img, _, err := image.Decode(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", models.ErrDecode, path, err)
	}

	grid, err := models.FromImage(img)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", models.ErrDecode, path, err)
	}
	return grid, nil
}

// NativeWriter encodes PNG, BMP or TIFF depending on the extension
type NativeWriter struct{}

// Write implements Writer
func (NativeWriter) Write(grid *models.PixelGrid, path string) (err error) {
	format, err := CheckLosslessPath(path)
	if err != nil {
		return err
	}

	img, err := grid.ToImage()
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrWrite, err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrWrite, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %v", models.ErrWrite, cerr)
		}
	}()

	w := bufio.NewWriter(file)
	switch format {
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		err = png.Encode(w, img)
	}
	if err != nil {
		return fmt.Errorf("%w: encoding %s: %v", models.ErrWrite, path, err)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("%w: %v", models.ErrWrite, err)
	}
	return nil
}
