package imageio

import (
	"fmt"
	"path/filepath"
	"strings"

	"pixel-veil/internal/models"
)

// Format is a file format identified by extension
type Format string

const (
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
	FormatJPEG Format = "jpeg"
	FormatWebP Format = "webp"
	FormatGIF  Format = "gif"
)

// FormatFromPath determines the format from a file extension
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, true
	case ".bmp":
		return FormatBMP, true
	case ".tif", ".tiff":
		return FormatTIFF, true
	case ".jpg", ".jpeg", ".jpe", ".jfif":
		return FormatJPEG, true
	case ".webp":
		return FormatWebP, true
	case ".gif":
		return FormatGIF, true
	default:
		return "", false
	}
}

// Lossless reports whether a format stores 8-bit samples exactly. GIF is
// palette based and counts as lossy for colour images.
func (f Format) Lossless() bool {
	switch f {
	case FormatPNG, FormatBMP, FormatTIFF:
		return true
	default:
		return false
	}
}

// CheckLosslessPath validates that path names a lossless output format
func CheckLosslessPath(path string) (Format, error) {
	format, ok := FormatFromPath(path)
	if !ok {
		return "", fmt.Errorf("%w: unsupported output extension %q", models.ErrWrite, filepath.Ext(path))
	}
	if !format.Lossless() {
		return "", fmt.Errorf("%w: %s would corrupt the hidden nibbles, use png", models.ErrLossySink, format)
	}
	return format, nil
}
