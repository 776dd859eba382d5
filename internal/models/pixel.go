package models

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// Channels is the fixed sample count per pixel. Samples are stored in BGR
// order, the native layout of OpenCV Mats, so grids coming from either image
// backend are interchangeable.
const Channels = 3

// PixelGrid is a height x width x channel array of 8-bit samples, row-major.
type PixelGrid struct {
	Height   int
	Width    int
	Channels int
	Pix      []uint8
}

// NewPixelGrid allocates a zeroed grid of the given shape
func NewPixelGrid(height, width, channels int) (*PixelGrid, error) {
	if height <= 0 || width <= 0 || channels <= 0 {
		return nil, fmt.Errorf("%w: grid shape %dx%dx%d", ErrInvalidInput, height, width, channels)
	}
	return &PixelGrid{
		Height:   height,
		Width:    width,
		Channels: channels,
		Pix:      make([]uint8, height*width*channels),
	}, nil
}

// NewPixelGridFromBytes wraps an existing sample buffer after checking its length
func NewPixelGridFromBytes(height, width, channels int, pix []uint8) (*PixelGrid, error) {
	g := &PixelGrid{Height: height, Width: width, Channels: channels, Pix: pix}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Validate reports ErrInvalidInput for nil, zero-area or inconsistent grids
func (g *PixelGrid) Validate() error {
	if g == nil {
		return fmt.Errorf("%w: grid is nil", ErrInvalidInput)
	}
	if g.Height <= 0 || g.Width <= 0 || g.Channels <= 0 {
		return fmt.Errorf("%w: zero-area grid %dx%dx%d", ErrInvalidInput, g.Height, g.Width, g.Channels)
	}
	if len(g.Pix) != g.Height*g.Width*g.Channels {
		return fmt.Errorf("%w: buffer holds %d samples, shape %dx%dx%d needs %d",
			ErrInvalidInput, len(g.Pix), g.Height, g.Width, g.Channels, g.Height*g.Width*g.Channels)
	}
	return nil
}

// Stride is the number of samples in one row
func (g *PixelGrid) Stride() int {
	return g.Width * g.Channels
}

// Len is the total number of samples
func (g *PixelGrid) Len() int {
	return len(g.Pix)
}

// SameShape reports whether both grids have identical height, width and channels
func (g *PixelGrid) SameShape(other *PixelGrid) bool {
	return g.Height == other.Height && g.Width == other.Width && g.Channels == other.Channels
}

// SameSize reports whether both grids have identical height and width
func (g *PixelGrid) SameSize(other *PixelGrid) bool {
	return g.Height == other.Height && g.Width == other.Width
}

// Clone returns a deep copy
func (g *PixelGrid) Clone() *PixelGrid {
	pix := make([]uint8, len(g.Pix))
	copy(pix, g.Pix)
	return &PixelGrid{Height: g.Height, Width: g.Width, Channels: g.Channels, Pix: pix}
}

// At returns the sample at row, col, channel
func (g *PixelGrid) At(row, col, channel int) uint8 {
	return g.Pix[(row*g.Width+col)*g.Channels+channel]
}

// Set stores the sample at row, col, channel
func (g *PixelGrid) Set(row, col, channel int, value uint8) {
	g.Pix[(row*g.Width+col)*g.Channels+channel] = value
}

// String describes the grid shape
func (g *PixelGrid) String() string {
	return fmt.Sprintf("%dx%dx%d", g.Width, g.Height, g.Channels)
}

// ToImage converts a BGR grid to an RGBA image for display or encoding.
// Single-channel grids become *image.Gray.
func (g *PixelGrid) ToImage() (image.Image, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	switch g.Channels {
	case 1:
		img := image.NewGray(image.Rect(0, 0, g.Width, g.Height))
		for y := 0; y < g.Height; y++ {
			copy(img.Pix[y*img.Stride:y*img.Stride+g.Width], g.Pix[y*g.Width:(y+1)*g.Width])
		}
		return img, nil
	case 3:
		img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
		for y := 0; y < g.Height; y++ {
			src := g.Pix[y*g.Stride() : (y+1)*g.Stride()]
			dst := img.Pix[y*img.Stride : y*img.Stride+g.Width*4]
			for x := 0; x < g.Width; x++ {
				dst[x*4+0] = src[x*3+2]
				dst[x*4+1] = src[x*3+1]
				dst[x*4+2] = src[x*3+0]
				dst[x*4+3] = 255
			}
		}
		return img, nil
	default:
		return nil, fmt.Errorf("%w: cannot render %d channels", ErrShapeMismatch, g.Channels)
	}
}

// FromImage converts any decoded image into a 3-channel BGR grid. Alpha is
// dropped; premultiplied colours are un-premultiplied via NRGBA first.
func FromImage(img image.Image) (*PixelGrid, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: image is nil", ErrInvalidInput)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	grid, err := NewPixelGrid(height, width, Channels)
	if err != nil {
		return nil, err
	}

	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		nrgba = image.NewNRGBA(image.Rect(0, 0, width, height))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	}

	for y := 0; y < height; y++ {
		src := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+width*4]
		dst := grid.Pix[y*grid.Stride() : (y+1)*grid.Stride()]
		for x := 0; x < width; x++ {
			dst[x*3+0] = src[x*4+2]
			dst[x*3+1] = src[x*4+1]
			dst[x*3+2] = src[x*4+0]
		}
	}

	return grid, nil
}

// ColorAt returns the colour of a 3-channel grid at row, col
func (g *PixelGrid) ColorAt(row, col int) color.RGBA {
	i := (row*g.Width + col) * g.Channels
	return color.RGBA{R: g.Pix[i+2], G: g.Pix[i+1], B: g.Pix[i], A: 255}
}
