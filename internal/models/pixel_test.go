package models

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPixelGrid(t *testing.T) {
	g, err := NewPixelGrid(2, 3, Channels)
	require.NoError(t, err)
	assert.Len(t, g.Pix, 18)
	assert.Equal(t, 9, g.Stride())
	assert.Equal(t, "3x2x3", g.String())

	_, err = NewPixelGrid(0, 3, Channels)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestValidate(t *testing.T) {
	var nilGrid *PixelGrid
	assert.True(t, errors.Is(nilGrid.Validate(), ErrInvalidInput))
	assert.True(t, errors.Is((&PixelGrid{Height: 1, Width: 1, Channels: 3}).Validate(), ErrInvalidInput))

	_, err := NewPixelGridFromBytes(1, 2, 3, make([]uint8, 5))
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestAtSetClone(t *testing.T) {
	g, err := NewPixelGrid(2, 2, Channels)
	require.NoError(t, err)

	g.Set(1, 0, 2, 77)
	assert.Equal(t, uint8(77), g.At(1, 0, 2))
	assert.Equal(t, uint8(77), g.Pix[(1*2+0)*3+2])

	c := g.Clone()
	c.Set(1, 0, 2, 1)
	assert.Equal(t, uint8(77), g.At(1, 0, 2))
	assert.True(t, c.SameShape(g))
}

func TestImageRoundTripKeepsBGROrder(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 200, G: 100, B: 0, A: 255})

	g, err := FromImage(img)
	require.NoError(t, err)
	assert.Equal(t, []uint8{30, 20, 10, 0, 100, 200}, g.Pix)
	assert.Equal(t, color.RGBA{R: 200, G: 100, B: 0, A: 255}, g.ColorAt(0, 1))

	back, err := g.ToImage()
	require.NoError(t, err)
	assert.Equal(t, img.Pix, back.(*image.RGBA).Pix)
}

func TestFromImageOffsetBounds(t *testing.T) {
	img := image.NewNRGBA(image.Rect(5, 5, 7, 6))
	img.SetNRGBA(6, 5, color.NRGBA{R: 1, G: 2, B: 3, A: 255})

	g, err := FromImage(img)
	require.NoError(t, err)
	assert.Equal(t, 2, g.Width)
	assert.Equal(t, 1, g.Height)
	assert.Equal(t, []uint8{3, 2, 1}, g.Pix[3:6])
}

func TestFromImageGray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 1, 1))
	img.SetGray(0, 0, color.Gray{Y: 99})

	g, err := FromImage(img)
	require.NoError(t, err)
	assert.Equal(t, []uint8{99, 99, 99}, g.Pix)
}

func TestToImageGray(t *testing.T) {
	g, err := NewPixelGridFromBytes(1, 2, 1, []uint8{5, 6})
	require.NoError(t, err)

	img, err := g.ToImage()
	require.NoError(t, err)
	assert.Equal(t, []uint8{5, 6}, img.(*image.Gray).Pix)
}

func TestFromImageNil(t *testing.T) {
	_, err := FromImage(nil)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}
