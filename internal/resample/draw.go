package resample

import (
	"image"

	"pixel-veil/internal/models"

	xdraw "golang.org/x/image/draw"
)

// drawResampler uses the golang.org/x/image/draw interpolators
type drawResampler struct {
	method Method
	kernel xdraw.Interpolator
}

func newDrawResampler(method Method) *drawResampler {
	var kernel xdraw.Interpolator
	switch method {
	case Nearest:
		kernel = xdraw.NearestNeighbor
	case CatmullRom:
		kernel = xdraw.CatmullRom
	default:
		kernel = xdraw.BiLinear
	}
	return &drawResampler{method: method, kernel: kernel}
}

func (d *drawResampler) Method() Method {
	return d.method
}

func (d *drawResampler) Resample(src *models.PixelGrid, width, height int) (*models.PixelGrid, error) {
	if err := checkTarget(src, width, height); err != nil {
		return nil, err
	}
	if src.Width == width && src.Height == height {
		return src.Clone(), nil
	}

	in := packRGBA(src)
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	d.kernel.Scale(out, out.Bounds(), in, in.Bounds(), xdraw.Src, nil)

	return unpackRGBA(out, src.Channels)
}

// packRGBA places up to three channels into the colour slots of an opaque
// RGBA image. Channel order is preserved slot for slot; the interpolators act
// on each slot independently, so no colour conversion happens.
func packRGBA(g *models.PixelGrid) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	c := g.Channels
	for y := 0; y < g.Height; y++ {
		src := g.Pix[y*g.Stride() : (y+1)*g.Stride()]
		dst := img.Pix[y*img.Stride : y*img.Stride+g.Width*4]
		for x := 0; x < g.Width; x++ {
			copy(dst[x*4:x*4+c], src[x*c:x*c+c])
			dst[x*4+3] = 255
		}
	}
	return img
}

func unpackRGBA(img *image.RGBA, channels int) (*models.PixelGrid, error) {
	b := img.Bounds()
	grid, err := models.NewPixelGrid(b.Dy(), b.Dx(), channels)
	if err != nil {
		return nil, err
	}

	for y := 0; y < grid.Height; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
		dst := grid.Pix[y*grid.Stride() : (y+1)*grid.Stride()]
		for x := 0; x < grid.Width; x++ {
			copy(dst[x*channels:x*channels+channels], row[x*4:x*4+channels])
		}
	}
	return grid, nil
}
