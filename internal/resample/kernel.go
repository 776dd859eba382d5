package resample

import (
	"image"
	"image/draw"

	"pixel-veil/internal/models"

	"github.com/nfnt/resize"
)

// kernelResampler uses the separable convolution kernels of nfnt/resize
type kernelResampler struct {
	method Method
	interp resize.InterpolationFunction
}

func newKernelResampler(method Method) *kernelResampler {
	interp := resize.Bicubic
	if method == Lanczos {
		interp = resize.Lanczos3
	}
	return &kernelResampler{method: method, interp: interp}
}

func (k *kernelResampler) Method() Method {
	return k.method
}

func (k *kernelResampler) Resample(src *models.PixelGrid, width, height int) (*models.PixelGrid, error) {
	if err := checkTarget(src, width, height); err != nil {
		return nil, err
	}
	if src.Width == width && src.Height == height {
		return src.Clone(), nil
	}

	scaled := resize.Resize(uint(width), uint(height), packRGBA(src), k.interp)

	out, ok := scaled.(*image.RGBA)
	if !ok {
		out = image.NewRGBA(image.Rect(0, 0, width, height))
		draw.Draw(out, out.Bounds(), scaled, scaled.Bounds().Min, draw.Src)
	}
	return unpackRGBA(out, src.Channels)
}
