package quality

import (
	"fmt"

	"pixel-veil/internal/models"
	"pixel-veil/internal/parallel"
)

// BT.601 luma weights in 14-bit fixed point, the same integer coefficients
// OpenCV uses for COLOR_BGR2GRAY on 8-bit data, so results match it exactly.
const (
	grayShift = 14
	grayRound = 1 << (grayShift - 1)
	yB        = 1868
	yG        = 9617
	yR        = 4899
)

// Grayscale reduces a BGR grid to single-channel luma. A single-channel grid
// is returned as a copy.
func Grayscale(src *models.PixelGrid, workers int) (*models.PixelGrid, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}

	switch src.Channels {
	case 1:
		return src.Clone(), nil
	case 3:
	default:
		return nil, fmt.Errorf("%w: grayscale needs 1 or 3 channels, got %d", models.ErrShapeMismatch, src.Channels)
	}

	gray, err := models.NewPixelGrid(src.Height, src.Width, 1)
	if err != nil {
		return nil, err
	}

	parallel.Rows(src.Height, workers, func(start, end int) {
		in := src.Pix[start*src.Stride() : end*src.Stride()]
		out := gray.Pix[start*src.Width : end*src.Width]
		for i := range out {
			b, g, r := uint32(in[i*3]), uint32(in[i*3+1]), uint32(in[i*3+2])
			out[i] = uint8((b*yB + g*yG + r*yR + grayRound) >> grayShift)
		}
	})

	return gray, nil
}
