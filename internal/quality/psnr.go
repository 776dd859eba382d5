package quality

import (
	"fmt"
	"math"

	"pixel-veil/internal/models"
	"pixel-veil/internal/parallel"

	"gonum.org/v1/gonum/floats"
)

// IdenticalPSNR is reported instead of +Inf when two grids are equal
const IdenticalPSNR = 100.0

const maxSample = 255.0

// MSE is the mean squared difference over every sample of two equally shaped
// grids. Differences are taken in full precision, not modulo 256.
func MSE(reference, candidate *models.PixelGrid, workers int) (float64, error) {
	if err := reference.Validate(); err != nil {
		return 0, err
	}
	if err := candidate.Validate(); err != nil {
		return 0, err
	}
	if !reference.SameShape(candidate) {
		return 0, fmt.Errorf("%w: MSE inputs %s and %s", models.ErrShapeMismatch, reference, candidate)
	}

	stride := reference.Stride()
	rowSums := make([]float64, reference.Height)
	parallel.Rows(reference.Height, workers, func(start, end int) {
		for r := start; r < end; r++ {
			a := reference.Pix[r*stride : (r+1)*stride]
			b := candidate.Pix[r*stride : (r+1)*stride]
			var sum int64
			for i := range a {
				d := int64(a[i]) - int64(b[i])
				sum += d * d
			}
			rowSums[r] = float64(sum)
		}
	})

	return floats.Sum(rowSums) / float64(reference.Len()), nil
}

// PSNRFromMSE converts a mean squared error to decibels for 8-bit data
func PSNRFromMSE(mse float64) float64 {
	if mse == 0 {
		return IdenticalPSNR
	}
	return 10 * math.Log10(maxSample*maxSample/mse)
}

// PSNR returns the peak signal-to-noise ratio of two equally shaped grids
func PSNR(reference, candidate *models.PixelGrid, workers int) (float64, error) {
	mse, err := MSE(reference, candidate, workers)
	if err != nil {
		return 0, err
	}
	return PSNRFromMSE(mse), nil
}
