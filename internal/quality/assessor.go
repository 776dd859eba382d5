// Package quality scores how close two images are with PSNR and SSIM.
package quality

import (
	"fmt"

	"pixel-veil/internal/models"
	"pixel-veil/internal/resample"
)

// Score is the similarity of a candidate image to a reference
type Score struct {
	PSNR float64 // decibels, IdenticalPSNR for equal images
	SSIM float64 // in [-1, 1], 1 for identical luma
	MSE  float64
}

// Options configures an Assessor
type Options struct {
	// Resampler brings a differently sized candidate to the reference's size.
	// Nil selects resample.DefaultMethod.
	Resampler resample.Resampler
	Workers   int
}

// Assessor computes quality scores. It is stateless apart from configuration.
type Assessor struct {
	resampler resample.Resampler
	workers   int
}

// NewAssessor creates an assessor
func NewAssessor(opts Options) (*Assessor, error) {
	rs := opts.Resampler
	if rs == nil {
		var err error
		rs, err = resample.New(resample.DefaultMethod)
		if err != nil {
			return nil, err
		}
	}
	return &Assessor{resampler: rs, workers: opts.Workers}, nil
}

// Score compares candidate against reference. A candidate of a different
// height or width is resampled to the reference first; differing channel
// counts are rejected. SSIM is computed on BT.601 luma, PSNR on all colour
// samples.
func (a *Assessor) Score(reference, candidate *models.PixelGrid) (Score, error) {
	if err := reference.Validate(); err != nil {
		return Score{}, fmt.Errorf("reference: %w", err)
	}
	if err := candidate.Validate(); err != nil {
		return Score{}, fmt.Errorf("candidate: %w", err)
	}
	if reference.Channels != candidate.Channels {
		return Score{}, fmt.Errorf("%w: reference has %d channels, candidate has %d",
			models.ErrShapeMismatch, reference.Channels, candidate.Channels)
	}

	if !candidate.SameSize(reference) {
		resampled, err := a.resampler.Resample(candidate, reference.Width, reference.Height)
		if err != nil {
			return Score{}, fmt.Errorf("resampling candidate to %dx%d: %w", reference.Width, reference.Height, err)
		}
		candidate = resampled
	}

	refGray, err := Grayscale(reference, a.workers)
	if err != nil {
		return Score{}, err
	}
	candGray, err := Grayscale(candidate, a.workers)
	if err != nil {
		return Score{}, err
	}

	ssim, err := SSIM(refGray, candGray, a.workers)
	if err != nil {
		return Score{}, err
	}

	mse, err := MSE(reference, candidate, a.workers)
	if err != nil {
		return Score{}, err
	}

	return Score{PSNR: PSNRFromMSE(mse), SSIM: ssim, MSE: mse}, nil
}
