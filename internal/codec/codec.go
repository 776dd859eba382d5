// Package codec hides one image in the low nibble of another.
//
// Every output sample depends only on the co-located input samples, so both
// directions run as one pass over the flat sample buffer split into row
// chunks. Carriers must be stored losslessly: any lossy encoder rewrites the
// low nibbles and the hidden image is gone.
package codec

import (
	"fmt"

	"pixel-veil/internal/models"
	"pixel-veil/internal/parallel"
	"pixel-veil/internal/resample"
)

const (
	highNibble = 0xF0
	lowNibble  = 0x0F
	nibbleBits = 4
)

// Options configures a Codec
type Options struct {
	// Resampler reconciles a secret whose size differs from the cover.
	// Nil selects resample.DefaultMethod.
	Resampler resample.Resampler

	// Workers bounds the goroutines used per call; <= 0 means one per CPU.
	Workers int
}

// Codec embeds and reveals images. It holds configuration only and is safe
// for concurrent use.
type Codec struct {
	resampler resample.Resampler
	workers   int
}

// New creates a codec
func New(opts Options) (*Codec, error) {
	rs := opts.Resampler
	if rs == nil {
		var err error
		rs, err = resample.New(resample.DefaultMethod)
		if err != nil {
			return nil, err
		}
	}
	return &Codec{resampler: rs, workers: opts.Workers}, nil
}

// Resampler returns the configured shape reconciliation policy
func (c *Codec) Resampler() resample.Resampler {
	return c.resampler
}

// Embed returns a carrier whose high nibbles are the cover's and whose low
// nibbles are the top four bits of the secret. A secret of a different size is
// first resampled to the cover's height and width. Neither input is modified.
func (c *Codec) Embed(cover, secret *models.PixelGrid) (*models.PixelGrid, error) {
	if err := cover.Validate(); err != nil {
		return nil, fmt.Errorf("cover: %w", err)
	}
	if err := secret.Validate(); err != nil {
		return nil, fmt.Errorf("secret: %w", err)
	}
	if cover.Channels != secret.Channels {
		return nil, fmt.Errorf("%w: cover has %d channels, secret has %d",
			models.ErrShapeMismatch, cover.Channels, secret.Channels)
	}

	if !secret.SameSize(cover) {
		resampled, err := c.resampler.Resample(secret, cover.Width, cover.Height)
		if err != nil {
			return nil, fmt.Errorf("resampling secret to %dx%d: %w", cover.Width, cover.Height, err)
		}
		secret = resampled
	}

	carrier := &models.PixelGrid{
		Height:   cover.Height,
		Width:    cover.Width,
		Channels: cover.Channels,
		Pix:      make([]uint8, len(cover.Pix)),
	}

	stride := cover.Stride()
	parallel.Rows(cover.Height, c.workers, func(start, end int) {
		lo, hi := start*stride, end*stride
		embedSamples(carrier.Pix[lo:hi], cover.Pix[lo:hi], secret.Pix[lo:hi])
	})

	return carrier, nil
}

// Reveal rebuilds the hidden image from a carrier's low nibbles. Each sample
// is the nibble scaled by 16, so the result is a multiple of 16 in [0, 240].
func (c *Codec) Reveal(carrier *models.PixelGrid) (*models.PixelGrid, error) {
	if err := carrier.Validate(); err != nil {
		return nil, fmt.Errorf("carrier: %w", err)
	}

	recovered := &models.PixelGrid{
		Height:   carrier.Height,
		Width:    carrier.Width,
		Channels: carrier.Channels,
		Pix:      make([]uint8, len(carrier.Pix)),
	}

	stride := carrier.Stride()
	parallel.Rows(carrier.Height, c.workers, func(start, end int) {
		lo, hi := start*stride, end*stride
		revealSamples(recovered.Pix[lo:hi], carrier.Pix[lo:hi])
	})

	return recovered, nil
}

func embedSamples(dst, cover, secret []uint8) {
	secret = secret[:len(dst)]
	cover = cover[:len(dst)]
	for i := range dst {
		dst[i] = EmbedSample(cover[i], secret[i])
	}
}

func revealSamples(dst, carrier []uint8) {
	carrier = carrier[:len(dst)]
	for i := range dst {
		dst[i] = RevealSample(carrier[i])
	}
}

// EmbedSample combines one cover and one secret sample
func EmbedSample(cover, secret uint8) uint8 {
	reduced := secret >> nibbleBits
	return (cover & highNibble) | (reduced & lowNibble)
}

// RevealSample recovers one secret sample. This is not an inverse of
// EmbedSample: the secret's low nibble was discarded and comes back as zero.
func RevealSample(carrier uint8) uint8 {
	return (carrier & lowNibble) << nibbleBits
}
