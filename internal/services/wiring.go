package services

import (
	"fmt"

	"pixel-veil/internal/codec"
	"pixel-veil/internal/config"
	"pixel-veil/internal/imageio"
	"pixel-veil/internal/logger"
	"pixel-veil/internal/quality"
	"pixel-veil/internal/resample"
)

// FromConfig builds a StegoService with the backend, resampler and output
// locations named in cfg.
func FromConfig(cfg *config.Config, log logger.Logger) (*StegoService, error) {
	backend, err := imageio.NewBackend(cfg.Processing.Backend)
	if err != nil {
		return nil, err
	}

	rs, err := resample.New(cfg.InterpolationMethod())
	if err != nil {
		return nil, fmt.Errorf("interpolation: %w", err)
	}

	c, err := codec.New(codec.Options{Resampler: rs, Workers: cfg.Processing.Workers})
	if err != nil {
		return nil, err
	}

	assessor, err := quality.NewAssessor(quality.Options{Resampler: rs, Workers: cfg.Processing.Workers})
	if err != nil {
		return nil, err
	}

	log.Debug("Stego service configured", map[string]interface{}{
		"backend":       backend.Name,
		"interpolation": string(rs.Method()),
		"workers":       cfg.Processing.Workers,
	})

	return NewStegoService(
		NewImageService(backend, log),
		c,
		assessor,
		OutputSettings{
			CarrierDir:    cfg.Output.CarrierDir,
			CarrierBase:   cfg.Output.CarrierBase,
			RecoveredDir:  cfg.Output.RecoveredDir,
			RecoveredBase: cfg.Output.RecoveredBase,
		},
		log,
	), nil
}
