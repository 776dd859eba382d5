package services

import (
	"context"
	"fmt"
	"time"

	"pixel-veil/internal/codec"
	"pixel-veil/internal/logger"
	"pixel-veil/internal/models"
	"pixel-veil/internal/quality"
)

// OutputSettings says where produced images go
type OutputSettings struct {
	CarrierDir    string
	CarrierBase   string
	RecoveredDir  string
	RecoveredBase string
}

// OperationResult is what a hide or extract produced, with the image it was
// derived from for side-by-side display.
type OperationResult struct {
	Input    *models.ImageData
	Output   *models.ImageData
	Duration time.Duration
}

// MetricsResult is a quality score together with the compared images
type MetricsResult struct {
	Reference *models.ImageData
	Candidate *models.ImageData
	Score     quality.Score
	Duration  time.Duration
}

// StegoService runs the user-facing operations: load, transform, persist
type StegoService struct {
	images   *ImageService
	codec    *codec.Codec
	assessor *quality.Assessor
	output   OutputSettings
	logger   logger.Logger
}

// NewStegoService creates a new stego service
func NewStegoService(
	images *ImageService,
	c *codec.Codec,
	assessor *quality.Assessor,
	output OutputSettings,
	log logger.Logger,
) *StegoService {
	return &StegoService{
		images:   images,
		codec:    c,
		assessor: assessor,
		output:   output,
		logger:   log,
	}
}

// Output returns where carriers and recovered images are written
func (s *StegoService) Output() OutputSettings {
	return s.output
}

// HideImage embeds the secret image into the cover and stores the carrier
func (s *StegoService) HideImage(ctx context.Context, coverPath, secretPath string) (*OperationResult, error) {
	start := time.Now()

	cover, err := s.images.LoadImage(ctx, coverPath)
	if err != nil {
		return nil, fmt.Errorf("loading cover: %w", err)
	}
	secret, err := s.images.LoadImage(ctx, secretPath)
	if err != nil {
		return nil, fmt.Errorf("loading secret: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !secret.Grid.SameSize(cover.Grid) {
		s.logger.Info("Resampling secret to cover size", map[string]interface{}{
			"secret": secret.Grid.String(),
			"cover":  cover.Grid.String(),
			"method": string(s.codec.Resampler().Method()),
		})
	}

	carrier, err := s.codec.Embed(cover.Grid, secret.Grid)
	if err != nil {
		return nil, fmt.Errorf("embedding: %w", err)
	}

	saved, err := s.images.SaveNext(ctx, carrier, s.output.CarrierDir, s.output.CarrierBase)
	if err != nil {
		return nil, fmt.Errorf("saving carrier: %w", err)
	}

	result := &OperationResult{Input: cover, Output: saved, Duration: time.Since(start)}
	s.logger.Info("Secret image hidden", map[string]interface{}{
		"cover":    coverPath,
		"secret":   secretPath,
		"carrier":  saved.Path,
		"duration": result.Duration.String(),
	})
	return result, nil
}

// ExtractImage recovers the hidden image from a carrier and stores it
func (s *StegoService) ExtractImage(ctx context.Context, carrierPath string) (*OperationResult, error) {
	start := time.Now()

	carrier, err := s.images.LoadImage(ctx, carrierPath)
	if err != nil {
		return nil, fmt.Errorf("loading carrier: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	recovered, err := s.codec.Reveal(carrier.Grid)
	if err != nil {
		return nil, fmt.Errorf("revealing: %w", err)
	}

	saved, err := s.images.SaveNext(ctx, recovered, s.output.RecoveredDir, s.output.RecoveredBase)
	if err != nil {
		return nil, fmt.Errorf("saving extracted image: %w", err)
	}

	result := &OperationResult{Input: carrier, Output: saved, Duration: time.Since(start)}
	s.logger.Info("Secret image extracted", map[string]interface{}{
		"carrier":   carrierPath,
		"extracted": saved.Path,
		"duration":  result.Duration.String(),
	})
	return result, nil
}

// CalculateMetrics scores a carrier against the cover it was made from
func (s *StegoService) CalculateMetrics(ctx context.Context, coverPath, carrierPath string) (*MetricsResult, error) {
	start := time.Now()

	cover, err := s.images.LoadImage(ctx, coverPath)
	if err != nil {
		return nil, fmt.Errorf("loading cover: %w", err)
	}
	carrier, err := s.images.LoadImage(ctx, carrierPath)
	if err != nil {
		return nil, fmt.Errorf("loading carrier: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	score, err := s.assessor.Score(cover.Grid, carrier.Grid)
	if err != nil {
		return nil, fmt.Errorf("scoring: %w", err)
	}

	result := &MetricsResult{Reference: cover, Candidate: carrier, Score: score, Duration: time.Since(start)}
	s.logger.Info("Quality metrics calculated", map[string]interface{}{
		"cover":   coverPath,
		"carrier": carrierPath,
		"psnr":    score.PSNR,
		"ssim":    score.SSIM,
	})
	return result, nil
}
