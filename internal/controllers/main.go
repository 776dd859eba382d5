package controllers

import (
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"sync"
	"time"

	"pixel-veil/internal/logger"
	"pixel-veil/internal/models"
	"pixel-veil/internal/services"
)

// View is what the controller needs from the presentation layer. All methods
// must be safe to call from any goroutine.
type View interface {
	UpdateStatus(message string)
	ShowComparison(leftTitle string, left image.Image, rightTitle string, right image.Image)
	SetProcessingActive(active bool)

	// ChooseImage asks the user for a file; onChosen receives "" on cancel
	ChooseImage(title, startDir string, extensions []string, onChosen func(path string))
}

var (
	inputExtensions   = []string{".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff", ".webp"}
	carrierExtensions = []string{".png", ".bmp", ".tif", ".tiff"}
)

// SampleDir is where the image pickers for cover and secret start
const SampleDir = "SampleImages"

// MainController orchestrates the five user actions
type MainController struct {
	stego     *services.StegoService
	session   *models.SessionRepository
	stateRepo *models.ProcessingStateRepository
	logger    logger.Logger

	view View

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewMainController creates a new main controller
func NewMainController(
	stego *services.StegoService,
	session *models.SessionRepository,
	stateRepo *models.ProcessingStateRepository,
	log logger.Logger,
) *MainController {
	ctx, cancel := context.WithCancel(context.Background())
	return &MainController{
		stego:     stego,
		session:   session,
		stateRepo: stateRepo,
		logger:    log,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// SetView associates the view with this controller
func (mc *MainController) SetView(view View) {
	mc.view = view
}

// UploadCover lets the user pick the cover image
func (mc *MainController) UploadCover() {
	mc.view.ChooseImage("Select Cover Image", SampleDir, inputExtensions, func(path string) {
		if path == "" {
			return
		}
		mc.session.SetCoverPath(path)
		mc.logger.Info("Cover image selected", map[string]interface{}{"path": path})
		mc.view.UpdateStatus(fmt.Sprintf("✅ Cover Image: %s loaded", filepath.Base(path)))
	})
}

// UploadSecret lets the user pick the secret image
func (mc *MainController) UploadSecret() {
	mc.view.ChooseImage("Select Secret Image", SampleDir, inputExtensions, func(path string) {
		if path == "" {
			return
		}
		mc.session.SetSecretPath(path)
		mc.logger.Info("Secret image selected", map[string]interface{}{"path": path})
		mc.view.UpdateStatus(fmt.Sprintf("✅ Secret Image: %s loaded", filepath.Base(path)))
	})
}

// HideImage embeds the selected secret into the selected cover
func (mc *MainController) HideImage() {
	if !mc.session.Ready() {
		mc.view.UpdateStatus("❌ Please upload both cover and secret images first")
		return
	}

	coverPath, secretPath := mc.session.CoverPath(), mc.session.SecretPath()
	mc.run(models.OperationHide, "Hiding secret image", func(ctx context.Context) error {
		result, err := mc.stego.HideImage(ctx, coverPath, secretPath)
		if err != nil {
			mc.session.Record(models.OperationRecord{Operation: models.OperationHide, InputPath: coverPath, Err: err})
			return err
		}

		mc.session.Record(models.OperationRecord{
			Operation:  models.OperationHide,
			InputPath:  coverPath,
			OutputPath: result.Output.Path,
			Duration:   result.Duration,
		})
		mc.view.UpdateStatus(fmt.Sprintf("✅ Secret image hidden and saved as: %s", filepath.Base(result.Output.Path)))
		mc.showComparison("Cover Image", result.Input, "Encrypted Image", result.Output)
		return nil
	})
}

// ExtractImage recovers the secret from a carrier the user picks
func (mc *MainController) ExtractImage() {
	startDir := mc.stego.Output().CarrierDir
	mc.view.ChooseImage("Select Encrypted Image", startDir, carrierExtensions, func(carrierPath string) {
		if carrierPath == "" {
			return
		}

		mc.run(models.OperationExtract, "Extracting secret image", func(ctx context.Context) error {
			result, err := mc.stego.ExtractImage(ctx, carrierPath)
			if err != nil {
				mc.session.Record(models.OperationRecord{Operation: models.OperationExtract, InputPath: carrierPath, Err: err})
				return err
			}

			mc.session.Record(models.OperationRecord{
				Operation:  models.OperationExtract,
				InputPath:  carrierPath,
				OutputPath: result.Output.Path,
				Duration:   result.Duration,
			})
			mc.view.UpdateStatus(fmt.Sprintf("✅ Secret image extracted and saved as: %s", filepath.Base(result.Output.Path)))
			mc.showComparison("Encrypted Image", result.Input, "Extracted Secret", result.Output)
			return nil
		})
	})
}

// CalculateMetrics scores a carrier the user picks against the selected cover
func (mc *MainController) CalculateMetrics() {
	coverPath := mc.session.CoverPath()
	if coverPath == "" {
		mc.view.UpdateStatus("❌ Please upload cover image first")
		return
	}

	startDir := mc.stego.Output().CarrierDir
	mc.view.ChooseImage("Select Encrypted Image", startDir, carrierExtensions, func(carrierPath string) {
		if carrierPath == "" {
			return
		}

		mc.run(models.OperationMetrics, "Calculating metrics", func(ctx context.Context) error {
			result, err := mc.stego.CalculateMetrics(ctx, coverPath, carrierPath)
			if err != nil {
				mc.session.Record(models.OperationRecord{Operation: models.OperationMetrics, InputPath: carrierPath, Err: err})
				return err
			}

			mc.session.Record(models.OperationRecord{
				Operation: models.OperationMetrics,
				InputPath: carrierPath,
				PSNR:      result.Score.PSNR,
				SSIM:      result.Score.SSIM,
				Duration:  result.Duration,
			})
			mc.view.UpdateStatus(MetricsMessage(result.Score.PSNR, result.Score.SSIM))
			return nil
		})
	})
}

// MetricsMessage formats a quality score for the status area
func MetricsMessage(psnr, ssim float64) string {
	return fmt.Sprintf("📊 Image Quality Metrics:\n   PSNR: %.2f dB\n   SSIM: %.4f", psnr, ssim)
}

// run executes work in the background unless another operation is active
func (mc *MainController) run(op models.Operation, stage string, work func(ctx context.Context) error) {
	if !mc.stateRepo.StartProcessing(op) {
		mc.view.UpdateStatus("⏳ Another operation is still running")
		return
	}

	mc.stateRepo.UpdateProgress(stage, 0)
	mc.view.SetProcessingActive(true)
	mc.view.UpdateStatus(stage + "...")

	mc.wg.Add(1)
	go func() {
		defer mc.wg.Done()
		defer mc.view.SetProcessingActive(false)

		start := time.Now()
		err := work(mc.ctx)
		if err != nil {
			mc.stateRepo.FailProcessing()
			if errors.Is(err, context.Canceled) {
				mc.view.UpdateStatus("Operation cancelled")
				return
			}
			mc.logger.Error("Operation failed", err, map[string]interface{}{"operation": string(op)})
			mc.view.UpdateStatus(FailureMessage(op, err))
			return
		}

		mc.stateRepo.CompleteProcessing()
		mc.logger.Debug("Operation finished", map[string]interface{}{
			"operation": string(op),
			"duration":  time.Since(start).String(),
		})
	}()
}

// FailureMessage turns an operation error into a status line
func FailureMessage(op models.Operation, err error) string {
	reason := err.Error()
	switch {
	case errors.Is(err, models.ErrDecode):
		reason = "could not read image: " + reason
	case errors.Is(err, models.ErrShapeMismatch):
		reason = "images are not compatible: " + reason
	case errors.Is(err, models.ErrWrite), errors.Is(err, models.ErrLossySink):
		reason = "could not save result: " + reason
	}

	var action string
	switch op {
	case models.OperationHide:
		action = "Hiding"
	case models.OperationExtract:
		action = "Extraction"
	default:
		action = "Metrics calculation"
	}
	return fmt.Sprintf("❌ %s failed: %s", action, reason)
}

func (mc *MainController) showComparison(leftTitle string, left *models.ImageData, rightTitle string, right *models.ImageData) {
	leftImg, err := left.Grid.ToImage()
	if err != nil {
		mc.logger.Warning("Cannot display image", map[string]interface{}{"path": left.Path, "error": err.Error()})
		return
	}
	rightImg, err := right.Grid.ToImage()
	if err != nil {
		mc.logger.Warning("Cannot display image", map[string]interface{}{"path": right.Path, "error": err.Error()})
		return
	}
	mc.view.ShowComparison(leftTitle, leftImg, rightTitle, rightImg)
}

// Wait blocks until every background operation has finished
func (mc *MainController) Wait() {
	mc.wg.Wait()
}

// Shutdown cancels running operations and waits for them
func (mc *MainController) Shutdown() {
	mc.cancel()
	mc.wg.Wait()
}
