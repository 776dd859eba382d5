package controllers

import (
	"errors"
	"fmt"
	"image"
	"math/rand"
	"path/filepath"
	"sync"
	"testing"

	"pixel-veil/internal/config"
	"pixel-veil/internal/imageio"
	"pixel-veil/internal/logger"
	"pixel-veil/internal/models"
	"pixel-veil/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type comparison struct {
	leftTitle, rightTitle string
	left, right           image.Image
}

type fakeView struct {
	mu          sync.Mutex
	choices     []string
	statuses    []string
	comparisons []comparison
	pickerDirs  []string
	activeCalls []bool
}

func (v *fakeView) UpdateStatus(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.statuses = append(v.statuses, message)
}

func (v *fakeView) ShowComparison(leftTitle string, left image.Image, rightTitle string, right image.Image) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.comparisons = append(v.comparisons, comparison{leftTitle, rightTitle, left, right})
}

func (v *fakeView) SetProcessingActive(active bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.activeCalls = append(v.activeCalls, active)
}

func (v *fakeView) ChooseImage(_, startDir string, _ []string, onChosen func(string)) {
	v.mu.Lock()
	v.pickerDirs = append(v.pickerDirs, startDir)
	path := ""
	if len(v.choices) > 0 {
		path, v.choices = v.choices[0], v.choices[1:]
	}
	v.mu.Unlock()
	onChosen(path)
}

func (v *fakeView) lastStatus() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.statuses) == 0 {
		return ""
	}
	return v.statuses[len(v.statuses)-1]
}

type fixture struct {
	ctrl    *MainController
	view    *fakeView
	session *models.SessionRepository
	dir     string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()

	cfg := config.DefaultConfig()
	cfg.Processing.Workers = 2
	cfg.Output.CarrierDir = filepath.Join(dir, "EncryptedImages")
	cfg.Output.RecoveredDir = filepath.Join(dir, "ExtractedImages")

	stego, err := services.FromConfig(cfg, logger.Nop{})
	require.NoError(t, err)

	session := models.NewSessionRepository()
	ctrl := NewMainController(stego, session, models.NewProcessingStateRepository(), logger.Nop{})
	view := &fakeView{}
	ctrl.SetView(view)
	t.Cleanup(ctrl.Shutdown)

	return &fixture{ctrl: ctrl, view: view, session: session, dir: dir}
}

func (f *fixture) image(t *testing.T, name string, seed int64) string {
	t.Helper()
	g, err := models.NewPixelGrid(12, 12, models.Channels)
	require.NoError(t, err)
	rand.New(rand.NewSource(seed)).Read(g.Pix)
	path := filepath.Join(f.dir, name)
	require.NoError(t, imageio.NativeWriter{}.Write(g, path))
	return path
}

func TestUploadsUpdateSessionAndStatus(t *testing.T) {
	f := newFixture(t)
	cover := f.image(t, "cover.png", 1)
	secret := f.image(t, "secret.png", 2)

	f.view.choices = []string{cover, secret}
	f.ctrl.UploadCover()
	assert.Equal(t, "✅ Cover Image: cover.png loaded", f.view.lastStatus())
	f.ctrl.UploadSecret()
	assert.Equal(t, "✅ Secret Image: secret.png loaded", f.view.lastStatus())

	assert.Equal(t, cover, f.session.CoverPath())
	assert.Equal(t, secret, f.session.SecretPath())
	assert.Equal(t, []string{SampleDir, SampleDir}, f.view.pickerDirs)
}

func TestCancelledPickerChangesNothing(t *testing.T) {
	f := newFixture(t)
	f.ctrl.UploadCover()
	f.ctrl.ExtractImage()

	assert.Empty(t, f.session.CoverPath())
	assert.Empty(t, f.view.statuses)
	assert.Empty(t, f.session.History())
}

func TestHideRequiresBothImages(t *testing.T) {
	f := newFixture(t)
	f.session.SetCoverPath(f.image(t, "cover.png", 1))

	f.ctrl.HideImage()
	f.ctrl.Wait()
	assert.Equal(t, "❌ Please upload both cover and secret images first", f.view.lastStatus())
	assert.Empty(t, f.view.activeCalls)
}

func TestMetricsRequiresCover(t *testing.T) {
	f := newFixture(t)
	f.ctrl.CalculateMetrics()
	assert.Equal(t, "❌ Please upload cover image first", f.view.lastStatus())
}

func TestHideExtractAndMetricsFlow(t *testing.T) {
	f := newFixture(t)
	f.session.SetCoverPath(f.image(t, "cover.png", 1))
	f.session.SetSecretPath(f.image(t, "secret.png", 2))

	f.ctrl.HideImage()
	f.ctrl.Wait()
	assert.Equal(t, "✅ Secret image hidden and saved as: encrypted_image_1.png", f.view.lastStatus())
	require.Len(t, f.view.comparisons, 1)
	assert.Equal(t, "Cover Image", f.view.comparisons[0].leftTitle)
	assert.Equal(t, "Encrypted Image", f.view.comparisons[0].rightTitle)
	assert.Equal(t, []bool{true, false}, f.view.activeCalls)

	carrier := filepath.Join(f.dir, "EncryptedImages", "encrypted_image_1.png")
	f.view.choices = []string{carrier}
	f.ctrl.ExtractImage()
	f.ctrl.Wait()
	assert.Equal(t, "✅ Secret image extracted and saved as: extracted_secret_1.png", f.view.lastStatus())
	require.Len(t, f.view.comparisons, 2)
	assert.Equal(t, "Encrypted Image", f.view.comparisons[1].leftTitle)
	assert.Equal(t, "Extracted Secret", f.view.comparisons[1].rightTitle)
	assert.Equal(t, filepath.Join(f.dir, "EncryptedImages"), f.view.pickerDirs[0])

	f.view.choices = []string{carrier}
	f.ctrl.CalculateMetrics()
	f.ctrl.Wait()
	assert.Contains(t, f.view.lastStatus(), "📊 Image Quality Metrics:")
	assert.Contains(t, f.view.lastStatus(), "PSNR: ")

	history := f.session.History()
	require.Len(t, history, 3)
	assert.Equal(t, models.OperationHide, history[0].Operation)
	assert.Equal(t, carrier, history[0].OutputPath)
	metrics, ok := f.session.Latest(models.OperationMetrics)
	require.True(t, ok)
	assert.Greater(t, metrics.PSNR, 0.0)
}

func TestHideFailureReportsStatus(t *testing.T) {
	f := newFixture(t)
	f.session.SetCoverPath(f.image(t, "cover.png", 1))
	f.session.SetSecretPath(filepath.Join(f.dir, "missing.png"))

	f.ctrl.HideImage()
	f.ctrl.Wait()
	assert.Contains(t, f.view.lastStatus(), "❌ Hiding failed: could not read image")

	rec, ok := f.session.Latest(models.OperationHide)
	require.True(t, ok)
	assert.True(t, errors.Is(rec.Err, models.ErrDecode))
}

func TestRunRejectsOverlap(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.ctrl.stateRepo.StartProcessing(models.OperationExtract))

	f.session.SetCoverPath(f.image(t, "cover.png", 1))
	f.session.SetSecretPath(f.image(t, "secret.png", 2))
	f.ctrl.HideImage()
	f.ctrl.Wait()

	assert.Equal(t, "⏳ Another operation is still running", f.view.lastStatus())
	assert.Empty(t, f.session.History())
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "📊 Image Quality Metrics:\n   PSNR: 31.25 dB\n   SSIM: 0.9876", MetricsMessage(31.25, 0.98761))

	err := fmt.Errorf("saving carrier: %w", models.ErrLossySink)
	assert.Contains(t, FailureMessage(models.OperationHide, err), "❌ Hiding failed: could not save result")
	assert.Contains(t, FailureMessage(models.OperationMetrics, errors.New("boom")), "❌ Metrics calculation failed: boom")
}
