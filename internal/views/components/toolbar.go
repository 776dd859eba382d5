package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Toolbar holds the five action buttons
type Toolbar struct {
	container     *fyne.Container
	coverButton   *widget.Button
	secretButton  *widget.Button
	hideButton    *widget.Button
	extractButton *widget.Button
	metricsButton *widget.Button

	coverHandler   func()
	secretHandler  func()
	hideHandler    func()
	extractHandler func()
	metricsHandler func()
}

// NewToolbar creates a new toolbar component
func NewToolbar() *Toolbar {
	toolbar := &Toolbar{}
	toolbar.createComponents()
	toolbar.buildLayout()
	return toolbar
}

func (t *Toolbar) createComponents() {
	t.coverButton = widget.NewButton("📁 Upload Cover Image", func() { call(t.coverHandler) })
	t.secretButton = widget.NewButton("📄 Upload Secret Image", func() { call(t.secretHandler) })
	t.hideButton = widget.NewButton("🔒 Hide Secret Image", func() { call(t.hideHandler) })
	t.extractButton = widget.NewButton("🔓 Extract Secret Image", func() { call(t.extractHandler) })
	t.metricsButton = widget.NewButton("📊 Calculate Metrics", func() { call(t.metricsHandler) })

	for _, b := range t.buttons() {
		b.Importance = widget.HighImportance
	}
}

func call(handler func()) {
	if handler != nil {
		handler()
	}
}

func (t *Toolbar) buttons() []*widget.Button {
	return []*widget.Button{t.coverButton, t.secretButton, t.hideButton, t.extractButton, t.metricsButton}
}

func (t *Toolbar) buildLayout() {
	t.container = container.NewGridWithColumns(3,
		t.coverButton,
		t.secretButton,
		t.hideButton,
		t.extractButton,
		t.metricsButton,
	)
}

// SetUploadCoverHandler sets the cover upload handler
func (t *Toolbar) SetUploadCoverHandler(handler func()) {
	t.coverHandler = handler
}

// SetUploadSecretHandler sets the secret upload handler
func (t *Toolbar) SetUploadSecretHandler(handler func()) {
	t.secretHandler = handler
}

// SetHideHandler sets the hide handler
func (t *Toolbar) SetHideHandler(handler func()) {
	t.hideHandler = handler
}

// SetExtractHandler sets the extract handler
func (t *Toolbar) SetExtractHandler(handler func()) {
	t.extractHandler = handler
}

// SetMetricsHandler sets the metrics handler
func (t *Toolbar) SetMetricsHandler(handler func()) {
	t.metricsHandler = handler
}

// SetProcessingActive disables the operations while one is running. Uploads
// stay enabled. Must run on the fyne thread.
func (t *Toolbar) SetProcessingActive(active bool) {
	for _, b := range []*widget.Button{t.hideButton, t.extractButton, t.metricsButton} {
		if active {
			b.Disable()
		} else {
			b.Enable()
		}
	}
}

// GetContainer returns the toolbar container
func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}
