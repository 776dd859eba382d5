package views

import (
	"image"
	"os"
	"path/filepath"

	"pixel-veil/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// MainView is the single window of the desktop tool. Every exported method
// may be called from any goroutine; UI work is marshalled with fyne.Do.
type MainView struct {
	window        fyne.Window
	mainContainer *fyne.Container
	toolbar       *components.Toolbar
	comparison    *components.ComparisonDisplay
	statusPanel   *components.StatusPanel
}

// NewMainView creates a new main view
func NewMainView(window fyne.Window) *MainView {
	view := &MainView{
		window: window,
	}

	view.initializeComponents()
	view.buildLayout()

	return view
}

func (mv *MainView) initializeComponents() {
	mv.toolbar = components.NewToolbar()
	mv.comparison = components.NewComparisonDisplay()
	mv.statusPanel = components.NewStatusPanel()
}

func (mv *MainView) buildLayout() {
	title := canvas.NewText("Data Hiding Tool", theme.Color(theme.ColorNameForeground))
	title.TextSize = 28
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Alignment = fyne.TextAlignCenter

	footer := widget.NewLabelWithStyle("Secure Data Hiding Tool", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})

	top := container.NewVBox(
		container.NewPadded(title),
		mv.toolbar.GetContainer(),
		mv.statusPanel.GetContainer(),
	)

	mv.mainContainer = container.NewBorder(
		top,
		footer,
		nil,
		nil,
		mv.comparison.GetContainer(),
	)

	mv.window.SetContent(mv.mainContainer)
}

// SetUploadCoverHandler sets the handler for the cover upload button
func (mv *MainView) SetUploadCoverHandler(handler func()) {
	mv.toolbar.SetUploadCoverHandler(handler)
}

// SetUploadSecretHandler sets the handler for the secret upload button
func (mv *MainView) SetUploadSecretHandler(handler func()) {
	mv.toolbar.SetUploadSecretHandler(handler)
}

// SetHideHandler sets the handler for the hide button
func (mv *MainView) SetHideHandler(handler func()) {
	mv.toolbar.SetHideHandler(handler)
}

// SetExtractHandler sets the handler for the extract button
func (mv *MainView) SetExtractHandler(handler func()) {
	mv.toolbar.SetExtractHandler(handler)
}

// SetMetricsHandler sets the handler for the metrics button
func (mv *MainView) SetMetricsHandler(handler func()) {
	mv.toolbar.SetMetricsHandler(handler)
}

// UpdateStatus replaces the status message
func (mv *MainView) UpdateStatus(status string) {
	fyne.Do(func() {
		mv.statusPanel.SetStatus(status)
	})
}

// ShowComparison displays two images side by side
func (mv *MainView) ShowComparison(leftTitle string, left image.Image, rightTitle string, right image.Image) {
	fyne.Do(func() {
		mv.comparison.SetImages(leftTitle, left, rightTitle, right)
	})
}

// SetProcessingActive updates UI state for a running operation
func (mv *MainView) SetProcessingActive(active bool) {
	fyne.Do(func() {
		mv.toolbar.SetProcessingActive(active)
		mv.statusPanel.SetBusy(active)
	})
}

// ChooseImage shows a file open dialog filtered to extensions, starting in
// startDir when it exists. onChosen gets "" if the user cancels.
func (mv *MainView) ChooseImage(title, startDir string, extensions []string, onChosen func(path string)) {
	fyne.Do(func() {
		d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil {
				mv.ShowError(title, err)
				onChosen("")
				return
			}
			if reader == nil {
				onChosen("")
				return
			}
			path := reader.URI().Path()
			reader.Close()
			onChosen(path)
		}, mv.window)

		d.SetFilter(storage.NewExtensionFileFilter(extensions))
		if location := existingDir(startDir); location != nil {
			d.SetLocation(location)
		}
		d.Resize(fyne.NewSize(800, 600))
		d.Show()
	})
}

func existingDir(dir string) fyne.ListableURI {
	if dir == "" {
		return nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil
	}
	if info, err := os.Stat(abs); err != nil || !info.IsDir() {
		return nil
	}
	lister, err := storage.ListerForURI(storage.NewFileURI(abs))
	if err != nil {
		return nil
	}
	return lister
}

// ShowError displays an error dialog
func (mv *MainView) ShowError(title string, err error) {
	fyne.Do(func() {
		dialog.ShowError(err, mv.window)
	})
}

// ResetView clears the comparison and the status
func (mv *MainView) ResetView() {
	fyne.Do(func() {
		mv.comparison.Clear()
		mv.statusPanel.SetStatus("Ready")
		mv.statusPanel.SetBusy(false)
		mv.toolbar.SetProcessingActive(false)
	})
}

// GetWindow returns the main window
func (mv *MainView) GetWindow() fyne.Window {
	return mv.window
}

// Show displays the view
func (mv *MainView) Show() {
	mv.window.Show()
}
