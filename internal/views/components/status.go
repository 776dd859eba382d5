package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// StatusPanel shows the outcome of the last action. Each message replaces the
// previous one.
type StatusPanel struct {
	container *fyne.Container
	text      *widget.Label
	activity  *widget.ProgressBarInfinite
}

// NewStatusPanel creates a new status panel component
func NewStatusPanel() *StatusPanel {
	sp := &StatusPanel{}
	sp.createComponents()
	sp.buildLayout()
	return sp
}

func (sp *StatusPanel) createComponents() {
	sp.text = widget.NewLabel("Ready")
	sp.text.Wrapping = fyne.TextWrapWord

	sp.activity = widget.NewProgressBarInfinite()
	sp.activity.Stop()
	sp.activity.Hide()
}

func (sp *StatusPanel) buildLayout() {
	sp.container = container.NewVBox(
		widget.NewCard("Status", "", sp.text),
		sp.activity,
	)
}

// SetStatus replaces the status message. Must run on the fyne thread.
func (sp *StatusPanel) SetStatus(status string) {
	sp.text.SetText(status)
}

// GetStatus returns the current status message
func (sp *StatusPanel) GetStatus() string {
	return sp.text.Text
}

// SetBusy shows or hides the activity indicator
func (sp *StatusPanel) SetBusy(busy bool) {
	if busy {
		sp.activity.Show()
		sp.activity.Start()
		return
	}
	sp.activity.Stop()
	sp.activity.Hide()
}

// GetContainer returns the status panel container
func (sp *StatusPanel) GetContainer() *fyne.Container {
	return sp.container
}
