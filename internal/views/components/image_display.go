package components

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	ImageAreaWidth  = 480
	ImageAreaHeight = 360
)

// ComparisonDisplay shows two images side by side, each under its own title
type ComparisonDisplay struct {
	container  *fyne.Container
	leftImage  *canvas.Image
	rightImage *canvas.Image
	leftTitle  *widget.Label
	rightTitle *widget.Label

	placeholder image.Image
	hasImages   bool
}

// NewComparisonDisplay creates a new comparison display component
func NewComparisonDisplay() *ComparisonDisplay {
	display := &ComparisonDisplay{}
	display.createComponents()
	display.setupLayout()
	return display
}

func (cd *ComparisonDisplay) createComponents() {
	cd.placeholder = createPlaceholderImage()

	cd.leftImage = newImageCanvas(cd.placeholder)
	cd.rightImage = newImageCanvas(cd.placeholder)

	cd.leftTitle = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	cd.rightTitle = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
}

func newImageCanvas(img image.Image) *canvas.Image {
	c := canvas.NewImageFromImage(img)
	c.FillMode = canvas.ImageFillContain
	c.ScaleMode = canvas.ImageScaleSmooth
	c.SetMinSize(fyne.NewSize(ImageAreaWidth, ImageAreaHeight))
	return c
}

// createPlaceholderImage draws a light panel with a thin border
func createPlaceholderImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, ImageAreaWidth, ImageAreaHeight))

	background := color.RGBA{R: 240, G: 244, B: 248, A: 255}
	border := color.RGBA{R: 200, G: 200, B: 200, A: 255}
	for y := 0; y < ImageAreaHeight; y++ {
		for x := 0; x < ImageAreaWidth; x++ {
			if x == 0 || y == 0 || x == ImageAreaWidth-1 || y == ImageAreaHeight-1 {
				img.Set(x, y, border)
			} else {
				img.Set(x, y, background)
			}
		}
	}
	return img
}

func (cd *ComparisonDisplay) setupLayout() {
	left := container.NewBorder(cd.leftTitle, nil, nil, nil, cd.leftImage)
	right := container.NewBorder(cd.rightTitle, nil, nil, nil, cd.rightImage)
	cd.container = container.NewGridWithColumns(2, left, right)
}

// SetImages replaces both panels. Must run on the fyne thread.
func (cd *ComparisonDisplay) SetImages(leftTitle string, left image.Image, rightTitle string, right image.Image) {
	cd.leftTitle.SetText(leftTitle)
	cd.rightTitle.SetText(rightTitle)

	cd.leftImage.Image = left
	cd.rightImage.Image = right
	cd.hasImages = left != nil && right != nil
	if left == nil {
		cd.leftImage.Image = cd.placeholder
	}
	if right == nil {
		cd.rightImage.Image = cd.placeholder
	}

	cd.leftImage.Refresh()
	cd.rightImage.Refresh()
}

// Clear restores the placeholders
func (cd *ComparisonDisplay) Clear() {
	cd.SetImages("", nil, "", nil)
}

// HasImages returns true while a comparison is shown
func (cd *ComparisonDisplay) HasImages() bool {
	return cd.hasImages
}

// GetContainer returns the main container
func (cd *ComparisonDisplay) GetContainer() *fyne.Container {
	return cd.container
}
