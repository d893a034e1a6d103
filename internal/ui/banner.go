package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/videogen/internal/notify"
)

// newBanner builds the widget for a rendered notification. onClose is
// called when the user dismisses it by hand.
func newBanner(f notify.Fragment, onClose func()) fyne.CanvasObject {
	variant := fyne.CurrentApp().Settings().ThemeVariant()

	background := canvas.NewRectangle(BannerColor(f.Severity, variant))
	background.CornerRadius = BannerCornerRadius
	background.SetMinSize(fyne.NewSize(0, BannerMinHeight))

	message := widget.NewLabel(f.Message)
	message.Wrapping = fyne.TextWrapWord

	var right fyne.CanvasObject
	if f.Dismissible {
		closeBtn := widget.NewButton(IconClose, onClose)
		closeBtn.Importance = widget.LowImportance
		right = closeBtn
	}

	content := container.NewBorder(nil, nil, nil, right, message)
	return container.NewStack(background, container.NewPadded(content))
}
