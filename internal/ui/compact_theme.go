package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/ytget/videogen/internal/model"
)

// Banner background colors, light variants of success/danger
var (
	bannerSuccessLight = color.NRGBA{R: 209, G: 231, B: 221, A: 255}
	bannerSuccessDark  = color.NRGBA{R: 15, G: 81, B: 50, A: 255}
	bannerDangerLight  = color.NRGBA{R: 248, G: 215, B: 218, A: 255}
	bannerDangerDark   = color.NRGBA{R: 132, G: 32, B: 41, A: 255}
)

// CompactTheme defines a compact theme for the UI with reduced padding and font sizes
type CompactTheme struct{}

// NewCompactTheme creates a new compact theme
func NewCompactTheme() fyne.Theme {
	return &CompactTheme{}
}

// Color returns theme colors
func (t *CompactTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameSuccess:
		return color.RGBA{R: 25, G: 135, B: 84, A: 255}
	case theme.ColorNameError:
		return color.RGBA{R: 220, G: 53, B: 69, A: 255}
	case theme.ColorNamePrimary:
		return color.RGBA{R: 13, G: 110, B: 253, A: 255}
	}

	// Use default colors for everything else
	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *CompactTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *CompactTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *CompactTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameText:
		return 13
	case theme.SizeNameHeadingText:
		return 18
	case theme.SizeNameInputRadius:
		return 3
	}

	return theme.DefaultTheme().Size(name)
}

// BannerColor returns the background of a banner with the given severity
func BannerColor(severity model.Severity, variant fyne.ThemeVariant) color.Color {
	dark := variant == theme.VariantDark
	switch severity {
	case model.SeveritySuccess:
		if dark {
			return bannerSuccessDark
		}
		return bannerSuccessLight
	default:
		if dark {
			return bannerDangerDark
		}
		return bannerDangerLight
	}
}
