package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/piwi3910/tipview/internal/model"
)

// TipTheme wraps the default fyne theme so widgets embedded in a bubble pick
// up the bubble's text colour and font size.
type TipTheme struct {
	base    fyne.Theme
	drawing model.Drawing
}

// NewTipTheme builds a theme for content drawn in the given style.
func NewTipTheme(drawing model.Drawing) *TipTheme {
	return &TipTheme{
		base:    theme.DefaultTheme(),
		drawing: drawing,
	}
}

// Color overrides the foreground and keeps widget backgrounds see-through
// over the bubble body.
func (t *TipTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameForeground:
		return t.drawing.ForegroundColor.NRGBA()
	case theme.ColorNameBackground, theme.ColorNameInputBackground:
		return color.Transparent
	case theme.ColorNameOverlayBackground:
		return t.drawing.BackgroundColor.NRGBA()
	default:
		return t.base.Color(name, variant)
	}
}

func (t *TipTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *TipTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size uses the tip font size for body text and tightens padding to suit
// small bubbles.
func (t *TipTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		if t.drawing.FontSize > 0 {
			return float32(t.drawing.FontSize)
		}
		return t.base.Size(name)
	case theme.SizeNamePadding:
		return 2
	case theme.SizeNameInnerPadding:
		return 4
	default:
		return t.base.Size(name)
	}
}
