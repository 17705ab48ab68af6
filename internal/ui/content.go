package ui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"

	"github.com/piwi3910/tipview/internal/model"
)

// Renderable is tip content the overlay host knows how to draw. maxWidth is
// the wrap width the content was measured with.
type Renderable interface {
	CanvasObject(maxWidth float64) fyne.CanvasObject
}

// TextContent is plain text wrapped to the bubble's maximum width. It holds no
// layout state, so one value can back tips with different wrap widths.
type TextContent struct {
	Text    string
	Drawing model.Drawing
}

// NewTextContent returns text content drawn with the font settings of drawing.
func NewTextContent(text string, drawing model.Drawing) *TextContent {
	return &TextContent{Text: text, Drawing: drawing}
}

func (c *TextContent) style() fyne.TextStyle {
	return fyne.TextStyle{Bold: c.Drawing.Bold, Italic: c.Drawing.Italic}
}

func (c *TextContent) measure(s string) fyne.Size {
	return fyne.MeasureText(s, float32(c.Drawing.FontSize), c.style())
}

// Lines is the text wrapped at maxWidth.
func (c *TextContent) Lines(maxWidth float64) []string {
	return wrapText(c.Text, float32(maxWidth), func(s string) float32 {
		return c.measure(s).Width
	})
}

// MeasureContent wraps the text at maxWidth and returns the size of the
// wrapped block.
func (c *TextContent) MeasureContent(maxWidth float64) model.Size {
	var w, h float32
	for _, line := range c.Lines(maxWidth) {
		// empty lines still take a line's height
		sz := c.measure(line)
		if line == "" {
			sz.Height = c.measure("M").Height
		}
		if sz.Width > w {
			w = sz.Width
		}
		h += sz.Height
	}
	return model.Size{Width: float64(w), Height: float64(h)}
}

// CanvasObject stacks one canvas.Text per wrapped line.
func (c *TextContent) CanvasObject(maxWidth float64) fyne.CanvasObject {
	lines := c.Lines(maxWidth)
	objs := make([]fyne.CanvasObject, 0, len(lines))
	for _, line := range lines {
		txt := canvas.NewText(line, c.Drawing.ForegroundColor.NRGBA())
		txt.TextSize = float32(c.Drawing.FontSize)
		txt.TextStyle = c.style()
		txt.Alignment = textAlign(c.Drawing.TextAlignment)
		objs = append(objs, txt)
	}
	return container.New(layout.NewCustomPaddedVBoxLayout(0), objs...)
}

func textAlign(a model.TextAlignment) fyne.TextAlign {
	switch a {
	case model.AlignLeading:
		return fyne.TextAlignLeading
	case model.AlignTrailing:
		return fyne.TextAlignTrailing
	default:
		return fyne.TextAlignCenter
	}
}

// wrapText breaks text into lines no wider than maxWidth, greedily by word.
// Explicit newlines are kept. A single word wider than maxWidth gets a line
// of its own. maxWidth <= 0 disables wrapping.
func wrapText(text string, maxWidth float32, width func(string) float32) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		if maxWidth <= 0 {
			lines = append(lines, strings.Join(words, " "))
			continue
		}

		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if width(candidate) <= maxWidth {
				line = candidate
				continue
			}
			lines = append(lines, line)
			line = w
		}
		lines = append(lines, line)
	}
	return lines
}

// ObjectContent embeds an arbitrary fyne object, measured by its MinSize.
type ObjectContent struct {
	Object fyne.CanvasObject
}

// MeasureContent ignores maxWidth; fyne objects size themselves.
func (c ObjectContent) MeasureContent(maxWidth float64) model.Size {
	ms := c.Object.MinSize()
	return model.Size{Width: float64(ms.Width), Height: float64(ms.Height)}
}

// CanvasObject returns the wrapped object as is.
func (c ObjectContent) CanvasObject(float64) fyne.CanvasObject { return c.Object }
