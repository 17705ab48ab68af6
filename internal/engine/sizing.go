package engine

import (
	"math"

	"github.com/piwi3910/tipview/internal/model"
)

// ContentSizer measures tip content wrapped at maxWidth. Implementations must
// be free of side effects; the engine may call them more than once.
type ContentSizer interface {
	MeasureContent(maxWidth float64) model.Size
}

// ContentSizerFunc adapts a plain function to ContentSizer.
type ContentSizerFunc func(maxWidth float64) model.Size

func (f ContentSizerFunc) MeasureContent(maxWidth float64) model.Size {
	return f(maxWidth)
}

// NormalizeContentSize rounds a measured size up to whole units and keeps the
// width at least as wide as the arrow.
func NormalizeContentSize(s model.Size, arrow model.ArrowGeometry) model.Size {
	s.Width = math.Ceil(s.Width)
	s.Height = math.Ceil(s.Height)
	if s.Width < arrow.Width {
		s.Width = arrow.Width
	}
	return s
}

// MeasureContent runs sizer with the preferences' wrap width and normalises
// the result.
func MeasureContent(sizer ContentSizer, prefs model.Preferences) model.Size {
	return NormalizeContentSize(sizer.MeasureContent(prefs.Positioning.MaxWidth), prefs.Arrow())
}

// NewRequest assembles a placement request from already translated frames,
// a measured content size and the tip's preferences.
func NewRequest(ref, container model.Rect, content model.Size, prefs model.Preferences) model.PlacementRequest {
	return model.PlacementRequest{
		ReferenceFrame:     ref,
		ContainerFrame:     container,
		PreferredDirection: prefs.Drawing.ArrowPosition,
		ContentSize:        content,
		Insets:             prefs.Insets(),
		Arrow:              prefs.Arrow(),
		MaxContentWidth:    prefs.Positioning.MaxWidth,
	}
}
