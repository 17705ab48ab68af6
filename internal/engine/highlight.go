package engine

import (
	"math"

	"github.com/piwi3910/tipview/internal/model"
)

// HighlightCircle returns the centre and radius of the hole the highlighting
// backdrop cuts around ref. A positive CircleRadius wins; otherwise the hole
// circumscribes ref with CircleMargin to spare.
func HighlightCircle(ref model.Rect, h model.Highlighting) (model.Point, float64) {
	r := h.CircleRadius
	if r <= 0 {
		r = math.Hypot(ref.Width, ref.Height)/2 + h.CircleMargin
	}
	return ref.Center(), r
}
