package engine

import "github.com/piwi3910/tipview/internal/model"

// Shape is the drawable outline of a placed bubble in bubble-local
// coordinates: the rounded body and the arrow triangle. Arrow[0] is the apex.
type Shape struct {
	Body  model.Rect
	Arrow [3]model.Point
}

// BubbleShape derives the outline a renderer draws from a placement result.
func BubbleShape(res model.PlacementResult, insets model.Insets, arrow model.ArrowGeometry) Shape {
	w, h := res.BubbleFrame.Width, res.BubbleFrame.Height
	tip := res.PointerTip
	d := res.ResolvedDirection

	var s Shape
	s.Arrow[0] = tip

	if d.Vertical() {
		s.Body = model.Rect{
			X:      insets.BubbleMarginH,
			Y:      insets.BubbleMarginV,
			Width:  w - 2*insets.BubbleMarginH,
			Height: h - 2*insets.BubbleMarginV - arrow.Height,
		}
		sign := 1.0
		if d == model.DirectionBottom {
			sign = -1
		} else {
			s.Body.Y += arrow.Height
		}
		baseY := tip.Y + sign*arrow.Height
		s.Arrow[1] = model.Point{X: tip.X - arrow.Width/2, Y: baseY}
		s.Arrow[2] = model.Point{X: tip.X + arrow.Width/2, Y: baseY}
	} else {
		s.Body = model.Rect{
			X:      insets.BubbleMarginH,
			Y:      insets.BubbleMarginV,
			Width:  w - 2*insets.BubbleMarginH - arrow.Height,
			Height: h - 2*insets.BubbleMarginV,
		}
		sign := -1.0
		if d == model.DirectionLeft {
			sign = 1
			s.Body.X += arrow.Height
		}
		baseX := tip.X + sign*arrow.Height
		s.Arrow[1] = model.Point{X: baseX, Y: tip.Y - arrow.Width/2}
		s.Arrow[2] = model.Point{X: baseX, Y: tip.Y + arrow.Width/2}
	}

	if s.Body.Width < 0 {
		s.Body.Width = 0
	}
	if s.Body.Height < 0 {
		s.Body.Height = 0
	}
	return s
}

// ContentFrame is where content of the given size is drawn: centred in the
// body, inside the content padding.
func (s Shape) ContentFrame(content model.Size) model.Rect {
	return model.Rect{
		X:      s.Body.X + (s.Body.Width-content.Width)/2,
		Y:      s.Body.Y + (s.Body.Height-content.Height)/2,
		Width:  content.Width,
		Height: content.Height,
	}
}
