// Package engine computes where a tip bubble goes relative to the element it
// points at and the container it must stay inside.
package engine

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/tipview/internal/model"
)

// Engine places bubbles. It holds no per-bubble state; the same Engine can
// serve every tip in an application.
type Engine struct {
	Logger *log.Logger
}

// New returns an Engine that reports substituted directions to logger.
// A nil logger falls back to log.Default().
func New(logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{Logger: logger}
}

// Place resolves a request into a placement. It never fails: when no
// direction avoids the reference frame, the last candidate tried is returned
// with Overlaps set.
func (e *Engine) Place(req model.PlacementRequest) model.PlacementResult {
	res := Resolve(req)
	if res.Fallback {
		e.logger().Info("preferred arrow position could not be applied",
			"preferred", req.PreferredDirection,
			"applied", res.ResolvedDirection)
	}
	if res.Overlaps {
		e.logger().Debug("no arrow position avoids the reference element",
			"reference", req.ReferenceFrame,
			"container", req.ContainerFrame,
			"applied", res.ResolvedDirection)
	}
	return res
}

func (e *Engine) logger() *log.Logger {
	if e == nil || e.Logger == nil {
		return log.Default()
	}
	return e.Logger
}

// Resolve is the side-effect free core of Place.
func Resolve(req model.PlacementRequest) model.PlacementResult {
	preferred := req.PreferredDirection
	tried := preferred
	if tried == model.DirectionAuto {
		tried = model.DirectionTop
	}

	direction := tried
	frame := candidate(req, direction)
	valid := !frame.Intersects(req.ReferenceFrame)

	if !valid {
		for _, d := range model.FallbackOrder {
			if d == tried {
				continue
			}
			direction = d
			frame = candidate(req, d)
			if !frame.Intersects(req.ReferenceFrame) {
				valid = true
				break
			}
		}
	}

	return model.PlacementResult{
		ResolvedDirection: direction,
		BubbleFrame:       frame,
		PointerTip:        PointerTip(direction, frame, req.ReferenceFrame, req.Insets),
		Fallback:          preferred != model.DirectionAuto && direction != preferred,
		Overlaps:          !valid,
	}
}

func candidate(req model.PlacementRequest, d model.Direction) model.Rect {
	size := BubbleSize(req.ContentSize, req.Insets, req.Arrow, d)
	return ComputeFrame(d, req.ReferenceFrame, req.ContainerFrame, size)
}

// BubbleSize is the outer size of a bubble wrapping content of the given size.
// The arrow adds to the axis it protrudes along.
func BubbleSize(content model.Size, insets model.Insets, arrow model.ArrowGeometry, d model.Direction) model.Size {
	s := model.Size{
		Width:  content.Width + 2*insets.ContentPaddingH + 2*insets.BubbleMarginH,
		Height: content.Height + 2*insets.ContentPaddingV + 2*insets.BubbleMarginV,
	}
	if d.Vertical() {
		s.Height += arrow.Height
	} else {
		s.Width += arrow.Height
	}
	return s
}

// ComputeFrame positions a bubble of the given size for direction d and clamps
// it into the container.
//
//	top, auto  below the reference, horizontally centred
//	bottom     above the reference, horizontally centred
//	right      left of the reference, vertically centred
//	left       right of the reference, vertically centred
func ComputeFrame(d model.Direction, ref, container model.Rect, size model.Size) model.Rect {
	center := ref.Center()
	frame := model.Rect{Width: size.Width, Height: size.Height}

	switch d {
	case model.DirectionBottom:
		frame.X = center.X - size.Width/2
		frame.Y = ref.Y - size.Height
	case model.DirectionRight:
		frame.X = ref.X - size.Width
		frame.Y = center.Y - size.Height/2
	case model.DirectionLeft:
		frame.X = ref.MaxX()
		frame.Y = center.Y - size.Height/2
	default:
		frame.X = center.X - size.Width/2
		frame.Y = ref.MaxY()
	}

	return Clamp(frame, container)
}

// Clamp pulls frame back inside the container's local bounds, left and top
// edges first.
func Clamp(frame, container model.Rect) model.Rect {
	if frame.X < 0 {
		frame.X = 0
	} else if frame.MaxX() > container.Width {
		frame.X = container.Width - frame.Width
	}

	if frame.Y < 0 {
		frame.Y = 0
	} else if frame.MaxY() > container.Height {
		frame.Y = container.Height - frame.Height
	}
	return frame
}

// PointerTip returns where the arrow apex sits in bubble-local coordinates.
// The tip lies on the edge facing the reference, inset by the bubble margin,
// and tracks the reference centre along that edge unless the bubble is
// narrower than the reference.
func PointerTip(d model.Direction, frame, ref model.Rect, insets model.Insets) model.Point {
	var tip model.Point

	if d.Vertical() {
		if frame.Width < ref.Width {
			tip.X = frame.Width / 2
		} else {
			tip.X = math.Abs(frame.X-ref.X) + ref.Width/2
		}
		if d == model.DirectionBottom {
			tip.Y = frame.Height - insets.BubbleMarginV
		} else {
			tip.Y = insets.BubbleMarginV
		}
	} else {
		if frame.Height < ref.Height {
			tip.Y = frame.Height / 2
		} else {
			tip.Y = math.Abs(frame.Y-ref.Y) + ref.Height/2
		}
		if d == model.DirectionLeft {
			tip.X = insets.BubbleMarginH
		} else {
			tip.X = frame.Width - insets.BubbleMarginH
		}
	}

	tip.X = clampRange(tip.X, 0, frame.Width)
	tip.Y = clampRange(tip.Y, 0, frame.Height)
	return tip
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
