package model

// Insets holds the spacing between the bubble's outer frame and its drawn
// border (margins) and between the border and the content (padding).
type Insets struct {
	BubbleMarginH   float64
	BubbleMarginV   float64
	ContentPaddingH float64
	ContentPaddingV float64
}

// ArrowGeometry is the size of the triangular pointer. Width runs along the
// bubble edge, Height is how far the tip protrudes.
type ArrowGeometry struct {
	Width  float64
	Height float64
}

// PlacementRequest is everything the engine needs to place one bubble.
// A fresh request is built on every show and every relayout.
type PlacementRequest struct {
	ReferenceFrame     Rect
	ContainerFrame     Rect
	PreferredDirection Direction
	ContentSize        Size
	Insets             Insets
	Arrow              ArrowGeometry
	MaxContentWidth    float64
}

// PlacementResult is the engine's answer. BubbleFrame is in container space,
// PointerTip is relative to the bubble's own origin.
type PlacementResult struct {
	ResolvedDirection Direction `json:"resolved_direction"`
	BubbleFrame       Rect      `json:"bubble_frame"`
	PointerTip        Point     `json:"pointer_tip"`
	// Fallback is set when a concrete preferred direction was replaced.
	Fallback bool `json:"fallback"`
	// Overlaps is set when no direction fit and the result still covers the
	// reference frame.
	Overlaps bool `json:"overlaps"`
}
