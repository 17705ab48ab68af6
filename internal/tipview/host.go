package tipview

import (
	"time"

	"github.com/piwi3910/tipview/internal/engine"
	"github.com/piwi3910/tipview/internal/model"
)

// Content is what a tip displays. The host decides how to draw it; the tip
// only needs its size.
type Content interface {
	engine.ContentSizer
}

// Host is the UI toolkit side of a tip: it knows the element tree and owns
// the layer bubbles are attached to.
type Host interface {
	// DefaultContainer is used when a tip is shown without a container,
	// usually the window content.
	DefaultContainer() Element
	// IsAncestor reports whether container is a direct or transitive parent
	// of element.
	IsAncestor(container, element Element) bool
	// FrameIn returns element's frame in container's local space.
	FrameIn(element, container Element) model.Rect
	// Bounds returns container's local bounds, origin at zero.
	Bounds(container Element) model.Rect
	// Attach creates the drawable for tip inside container.
	Attach(container Element, tip *Tip) (Surface, error)
}

// Surface is the drawn bubble of one tip.
type Surface interface {
	// Place moves and resizes the bubble and redraws its outline.
	Place(res model.PlacementResult, shape engine.Shape)
	// SetTransition applies the current scale and opacity.
	SetTransition(scale, alpha float64)
	// Detach removes the bubble from its container.
	Detach()
}

// Observer is told when a tip has gone away.
type Observer interface {
	Dismissed(t *Tip)
}

// TapObserver is an optional extension of Observer notified of taps that do
// not dismiss the tip.
type TapObserver interface {
	Tapped(t *Tip)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(t *Tip)

func (f ObserverFunc) Dismissed(t *Tip) { f(t) }

// Animator drives transitions. tick receives progress in [0,1]; done runs
// once after the final tick unless the transition was stopped.
type Animator interface {
	Start(d time.Duration, tick func(progress float64), done func()) Transition
}

// Transition is a running animation.
type Transition interface {
	Stop()
}

// ImmediateAnimator completes every transition synchronously.
type ImmediateAnimator struct{}

func (ImmediateAnimator) Start(_ time.Duration, tick func(float64), done func()) Transition {
	tick(1)
	done()
	return stoppedTransition{}
}

type stoppedTransition struct{}

func (stoppedTransition) Stop() {}
