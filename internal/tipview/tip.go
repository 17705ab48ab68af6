// Package tipview manages the lifecycle of tip bubbles: showing them next to
// an element, keeping them placed when the container changes size, and
// dismissing them.
package tipview

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/piwi3910/tipview/internal/engine"
	"github.com/piwi3910/tipview/internal/model"
)

// State is where a tip is in its lifecycle.
type State int

const (
	StateHidden State = iota
	StateAppearing
	StateVisible
	StateDismissing
	// StateDismissed is hidden for good; the tip cannot be shown again.
	StateDismissed
)

func (s State) String() string {
	switch s {
	case StateHidden:
		return "hidden"
	case StateAppearing:
		return "appearing"
	case StateVisible:
		return "visible"
	case StateDismissing:
		return "dismissing"
	case StateDismissed:
		return "dismissed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Tip is one bubble. All methods must be called from the UI goroutine.
type Tip struct {
	id        string
	presenter *Presenter
	prefs     model.Preferences
	content   Content
	observer  Observer

	// preferred is the direction tried first on the next layout pass.
	preferred   model.Direction
	contentSize model.Size
	measured    bool

	state     State
	element   Element
	container Element
	surface   Surface
	placement model.PlacementResult

	transition Transition
	generation int
	progress   float64
	scale      float64
	alpha      float64
}

// ID is a short random identifier used in logs.
func (t *Tip) ID() string { return t.id }

// State is the current lifecycle state.
func (t *Tip) State() State { return t.state }

// Content is what the bubble shows.
func (t *Tip) Content() Content { return t.content }

// Preferences are the tip's resolved preferences, fixed at creation.
func (t *Tip) Preferences() model.Preferences { return t.prefs }

// Placement is the result of the last layout pass.
func (t *Tip) Placement() model.PlacementResult { return t.placement }

// PreferredDirection is the direction the next layout pass tries first. It
// only differs from the configured arrow position with StickyDirection set.
func (t *Tip) PreferredDirection() model.Direction { return t.preferred }

// Element is the reference element, nil before Show.
func (t *Tip) Element() Element { return t.element }

// Container is the element the tip is clamped to, nil before Show.
func (t *Tip) Container() Element { return t.container }

// Progress is how far the entrance transition has got, 1 once visible.
func (t *Tip) Progress() float64 { return t.progress }

// Transform returns the current scale and opacity of the bubble.
func (t *Tip) Transform() (scale, alpha float64) { return t.scale, t.alpha }

// ContentSize is measured on first use and cached for the life of the tip.
func (t *Tip) ContentSize() model.Size {
	if !t.measured {
		t.contentSize = engine.MeasureContent(t.content, t.prefs)
		t.measured = true
	}
	return t.contentSize
}

func (t *Tip) String() string {
	return fmt.Sprintf("<tip %s %s>", t.id, t.state)
}

// Show presents the tip next to anchor inside container. A nil container
// means the host's default container. If container is given it must be an
// ancestor of the anchor's element; anything else is a programming error and
// panics. Anchors without an element make Show a no-op.
func (t *Tip) Show(anchor Anchor, container Element, animated bool) error {
	switch t.state {
	case StateDismissed:
		return ErrDismissed
	case StateHidden:
	default:
		return ErrAlreadyShown
	}

	element, ok := anchor.BackingElement()
	if !ok {
		t.logger().Debug("anchor has no element, nothing to show", "tip", t.id)
		return nil
	}

	host := t.presenter.host
	if container != nil {
		if !host.IsAncestor(container, element) {
			panic(fmt.Sprintf("tipview: container %v is not a direct or indirect parent of element %v; "+
				"pass nil to show the tip in the default container", container, element))
		}
	} else {
		container = host.DefaultContainer()
	}

	surface, err := host.Attach(container, t)
	if err != nil {
		return fmt.Errorf("attach tip %s: %w", t.id, err)
	}

	t.element = element
	t.container = container
	t.surface = surface
	t.layout(host.Bounds(container))

	t.state = StateAppearing
	t.logger().Debug("showing tip", "tip", t.id, "direction", t.placement.ResolvedDirection, "frame", t.placement.BubbleFrame)

	a := t.prefs.Animating
	if !animated || a.ShowDuration == 0 || t.presenter.animator == nil {
		t.applyTransform(a.ShowFinalScale, 1)
		t.progress = 1
		t.state = StateVisible
		return nil
	}

	t.applyTransform(a.ShowInitialScale, a.ShowInitialAlpha)
	gen := t.nextGeneration()
	tr := t.presenter.animator.Start(a.ShowDurationTime(),
		func(p float64) {
			if gen != t.generation {
				return
			}
			t.progress = p
			t.applyTransform(lerp(a.ShowInitialScale, a.ShowFinalScale, p), lerp(a.ShowInitialAlpha, 1, p))
		},
		func() {
			if gen != t.generation || t.state != StateAppearing {
				return
			}
			t.transition = nil
			t.state = StateVisible
		})
	if gen == t.generation && t.state == StateAppearing {
		t.transition = tr
	}
	return nil
}

// Relayout places the tip again using the container's current bounds.
func (t *Tip) Relayout() error {
	if t.state != StateVisible {
		return ErrNotVisible
	}
	return t.RelayoutIn(t.presenter.host.Bounds(t.container))
}

// RelayoutIn places the tip again within the given container bounds without
// replaying the entrance transition.
func (t *Tip) RelayoutIn(bounds model.Rect) error {
	if t.state != StateVisible {
		return ErrNotVisible
	}
	t.layout(bounds)
	return nil
}

func (t *Tip) layout(bounds model.Rect) {
	ref := t.presenter.host.FrameIn(t.element, t.container)
	req := engine.NewRequest(ref, bounds, t.ContentSize(), t.prefs)
	req.PreferredDirection = t.preferred

	t.placement = t.presenter.engine.Place(req)
	if t.prefs.Positioning.StickyDirection {
		t.preferred = t.placement.ResolvedDirection
	}
	t.surface.Place(t.placement, engine.BubbleShape(t.placement, req.Insets, req.Arrow))
}

// Dismiss plays the exit transition, detaches the bubble, runs completion and
// notifies the observer. A dismiss during the entrance transition starts the
// exit from wherever the entrance had got to.
func (t *Tip) Dismiss(completion func()) error {
	if t.state != StateAppearing && t.state != StateVisible {
		return ErrNotShown
	}

	if t.transition != nil {
		t.transition.Stop()
		t.transition = nil
	}
	t.state = StateDismissing

	a := t.prefs.Animating
	fromScale, fromAlpha := t.scale, t.alpha
	gen := t.nextGeneration()

	if a.DismissDuration == 0 || t.presenter.animator == nil {
		t.finishDismiss(completion)
		return nil
	}

	tr := t.presenter.animator.Start(a.DismissDurationTime(),
		func(p float64) {
			if gen != t.generation {
				return
			}
			t.applyTransform(lerp(fromScale, a.DismissScale, p), lerp(fromAlpha, a.DismissAlpha, p))
		},
		func() {
			if gen != t.generation || t.state != StateDismissing {
				return
			}
			t.finishDismiss(completion)
		})
	if gen == t.generation && t.state == StateDismissing {
		t.transition = tr
	}
	return nil
}

func (t *Tip) finishDismiss(completion func()) {
	t.transition = nil
	t.surface.Detach()
	t.state = StateDismissed
	t.logger().Debug("dismissed tip", "tip", t.id)

	if completion != nil {
		completion()
	}
	if t.observer != nil {
		t.observer.Dismissed(t)
	}
}

// Tap handles a tap on the bubble. With DismissOnTap the tip dismisses;
// otherwise a TapObserver is told about it.
func (t *Tip) Tap() {
	if t.state != StateAppearing && t.state != StateVisible {
		return
	}
	if t.prefs.Animating.DismissOnTap {
		_ = t.Dismiss(nil)
		return
	}
	if obs, ok := t.observer.(TapObserver); ok {
		obs.Tapped(t)
	}
}

// TapBackdrop handles a tap on the highlighting backdrop.
func (t *Tip) TapBackdrop() {
	if t.state != StateAppearing && t.state != StateVisible {
		return
	}
	if t.prefs.Highlighting.DismissOnBackdropTap {
		_ = t.Dismiss(nil)
	}
}

func (t *Tip) applyTransform(scale, alpha float64) {
	t.scale, t.alpha = scale, alpha
	t.surface.SetTransition(scale, alpha)
}

func (t *Tip) nextGeneration() int {
	t.generation++
	return t.generation
}

func (t *Tip) logger() *log.Logger {
	return t.presenter.logger
}

func lerp(from, to, p float64) float64 {
	return from + (to-from)*p
}

func newID() string {
	return uuid.New().String()[:8]
}
