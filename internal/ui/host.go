// Package ui adapts tip views to fyne: an overlay layer that bubbles are
// attached to, a fyne-driven animator and the content types a bubble can show.
package ui

import (
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"

	"github.com/piwi3910/tipview/internal/engine"
	"github.com/piwi3910/tipview/internal/model"
	"github.com/piwi3910/tipview/internal/tipview"
	"github.com/piwi3910/tipview/internal/ui/widgets"
)

// ErrUnsupportedContent is returned by Attach for content the host cannot draw.
var ErrUnsupportedContent = errors.New("tip content is not renderable")

// OverlayHost stacks a free-form layer over the window content. Bubbles are
// added to that layer and positioned relative to the container they were
// shown in.
//
// The layer is laid out by the host: whenever fyne lays it out again, as it
// does when the window is resized, every visible tip is placed anew against
// its container's current bounds.
type OverlayHost struct {
	root     fyne.CanvasObject
	layer    *fyne.Container
	stack    *fyne.Container
	logger   *log.Logger
	surfaces []*overlaySurface

	// absPos reports an object's position on the canvas.
	absPos func(fyne.CanvasObject) fyne.Position
}

// NewOverlayHost wraps root. Put Content() into the window instead of root.
func NewOverlayHost(root fyne.CanvasObject, logger *log.Logger) *OverlayHost {
	if logger == nil {
		logger = log.Default()
	}
	h := &OverlayHost{
		root:   root,
		logger: logger,
		absPos: absolutePosition,
	}
	h.layer = container.New(&overlayLayout{host: h})
	h.stack = container.NewStack(root, h.layer)
	return h
}

// overlayLayout leaves bubbles where their surfaces put them and re-runs
// placement for visible tips.
type overlayLayout struct {
	host *OverlayHost
}

func (l *overlayLayout) Layout(_ []fyne.CanvasObject, _ fyne.Size) {
	l.host.relayout()
}

func (l *overlayLayout) MinSize(_ []fyne.CanvasObject) fyne.Size {
	return fyne.Size{}
}

// relayout places every visible tip again. Tips still appearing or already
// dismissing keep their frame.
func (h *OverlayHost) relayout() {
	for _, s := range h.surfaces {
		if s.tip.State() != tipview.StateVisible {
			continue
		}
		if err := s.tip.Relayout(); err != nil {
			h.logger.Debug("relayout skipped", "tip", s.tip.ID(), "err", err)
		}
	}
}

func absolutePosition(o fyne.CanvasObject) fyne.Position {
	app := fyne.CurrentApp()
	if app == nil {
		return fyne.Position{}
	}
	return app.Driver().AbsolutePositionForObject(o)
}

// Content is the window content: root with the overlay layer on top.
func (h *OverlayHost) Content() fyne.CanvasObject { return h.stack }

// Layer holds every attached bubble and backdrop.
func (h *OverlayHost) Layer() *fyne.Container { return h.layer }

// DefaultContainer is the wrapped root, used when Show gets no container.
func (h *OverlayHost) DefaultContainer() tipview.Element { return h.root }

// IsAncestor reports whether element sits somewhere below parent in the
// object tree. Only fyne containers and the container widgets listed in
// children are descended into.
func (h *OverlayHost) IsAncestor(parent, element tipview.Element) bool {
	c, ok := parent.(fyne.CanvasObject)
	if !ok {
		return false
	}
	e, ok := element.(fyne.CanvasObject)
	if !ok {
		return false
	}
	for _, child := range children(c) {
		if child == e || h.IsAncestor(child, e) {
			return true
		}
	}
	return false
}

// children lists the objects a container holds directly: fyne containers,
// scroll, split, tabs, cards and accordions. Other widgets are leaves, so an
// element embedded in a custom widget is not found below it.
func children(o fyne.CanvasObject) []fyne.CanvasObject {
	switch v := o.(type) {
	case *fyne.Container:
		return v.Objects
	case *container.Scroll:
		return []fyne.CanvasObject{v.Content}
	case *container.Split:
		return []fyne.CanvasObject{v.Leading, v.Trailing}
	case *container.AppTabs:
		return tabContents(v.Items)
	case *container.DocTabs:
		return tabContents(v.Items)
	case *widget.Card:
		return []fyne.CanvasObject{v.Content}
	case *widget.Accordion:
		objs := make([]fyne.CanvasObject, 0, len(v.Items))
		for _, item := range v.Items {
			objs = append(objs, item.Detail)
		}
		return objs
	}
	return nil
}

func tabContents(items []*container.TabItem) []fyne.CanvasObject {
	objs := make([]fyne.CanvasObject, 0, len(items))
	for _, item := range items {
		objs = append(objs, item.Content)
	}
	return objs
}

// FrameIn returns element's frame in parent's coordinate space.
func (h *OverlayHost) FrameIn(element, parent tipview.Element) model.Rect {
	e := element.(fyne.CanvasObject)
	pos := h.absPos(e).Subtract(h.absPos(parent.(fyne.CanvasObject)))
	size := e.Size()
	return model.NewRect(float64(pos.X), float64(pos.Y), float64(size.Width), float64(size.Height))
}

// Bounds is parent's local frame, origin at 0,0.
func (h *OverlayHost) Bounds(parent tipview.Element) model.Rect {
	size := parent.(fyne.CanvasObject).Size()
	return model.NewRect(0, 0, float64(size.Width), float64(size.Height))
}

// Attach adds the tip's bubble, and its backdrop when highlighting is on, to
// the overlay layer. The content must implement Renderable.
func (h *OverlayHost) Attach(parent tipview.Element, tip *tipview.Tip) (tipview.Surface, error) {
	r, ok := tip.Content().(Renderable)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedContent, tip.Content())
	}

	prefs := tip.Preferences()
	cs := tip.ContentSize()
	obj := container.NewThemeOverride(r.CanvasObject(prefs.Positioning.MaxWidth), NewTipTheme(prefs.Drawing))

	s := &overlaySurface{
		host:      h,
		tip:       tip,
		container: parent.(fyne.CanvasObject),
		bubble:    widgets.NewBubble(prefs.Drawing, obj, fyne.NewSize(float32(cs.Width), float32(cs.Height))),
	}
	s.bubble.OnTapped = tip.Tap

	if prefs.Highlighting.Enabled {
		s.backdrop = widgets.NewBackdrop(prefs.Highlighting.BackdropColor, prefs.Highlighting.CircleColor)
		s.backdrop.OnTapped = tip.TapBackdrop
		h.layer.Add(s.backdrop)
	}
	h.surfaces = append(h.surfaces, s)
	h.layer.Add(s.bubble)
	h.logger.Debug("attached tip", "tip", tip.ID(), "highlight", prefs.Highlighting.Enabled)
	return s, nil
}

type overlaySurface struct {
	host      *OverlayHost
	tip       *tipview.Tip
	container fyne.CanvasObject
	bubble    *widgets.Bubble
	backdrop  *widgets.Backdrop
}

// origin is the container's top-left in layer coordinates.
func (s *overlaySurface) origin() fyne.Position {
	return s.host.absPos(s.container).Subtract(s.host.absPos(s.host.layer))
}

func (s *overlaySurface) Place(res model.PlacementResult, shape engine.Shape) {
	o := s.origin()
	f := res.BubbleFrame
	s.bubble.Move(o.AddXY(float32(f.X), float32(f.Y)))
	s.bubble.Resize(fyne.NewSize(float32(f.Width), float32(f.Height)))
	s.bubble.SetShape(shape, res.PointerTip)

	if s.backdrop != nil {
		s.backdrop.Move(o)
		s.backdrop.Resize(s.container.Size())
		ref := s.host.FrameIn(s.tip.Element(), s.container)
		center, radius := engine.HighlightCircle(ref, s.tip.Preferences().Highlighting)
		s.backdrop.SetHole(center, radius, ref)
	}
}

func (s *overlaySurface) SetTransition(scale, alpha float64) {
	s.bubble.SetTransition(scale, alpha)
	if s.backdrop != nil {
		s.backdrop.SetAlpha(alpha)
	}
}

func (s *overlaySurface) Detach() {
	for i, o := range s.host.surfaces {
		if o == s {
			s.host.surfaces = append(s.host.surfaces[:i], s.host.surfaces[i+1:]...)
			break
		}
	}
	s.host.layer.Remove(s.bubble)
	if s.backdrop != nil {
		s.host.layer.Remove(s.backdrop)
	}
}
