package tipview

import (
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/tipview/internal/engine"
	"github.com/piwi3910/tipview/internal/model"
)

// ─── Fakes ─────────────────────────────────────────────────

// node is an element with an absolute frame and a parent link.
type node struct {
	name   string
	frame  model.Rect
	parent *node
}

type fakeHost struct {
	window    *node
	surfaces  []*fakeSurface
	attachErr error
}

func (h *fakeHost) DefaultContainer() Element { return h.window }

func (h *fakeHost) IsAncestor(container, element Element) bool {
	c := container.(*node)
	for n := element.(*node).parent; n != nil; n = n.parent {
		if n == c {
			return true
		}
	}
	return false
}

func (h *fakeHost) FrameIn(element, container Element) model.Rect {
	e, c := element.(*node), container.(*node)
	return e.frame.Translate(-c.frame.X, -c.frame.Y)
}

func (h *fakeHost) Bounds(container Element) model.Rect {
	c := container.(*node)
	return model.NewRect(0, 0, c.frame.Width, c.frame.Height)
}

func (h *fakeHost) Attach(container Element, tip *Tip) (Surface, error) {
	if h.attachErr != nil {
		return nil, h.attachErr
	}
	s := &fakeSurface{container: container}
	h.surfaces = append(h.surfaces, s)
	return s, nil
}

type fakeSurface struct {
	container   Element
	placements  []model.PlacementResult
	shapes      []engine.Shape
	transitions int
	detached    int
}

func (s *fakeSurface) Place(res model.PlacementResult, shape engine.Shape) {
	s.placements = append(s.placements, res)
	s.shapes = append(s.shapes, shape)
}

func (s *fakeSurface) SetTransition(scale, alpha float64) { s.transitions++ }
func (s *fakeSurface) Detach()                            { s.detached++ }

func (s *fakeSurface) last() model.PlacementResult {
	return s.placements[len(s.placements)-1]
}

// manualAnimator hands out transitions the test advances by hand.
type manualAnimator struct {
	running []*manualTransition
}

type manualTransition struct {
	duration time.Duration
	tick     func(float64)
	done     func()
	stopped  bool
}

func (m *manualAnimator) Start(d time.Duration, tick func(float64), done func()) Transition {
	tr := &manualTransition{duration: d, tick: tick, done: done}
	m.running = append(m.running, tr)
	return tr
}

func (m *manualAnimator) current() *manualTransition {
	return m.running[len(m.running)-1]
}

func (tr *manualTransition) Stop() { tr.stopped = true }

func (tr *manualTransition) step(p float64) {
	if !tr.stopped {
		tr.tick(p)
	}
}

func (tr *manualTransition) finish() {
	if tr.stopped {
		return
	}
	tr.tick(1)
	tr.done()
}

type fixedContent struct {
	size  model.Size
	calls int
}

func (c *fixedContent) MeasureContent(maxWidth float64) model.Size {
	c.calls++
	return c.size
}

type recordingObserver struct {
	dismissed int
	tapped    int
}

func (o *recordingObserver) Dismissed(*Tip) { o.dismissed++ }
func (o *recordingObserver) Tapped(*Tip)    { o.tapped++ }

type fixture struct {
	host      *fakeHost
	animator  *manualAnimator
	presenter *Presenter
	window    *node
	panel     *node
	button    *node
	content   *fixedContent
	observer  *recordingObserver
}

// newFixture builds a 600x600 window holding a panel and a 100x100 button
// centred in the window.
func newFixture() *fixture {
	window := &node{name: "window", frame: model.NewRect(0, 0, 600, 600)}
	panel := &node{name: "panel", frame: model.NewRect(0, 0, 600, 600), parent: window}
	button := &node{name: "button", frame: model.NewRect(250, 250, 100, 100), parent: panel}

	host := &fakeHost{window: window}
	animator := &manualAnimator{}
	return &fixture{
		host:      host,
		animator:  animator,
		presenter: NewPresenter(host, animator, model.DefaultPreferences(), log.New(&discard{})),
		window:    window,
		panel:     panel,
		button:    button,
		content:   &fixedContent{size: model.Size{Width: 80, Height: 20}},
		observer:  &recordingObserver{},
	}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func (f *fixture) prefs(d model.Direction) *model.Preferences {
	p := model.DefaultPreferences()
	p.Drawing.ArrowPosition = d
	return &p
}

func (f *fixture) newTip(d model.Direction) *Tip {
	return f.presenter.NewTip(f.content, f.prefs(d), f.observer)
}

// ─── Show ──────────────────────────────────────────────────

func TestShow_NotAnimatedIsImmediatelyVisible(t *testing.T) {
	f := newFixture()
	tip := f.newTip(model.DirectionTop)

	require.NoError(t, tip.Show(ForElement(f.button), f.panel, false))

	assert.Equal(t, StateVisible, tip.State())
	require.Len(t, f.host.surfaces, 1)
	surface := f.host.surfaces[0]
	assert.Equal(t, f.panel, surface.container)
	assert.Equal(t, model.DirectionTop, surface.last().ResolvedDirection)
	assert.Equal(t, f.button.frame.MaxY(), surface.last().BubbleFrame.Y)

	scale, alpha := tip.Transform()
	assert.Equal(t, 1.0, scale)
	assert.Equal(t, 1.0, alpha)
	assert.Empty(t, f.animator.running, "no transition without animation")
}

func TestShow_AnimatedGoesThroughAppearing(t *testing.T) {
	f := newFixture()
	tip := f.newTip(model.DirectionTop)

	require.NoError(t, tip.Show(ForElement(f.button), nil, true))
	assert.Equal(t, StateAppearing, tip.State())

	scale, alpha := tip.Transform()
	assert.Equal(t, 0.0, scale)
	assert.Equal(t, 0.0, alpha)

	tr := f.animator.current()
	assert.Equal(t, 700*time.Millisecond, tr.duration)

	tr.step(0.5)
	scale, alpha = tip.Transform()
	assert.InDelta(t, 0.5, scale, 1e-9)
	assert.InDelta(t, 0.5, alpha, 1e-9)
	assert.InDelta(t, 0.5, tip.Progress(), 1e-9)

	tr.finish()
	assert.Equal(t, StateVisible, tip.State())
	scale, alpha = tip.Transform()
	assert.Equal(t, 1.0, scale)
	assert.Equal(t, 1.0, alpha)
}

func TestShow_NilContainerUsesDefault(t *testing.T) {
	f := newFixture()
	tip := f.newTip(model.DirectionTop)

	require.NoError(t, tip.Show(ForElement(f.button), nil, false))
	assert.Equal(t, f.window, tip.Container())
}

func TestShow_TwiceIsRejected(t *testing.T) {
	f := newFixture()
	tip := f.newTip(model.DirectionTop)

	require.NoError(t, tip.Show(ForElement(f.button), nil, true))
	assert.ErrorIs(t, tip.Show(ForElement(f.button), nil, true), ErrAlreadyShown)
	assert.Len(t, f.host.surfaces, 1, "second show must not attach again")

	f.animator.current().finish()
	assert.ErrorIs(t, tip.Show(ForElement(f.button), nil, true), ErrAlreadyShown)
}

func TestShow_AfterDismissIsRejected(t *testing.T) {
	f := newFixture()
	tip := f.newTip(model.DirectionTop)

	require.NoError(t, tip.Show(ForElement(f.button), nil, false))
	require.NoError(t, tip.Dismiss(nil))
	f.animator.current().finish()

	assert.ErrorIs(t, tip.Show(ForElement(f.button), nil, false), ErrDismissed)
}

func TestShow_AnchorWithoutElementIsNoop(t *testing.T) {
	f := newFixture()
	tip := f.newTip(model.DirectionTop)

	require.NoError(t, tip.Show(TextItem{Title: "Share"}, nil, true))
	assert.Equal(t, StateHidden, tip.State())
	assert.Empty(t, f.host.surfaces)
	assert.Zero(t, f.content.calls, "content is not measured for a no-op show")
}

func TestShow_CustomItemUsesItsElement(t *testing.T) {
	f := newFixture()
	tip := f.newTip(model.DirectionTop)

	require.NoError(t, tip.Show(CustomItem{Custom: f.button}, nil, false))
	assert.Equal(t, f.button, tip.Element())
}

func TestShow_ContainerMustBeAncestor(t *testing.T) {
	f := newFixture()
	stranger := &node{name: "stranger", frame: model.NewRect(0, 0, 10, 10)}
	tip := f.newTip(model.DirectionTop)

	assert.Panics(t, func() {
		_ = tip.Show(ForElement(f.button), stranger, false)
	})
}

func TestShow_AttachFailureLeavesTipHidden(t *testing.T) {
	f := newFixture()
	f.host.attachErr = errors.New("no overlay")
	tip := f.newTip(model.DirectionTop)

	err := tip.Show(ForElement(f.button), nil, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no overlay")
	assert.Equal(t, StateHidden, tip.State())
}

func TestShow_FrameIsTranslatedIntoContainerSpace(t *testing.T) {
	f := newFixture()
	f.panel.frame = model.NewRect(100, 50, 400, 400)
	f.button.frame = model.NewRect(250, 250, 100, 100)
	tip := f.newTip(model.DirectionTop)

	require.NoError(t, tip.Show(ForElement(f.button), f.panel, false))
	// button is at (150,200) inside the panel
	assert.Equal(t, 300.0, tip.Placement().BubbleFrame.Y)
}

// ─── Relayout ──────────────────────────────────────────────

func TestRelayout_OnlyWhenVisible(t *testing.T) {
	f := newFixture()
	tip := f.newTip(model.DirectionTop)
	assert.ErrorIs(t, tip.Relayout(), ErrNotVisible)

	require.NoError(t, tip.Show(ForElement(f.button), nil, true))
	assert.ErrorIs(t, tip.Relayout(), ErrNotVisible, "not while appearing")
}

func TestRelayout_UsesNewBoundsWithoutReplayingEntrance(t *testing.T) {
	f := newFixture()
	f.button.frame = model.NewRect(0, 400, 100, 100)
	tip := f.newTip(model.DirectionTop)
	require.NoError(t, tip.Show(ForElement(f.button), nil, false))
	require.Equal(t, model.DirectionTop, tip.Placement().ResolvedDirection)

	surface := f.host.surfaces[0]
	transitions := surface.transitions

	// The window shrinks so the button now sits on its bottom edge.
	f.window.frame = model.NewRect(0, 0, 600, 500)
	require.NoError(t, tip.Relayout())

	assert.Equal(t, model.DirectionBottom, tip.Placement().ResolvedDirection)
	assert.Equal(t, 400.0, tip.Placement().BubbleFrame.MaxY())
	assert.Len(t, surface.placements, 2)
	assert.Equal(t, transitions, surface.transitions, "relayout does not touch the transition")
	assert.Empty(t, f.animator.running)
}

func TestRelayout_RetriesConfiguredDirection(t *testing.T) {
	f := newFixture()
	f.button.frame = model.NewRect(0, 500, 100, 100)
	tip := f.newTip(model.DirectionTop)
	require.NoError(t, tip.Show(ForElement(f.button), nil, false))
	require.Equal(t, model.DirectionBottom, tip.Placement().ResolvedDirection)
	assert.Equal(t, model.DirectionTop, tip.PreferredDirection())

	require.NoError(t, tip.RelayoutIn(model.NewRect(0, 0, 600, 800)))
	assert.Equal(t, model.DirectionTop, tip.Placement().ResolvedDirection, "obstruction gone, preference honoured again")
}

func TestRelayout_StickyDirectionKeepsFallback(t *testing.T) {
	f := newFixture()
	f.button.frame = model.NewRect(0, 500, 100, 100)
	prefs := f.prefs(model.DirectionTop)
	prefs.Positioning.StickyDirection = true
	tip := f.presenter.NewTip(f.content, prefs, nil)

	require.NoError(t, tip.Show(ForElement(f.button), nil, false))
	require.Equal(t, model.DirectionBottom, tip.Placement().ResolvedDirection)
	assert.Equal(t, model.DirectionBottom, tip.PreferredDirection())

	require.NoError(t, tip.RelayoutIn(model.NewRect(0, 0, 600, 800)))
	assert.Equal(t, model.DirectionBottom, tip.Placement().ResolvedDirection)
}

func TestContentIsMeasuredOnce(t *testing.T) {
	f := newFixture()
	tip := f.newTip(model.DirectionTop)
	require.NoError(t, tip.Show(ForElement(f.button), nil, false))
	require.NoError(t, tip.Relayout())
	require.NoError(t, tip.Relayout())

	assert.Equal(t, 1, f.content.calls)
	assert.Equal(t, model.Size{Width: 80, Height: 20}, tip.ContentSize())
}

// ─── Dismiss ───────────────────────────────────────────────

func TestDismiss_NotifiesOnce(t *testing.T) {
	f := newFixture()
	tip := f.newTip(model.DirectionTop)
	require.NoError(t, tip.Show(ForElement(f.button), nil, false))

	completions := 0
	require.NoError(t, tip.Dismiss(func() { completions++ }))
	assert.Equal(t, StateDismissing, tip.State())
	assert.Zero(t, f.observer.dismissed, "observer waits for the exit transition")

	f.animator.current().finish()
	assert.Equal(t, StateDismissed, tip.State())
	assert.Equal(t, 1, completions)
	assert.Equal(t, 1, f.observer.dismissed)
	assert.Equal(t, 1, f.host.surfaces[0].detached)

	assert.ErrorIs(t, tip.Dismiss(func() { completions++ }), ErrNotShown)
	assert.Equal(t, 1, completions)
	assert.Equal(t, 1, f.observer.dismissed)
}

func TestDismiss_WhileDismissingIsRejected(t *testing.T) {
	f := newFixture()
	tip := f.newTip(model.DirectionTop)
	require.NoError(t, tip.Show(ForElement(f.button), nil, false))
	require.NoError(t, tip.Dismiss(nil))

	assert.ErrorIs(t, tip.Dismiss(nil), ErrNotShown)
	assert.Len(t, f.animator.running, 1)
}

func TestDismiss_HiddenTipIsRejected(t *testing.T) {
	f := newFixture()
	tip := f.newTip(model.DirectionTop)
	assert.ErrorIs(t, tip.Dismiss(nil), ErrNotShown)
}

func TestDismiss_InterruptsEntrance(t *testing.T) {
	f := newFixture()
	tip := f.newTip(model.DirectionTop)
	require.NoError(t, tip.Show(ForElement(f.button), nil, true))

	entrance := f.animator.current()
	entrance.step(0.4)

	require.NoError(t, tip.Dismiss(nil))
	assert.True(t, entrance.stopped, "entrance is cancelled")

	exit := f.animator.current()
	require.NotSame(t, entrance, exit)
	exit.step(0.5)

	// Exit starts from the interpolated entrance state (0.4, 0.4).
	scale, alpha := tip.Transform()
	assert.InDelta(t, 0.25, scale, 1e-9)
	assert.InDelta(t, 0.2, alpha, 1e-9)

	// A late tick from the cancelled entrance changes nothing.
	entrance.tick(0.9)
	scale, _ = tip.Transform()
	assert.InDelta(t, 0.25, scale, 1e-9)
	entrance.done()
	assert.Equal(t, StateDismissing, tip.State())

	exit.finish()
	assert.Equal(t, StateDismissed, tip.State())
	assert.Equal(t, 1, f.observer.dismissed)
}

func TestDismiss_ImmediateAnimator(t *testing.T) {
	f := newFixture()
	presenter := NewPresenter(f.host, ImmediateAnimator{}, model.DefaultPreferences(), nil)
	tip := presenter.NewTip(f.content, nil, f.observer)

	require.NoError(t, tip.Show(ForElement(f.button), nil, true))
	assert.Equal(t, StateVisible, tip.State())

	require.NoError(t, tip.Dismiss(nil))
	assert.Equal(t, StateDismissed, tip.State())
	assert.Equal(t, 1, f.observer.dismissed)
}

func TestDismiss_ZeroDurationSkipsAnimator(t *testing.T) {
	f := newFixture()
	prefs := f.prefs(model.DirectionTop)
	prefs.Animating.DismissDuration = 0
	tip := f.presenter.NewTip(f.content, prefs, f.observer)

	require.NoError(t, tip.Show(ForElement(f.button), nil, false))
	require.NoError(t, tip.Dismiss(nil))
	assert.Equal(t, StateDismissed, tip.State())
	assert.Empty(t, f.animator.running)
}

// ─── Taps ──────────────────────────────────────────────────

func TestTap_DismissesByDefault(t *testing.T) {
	f := newFixture()
	tip := f.newTip(model.DirectionTop)
	require.NoError(t, tip.Show(ForElement(f.button), nil, false))

	tip.Tap()
	assert.Equal(t, StateDismissing, tip.State())
	assert.Zero(t, f.observer.tapped)
}

func TestTap_NotifiesWhenDismissOnTapIsOff(t *testing.T) {
	f := newFixture()
	prefs := f.prefs(model.DirectionTop)
	prefs.Animating.DismissOnTap = false
	tip := f.presenter.NewTip(f.content, prefs, f.observer)
	require.NoError(t, tip.Show(ForElement(f.button), nil, false))

	tip.Tap()
	assert.Equal(t, StateVisible, tip.State())
	assert.Equal(t, 1, f.observer.tapped)
}

func TestTap_PlainObserverIsNotRequiredToHandleTaps(t *testing.T) {
	f := newFixture()
	prefs := f.prefs(model.DirectionTop)
	prefs.Animating.DismissOnTap = false
	dismissed := 0
	tip := f.presenter.NewTip(f.content, prefs, ObserverFunc(func(*Tip) { dismissed++ }))
	require.NoError(t, tip.Show(ForElement(f.button), nil, false))

	assert.NotPanics(t, tip.Tap)
	assert.Equal(t, StateVisible, tip.State())
	assert.Zero(t, dismissed)
}

func TestTap_IgnoredWhenHidden(t *testing.T) {
	f := newFixture()
	tip := f.newTip(model.DirectionTop)
	tip.Tap()
	assert.Equal(t, StateHidden, tip.State())
}

func TestTapBackdrop(t *testing.T) {
	f := newFixture()
	tip := f.newTip(model.DirectionTop)
	require.NoError(t, tip.Show(ForElement(f.button), nil, false))

	tip.TapBackdrop()
	assert.Equal(t, StateDismissing, tip.State())

	f2 := newFixture()
	prefs := f2.prefs(model.DirectionTop)
	prefs.Highlighting.DismissOnBackdropTap = false
	kept := f2.presenter.NewTip(f2.content, prefs, nil)
	require.NoError(t, kept.Show(ForElement(f2.button), nil, false))
	kept.TapBackdrop()
	assert.Equal(t, StateVisible, kept.State())
}

// ─── Presenter ─────────────────────────────────────────────

func TestPresenterShow(t *testing.T) {
	f := newFixture()
	tip, err := f.presenter.Show(ForElement(f.button), nil, f.content, nil, f.observer, false)
	require.NoError(t, err)

	assert.Len(t, tip.ID(), 8)
	assert.Equal(t, StateVisible, tip.State())
	assert.Equal(t, f.presenter.Defaults().Drawing.ArrowPosition, tip.PreferredDirection())
	assert.Contains(t, tip.String(), tip.ID())
}

func TestPresenterShow_PropagatesErrors(t *testing.T) {
	f := newFixture()
	f.host.attachErr = errors.New("boom")
	tip, err := f.presenter.Show(ForElement(f.button), nil, f.content, nil, nil, false)
	assert.Error(t, err)
	assert.Nil(t, tip)
}

func TestPresenterTipsHaveDistinctIDs(t *testing.T) {
	f := newFixture()
	a := f.presenter.NewTip(f.content, nil, nil)
	b := f.presenter.NewTip(f.content, nil, nil)
	assert.NotEqual(t, a.ID(), b.ID())
}
