package widgets

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/tipview/internal/engine"
	"github.com/piwi3910/tipview/internal/model"
)

// Content is hidden while the bubble is smaller or fainter than this.
const contentThreshold = 0.5

// Bubble draws a placed tip: the rounded body, the arrow and the content.
// Scale and alpha shrink and fade it towards the pointer tip.
type Bubble struct {
	widget.BaseWidget

	drawing     model.Drawing
	content     fyne.CanvasObject
	contentSize fyne.Size
	shape       engine.Shape
	pivot       model.Point
	scale       float64
	alpha       float64

	// OnTapped is called when the bubble is tapped.
	OnTapped func()
}

// NewBubble creates a bubble drawn in the given style around content, which
// keeps contentSize regardless of the bubble's own size.
func NewBubble(drawing model.Drawing, content fyne.CanvasObject, contentSize fyne.Size) *Bubble {
	b := &Bubble{
		drawing:     drawing,
		content:     content,
		contentSize: contentSize,
		scale:       1,
		alpha:       1,
	}
	b.ExtendBaseWidget(b)
	return b
}

// SetShape updates the outline and the point the bubble scales about.
func (b *Bubble) SetShape(shape engine.Shape, pointerTip model.Point) {
	b.shape = shape
	b.pivot = pointerTip
	b.Refresh()
}

// SetTransition sets the scale, about the pointer tip, and the opacity.
// Content is hidden while either is below one half.
func (b *Bubble) SetTransition(scale, alpha float64) {
	b.scale = scale
	b.alpha = alpha
	b.Refresh()
}

// Shape is the outline last set with SetShape.
func (b *Bubble) Shape() engine.Shape { return b.shape }

func (b *Bubble) Tapped(*fyne.PointEvent) {
	if b.OnTapped != nil {
		b.OnTapped()
	}
}

func (b *Bubble) CreateRenderer() fyne.WidgetRenderer {
	return newBubbleRenderer(b)
}

type bubbleRenderer struct {
	b       *Bubble
	body    *canvas.Rectangle
	arrow   *canvas.Raster
	objects []fyne.CanvasObject

	// arrow triangle in widget coordinates after scaling
	tri [3]model.Point
}

func newBubbleRenderer(b *Bubble) *bubbleRenderer {
	r := &bubbleRenderer{b: b}
	r.body = canvas.NewRectangle(color.Transparent)
	r.arrow = canvas.NewRasterWithPixels(r.arrowPixel)
	r.objects = []fyne.CanvasObject{r.body, r.arrow}
	if b.content != nil {
		r.objects = append(r.objects, b.content)
	}
	r.rebuild()
	return r
}

func (r *bubbleRenderer) rebuild() {
	b := r.b
	d := b.drawing

	body := scaleRect(b.shape.Body, b.pivot, b.scale)
	r.body.FillColor = fade(d.BackgroundColor.NRGBA(), b.alpha)
	r.body.CornerRadius = float32(d.CornerRadius * b.scale)
	r.body.StrokeWidth = float32(d.BorderWidth)
	r.body.StrokeColor = fade(d.BorderColor.NRGBA(), b.alpha)
	r.body.Move(fyne.NewPos(float32(body.X), float32(body.Y)))
	r.body.Resize(fyne.NewSize(float32(body.Width), float32(body.Height)))

	for i, p := range b.shape.Arrow {
		r.tri[i] = scalePoint(p, b.pivot, b.scale)
	}
	r.arrow.Move(fyne.NewPos(0, 0))
	r.arrow.Resize(b.Size())

	if b.content != nil {
		cf := b.shape.ContentFrame(model.Size{
			Width:  float64(b.contentSize.Width),
			Height: float64(b.contentSize.Height),
		})
		center := scalePoint(cf.Center(), b.pivot, b.scale)
		b.content.Resize(b.contentSize)
		b.content.Move(fyne.NewPos(
			float32(center.X)-b.contentSize.Width/2,
			float32(center.Y)-b.contentSize.Height/2,
		))
		if b.scale >= contentThreshold && b.alpha >= contentThreshold {
			b.content.Show()
		} else {
			b.content.Hide()
		}
	}

	r.body.Refresh()
	r.arrow.Refresh()
}

func (r *bubbleRenderer) arrowPixel(x, y, w, h int) color.Color {
	size := r.b.Size()
	if w == 0 || h == 0 {
		return color.Transparent
	}
	p := model.Point{
		X: (float64(x) + 0.5) * float64(size.Width) / float64(w),
		Y: (float64(y) + 0.5) * float64(size.Height) / float64(h),
	}
	if !inTriangle(p, r.tri[0], r.tri[1], r.tri[2]) {
		return color.Transparent
	}
	return fade(r.b.drawing.BackgroundColor.NRGBA(), r.b.alpha)
}

func (r *bubbleRenderer) Layout(size fyne.Size) { r.rebuild() }
func (r *bubbleRenderer) Refresh()              { r.rebuild() }
func (r *bubbleRenderer) Destroy()              {}
func (r *bubbleRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *bubbleRenderer) MinSize() fyne.Size {
	s := r.b.shape
	w := s.Body.MaxX()
	h := s.Body.MaxY()
	for _, p := range s.Arrow {
		if p.X > w {
			w = p.X
		}
		if p.Y > h {
			h = p.Y
		}
	}
	return fyne.NewSize(float32(w), float32(h))
}

func scalePoint(p, pivot model.Point, s float64) model.Point {
	return model.Point{
		X: pivot.X + (p.X-pivot.X)*s,
		Y: pivot.Y + (p.Y-pivot.Y)*s,
	}
}

func scaleRect(r model.Rect, pivot model.Point, s float64) model.Rect {
	o := scalePoint(model.Point{X: r.X, Y: r.Y}, pivot, s)
	return model.Rect{X: o.X, Y: o.Y, Width: r.Width * s, Height: r.Height * s}
}

// inTriangle reports whether p lies inside or on the edge of triangle abc.
// A degenerate triangle contains nothing.
func inTriangle(p, a, b, c model.Point) bool {
	if cross(a, b, c) == 0 {
		return false
	}
	d1 := cross(p, a, b)
	d2 := cross(p, b, c)
	d3 := cross(p, c, a)
	neg := d1 < 0 || d2 < 0 || d3 < 0
	pos := d1 > 0 || d2 > 0 || d3 > 0
	return !(neg && pos)
}

func cross(p, a, b model.Point) float64 {
	return (p.X-b.X)*(a.Y-b.Y) - (a.X-b.X)*(p.Y-b.Y)
}

func fade(c color.NRGBA, alpha float64) color.NRGBA {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	c.A = uint8(float64(c.A)*alpha + 0.5)
	return c
}
