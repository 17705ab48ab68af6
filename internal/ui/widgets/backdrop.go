package widgets

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/tipview/internal/model"
)

// Backdrop dims the area behind a tip, leaving a circular hole around the
// element the tip points at. The hole can be tinted with a circle colour;
// the element itself always stays clear.
type Backdrop struct {
	widget.BaseWidget

	color   color.NRGBA
	circle  color.NRGBA
	center  model.Point
	radius  float64
	element model.Rect
	alpha   float64

	OnTapped func()
}

// NewBackdrop creates a fully opaque backdrop in colour c with its hole
// tinted by circle.
func NewBackdrop(c, circle model.Color) *Backdrop {
	bd := &Backdrop{color: c.NRGBA(), circle: circle.NRGBA(), alpha: 1}
	bd.ExtendBaseWidget(bd)
	return bd
}

// SetHole moves the hole and the element it surrounds. Both are in the
// backdrop's own coordinates.
func (bd *Backdrop) SetHole(center model.Point, radius float64, element model.Rect) {
	bd.center = center
	bd.radius = radius
	bd.element = element
	bd.Refresh()
}

// SetAlpha scales the backdrop's opacity, following the tip's transition.
func (bd *Backdrop) SetAlpha(alpha float64) {
	bd.alpha = alpha
	bd.Refresh()
}

func (bd *Backdrop) Tapped(*fyne.PointEvent) {
	if bd.OnTapped != nil {
		bd.OnTapped()
	}
}

// ColorAt returns the colour drawn at p, in backdrop coordinates.
func (bd *Backdrop) ColorAt(p model.Point) color.NRGBA {
	dx, dy := p.X-bd.center.X, p.Y-bd.center.Y
	if dx*dx+dy*dy <= bd.radius*bd.radius {
		if bd.element.ContainsPoint(p) {
			return color.NRGBA{}
		}
		return fade(bd.circle, bd.alpha)
	}
	return fade(bd.color, bd.alpha)
}

func (bd *Backdrop) CreateRenderer() fyne.WidgetRenderer {
	r := &backdropRenderer{bd: bd}
	r.raster = canvas.NewRasterWithPixels(r.pixel)
	r.objects = []fyne.CanvasObject{r.raster}
	return r
}

type backdropRenderer struct {
	bd      *Backdrop
	raster  *canvas.Raster
	objects []fyne.CanvasObject
}

func (r *backdropRenderer) pixel(x, y, w, h int) color.Color {
	size := r.bd.Size()
	if w == 0 || h == 0 {
		return color.Transparent
	}
	return r.bd.ColorAt(model.Point{
		X: (float64(x) + 0.5) * float64(size.Width) / float64(w),
		Y: (float64(y) + 0.5) * float64(size.Height) / float64(h),
	})
}

func (r *backdropRenderer) Layout(size fyne.Size) { r.raster.Resize(size) }
func (r *backdropRenderer) MinSize() fyne.Size    { return fyne.NewSize(0, 0) }
func (r *backdropRenderer) Refresh()              { r.raster.Refresh() }
func (r *backdropRenderer) Destroy()              {}
func (r *backdropRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}
