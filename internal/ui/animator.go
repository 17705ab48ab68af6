package ui

import (
	"time"

	"fyne.io/fyne/v2"

	"github.com/piwi3910/tipview/internal/tipview"
)

// Animator runs tip transitions on fyne's animation loop.
type Animator struct {
	Curve fyne.AnimationCurve
}

// NewAnimator returns an animator with fyne's ease-in-out curve.
func NewAnimator() *Animator {
	return &Animator{Curve: fyne.AnimationEaseInOut}
}

// Start begins a transition. fyne has no completion hook, so done runs from
// the tick that reaches the end.
func (a *Animator) Start(d time.Duration, tick func(float64), done func()) tipview.Transition {
	finished := false
	anim := fyne.NewAnimation(d, func(p float32) {
		if finished {
			return
		}
		tick(float64(p))
		if p >= 1 {
			finished = true
			done()
		}
	})
	if a.Curve != nil {
		anim.Curve = a.Curve
	}
	anim.Start()
	return anim
}
