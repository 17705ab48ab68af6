package tipview

import "errors"

var (
	// ErrAlreadyShown is returned by Show on a tip that is appearing or visible.
	ErrAlreadyShown = errors.New("tip is already shown")
	// ErrDismissed is returned by Show on a tip that has been dismissed.
	// Dismissed tips are not reused; create a new one.
	ErrDismissed = errors.New("tip has been dismissed")
	// ErrNotVisible is returned by Relayout outside the visible state.
	ErrNotVisible = errors.New("tip is not visible")
	// ErrNotShown is returned by Dismiss when there is nothing to dismiss.
	ErrNotShown = errors.New("tip is not shown")
)
