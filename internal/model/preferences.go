package model

import (
	"errors"
	"fmt"
	"time"
)

// TextAlignment is the horizontal alignment of text content in the bubble.
type TextAlignment string

const (
	AlignLeading  TextAlignment = "leading"
	AlignCenter   TextAlignment = "center"
	AlignTrailing TextAlignment = "trailing"
)

// Preferences is the full set of style and layout knobs for a tip. It is built
// once at startup (DefaultPreferences or a config file) and handed to every
// show call; callers copy and tweak it per tip.
type Preferences struct {
	Drawing      Drawing      `json:"drawing" toml:"drawing" yaml:"drawing"`
	Positioning  Positioning  `json:"positioning" toml:"positioning" yaml:"positioning"`
	Animating    Animating    `json:"animating" toml:"animating" yaml:"animating"`
	Highlighting Highlighting `json:"highlighting" toml:"highlighting" yaml:"highlighting"`
}

// Drawing controls how the bubble looks.
type Drawing struct {
	CornerRadius    float64       `json:"corner_radius" toml:"corner_radius" yaml:"corner_radius"`
	ArrowWidth      float64       `json:"arrow_width" toml:"arrow_width" yaml:"arrow_width"`
	ArrowHeight     float64       `json:"arrow_height" toml:"arrow_height" yaml:"arrow_height"`
	ForegroundColor Color         `json:"foreground_color" toml:"foreground_color" yaml:"foreground_color"`
	BackgroundColor Color         `json:"background_color" toml:"background_color" yaml:"background_color"`
	ArrowPosition   Direction     `json:"arrow_position" toml:"arrow_position" yaml:"arrow_position"`
	TextAlignment   TextAlignment `json:"text_alignment" toml:"text_alignment" yaml:"text_alignment"`
	BorderWidth     float64       `json:"border_width" toml:"border_width" yaml:"border_width"`
	BorderColor     Color         `json:"border_color" toml:"border_color" yaml:"border_color"`
	FontSize        float64       `json:"font_size" toml:"font_size" yaml:"font_size"`
	Bold            bool          `json:"bold" toml:"bold" yaml:"bold"`
	Italic          bool          `json:"italic" toml:"italic" yaml:"italic"`
}

// Positioning controls spacing and wrapping.
type Positioning struct {
	BubbleMarginH   float64 `json:"bubble_margin_h" toml:"bubble_margin_h" yaml:"bubble_margin_h"`
	BubbleMarginV   float64 `json:"bubble_margin_v" toml:"bubble_margin_v" yaml:"bubble_margin_v"`
	ContentPaddingH float64 `json:"content_padding_h" toml:"content_padding_h" yaml:"content_padding_h"`
	ContentPaddingV float64 `json:"content_padding_v" toml:"content_padding_v" yaml:"content_padding_v"`
	MaxWidth        float64 `json:"max_width" toml:"max_width" yaml:"max_width"`
	// StickyDirection keeps the last resolved direction as the preference for
	// later relayouts instead of retrying the configured one.
	StickyDirection bool `json:"sticky_direction" toml:"sticky_direction" yaml:"sticky_direction"`
}

// Animating controls the entrance and exit transitions. Durations are in
// milliseconds.
type Animating struct {
	ShowDuration     int     `json:"show_duration" toml:"show_duration" yaml:"show_duration"`
	DismissDuration  int     `json:"dismiss_duration" toml:"dismiss_duration" yaml:"dismiss_duration"`
	ShowInitialScale float64 `json:"show_initial_scale" toml:"show_initial_scale" yaml:"show_initial_scale"`
	ShowInitialAlpha float64 `json:"show_initial_alpha" toml:"show_initial_alpha" yaml:"show_initial_alpha"`
	ShowFinalScale   float64 `json:"show_final_scale" toml:"show_final_scale" yaml:"show_final_scale"`
	DismissScale     float64 `json:"dismiss_scale" toml:"dismiss_scale" yaml:"dismiss_scale"`
	DismissAlpha     float64 `json:"dismiss_alpha" toml:"dismiss_alpha" yaml:"dismiss_alpha"`
	DismissOnTap     bool    `json:"dismiss_on_tap" toml:"dismiss_on_tap" yaml:"dismiss_on_tap"`
}

// Highlighting controls the optional backdrop that dims the container and
// cuts a circular hole around the reference element. CircleColor tints the
// hole outside the element; the zero colour leaves it clear.
type Highlighting struct {
	Enabled      bool    `json:"enabled" toml:"enabled" yaml:"enabled"`
	CircleMargin float64 `json:"circle_margin" toml:"circle_margin" yaml:"circle_margin"`
	// CircleRadius overrides the computed radius when positive.
	CircleRadius         float64 `json:"circle_radius" toml:"circle_radius" yaml:"circle_radius"`
	BackdropColor        Color   `json:"backdrop_color" toml:"backdrop_color" yaml:"backdrop_color"`
	CircleColor          Color   `json:"circle_color" toml:"circle_color" yaml:"circle_color"`
	DismissOnBackdropTap bool    `json:"dismiss_on_backdrop_tap" toml:"dismiss_on_backdrop_tap" yaml:"dismiss_on_backdrop_tap"`
}

// DefaultPreferences returns the stock look: white text on a red bubble,
// arrow position chosen automatically, tap to dismiss.
func DefaultPreferences() Preferences {
	return Preferences{
		Drawing: Drawing{
			CornerRadius:    5,
			ArrowWidth:      10,
			ArrowHeight:     5,
			ForegroundColor: Color{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
			BackgroundColor: Color{R: 0xff, G: 0x00, B: 0x00, A: 0xff},
			ArrowPosition:   DirectionAuto,
			TextAlignment:   AlignCenter,
			BorderWidth:     0,
			BorderColor:     Color{},
			FontSize:        15,
		},
		Positioning: Positioning{
			BubbleMarginH:   1,
			BubbleMarginV:   1,
			ContentPaddingH: 10,
			ContentPaddingV: 10,
			MaxWidth:        200,
		},
		Animating: Animating{
			ShowDuration:     700,
			DismissDuration:  700,
			ShowInitialScale: 0,
			ShowInitialAlpha: 0,
			ShowFinalScale:   1,
			DismissScale:     0.1,
			DismissAlpha:     0,
			DismissOnTap:     true,
		},
		Highlighting: Highlighting{
			Enabled:              false,
			CircleMargin:         4,
			BackdropColor:        Color{R: 0, G: 0, B: 0, A: 0x80},
			DismissOnBackdropTap: true,
		},
	}
}

// Insets extracts the engine spacing from the positioning group.
func (p Preferences) Insets() Insets {
	return Insets{
		BubbleMarginH:   p.Positioning.BubbleMarginH,
		BubbleMarginV:   p.Positioning.BubbleMarginV,
		ContentPaddingH: p.Positioning.ContentPaddingH,
		ContentPaddingV: p.Positioning.ContentPaddingV,
	}
}

// Arrow extracts the pointer size from the drawing group.
func (p Preferences) Arrow() ArrowGeometry {
	return ArrowGeometry{Width: p.Drawing.ArrowWidth, Height: p.Drawing.ArrowHeight}
}

// ShowDurationTime converts ShowDuration from milliseconds.
func (a Animating) ShowDurationTime() time.Duration {
	return time.Duration(a.ShowDuration) * time.Millisecond
}

// DismissDurationTime converts DismissDuration from milliseconds.
func (a Animating) DismissDurationTime() time.Duration {
	return time.Duration(a.DismissDuration) * time.Millisecond
}

// Validate reports every field that is out of range.
func (p Preferences) Validate() error {
	var errs []error
	nonNegative := func(name string, v float64) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s must be >= 0, got %g", name, v))
		}
	}
	unit := func(name string, v float64) {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%s must be within [0,1], got %g", name, v))
		}
	}

	d := p.Drawing
	nonNegative("drawing.corner_radius", d.CornerRadius)
	nonNegative("drawing.arrow_width", d.ArrowWidth)
	nonNegative("drawing.arrow_height", d.ArrowHeight)
	nonNegative("drawing.border_width", d.BorderWidth)
	if d.FontSize <= 0 {
		errs = append(errs, fmt.Errorf("drawing.font_size must be > 0, got %g", d.FontSize))
	}
	if !d.ArrowPosition.Valid() {
		errs = append(errs, fmt.Errorf("drawing.arrow_position: invalid direction %d", int(d.ArrowPosition)))
	}
	switch d.TextAlignment {
	case AlignLeading, AlignCenter, AlignTrailing:
	default:
		errs = append(errs, fmt.Errorf("drawing.text_alignment: unknown alignment %q", d.TextAlignment))
	}

	pos := p.Positioning
	nonNegative("positioning.bubble_margin_h", pos.BubbleMarginH)
	nonNegative("positioning.bubble_margin_v", pos.BubbleMarginV)
	nonNegative("positioning.content_padding_h", pos.ContentPaddingH)
	nonNegative("positioning.content_padding_v", pos.ContentPaddingV)
	if pos.MaxWidth <= 0 {
		errs = append(errs, fmt.Errorf("positioning.max_width must be > 0, got %g", pos.MaxWidth))
	}

	a := p.Animating
	if a.ShowDuration < 0 {
		errs = append(errs, fmt.Errorf("animating.show_duration must be >= 0, got %d", a.ShowDuration))
	}
	if a.DismissDuration < 0 {
		errs = append(errs, fmt.Errorf("animating.dismiss_duration must be >= 0, got %d", a.DismissDuration))
	}
	nonNegative("animating.show_initial_scale", a.ShowInitialScale)
	nonNegative("animating.show_final_scale", a.ShowFinalScale)
	nonNegative("animating.dismiss_scale", a.DismissScale)
	unit("animating.show_initial_alpha", a.ShowInitialAlpha)
	unit("animating.dismiss_alpha", a.DismissAlpha)

	nonNegative("highlighting.circle_margin", p.Highlighting.CircleMargin)
	nonNegative("highlighting.circle_radius", p.Highlighting.CircleRadius)

	return errors.Join(errs...)
}
