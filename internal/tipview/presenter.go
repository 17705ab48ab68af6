package tipview

import (
	"github.com/charmbracelet/log"

	"github.com/piwi3910/tipview/internal/engine"
	"github.com/piwi3910/tipview/internal/model"
)

// Presenter creates tips for one host. It carries the application-wide
// default preferences; build it once at startup and pass it to whatever
// shows tips.
type Presenter struct {
	host     Host
	animator Animator
	engine   *engine.Engine
	logger   *log.Logger
	defaults model.Preferences
}

// NewPresenter wires a presenter. A nil animator shows and dismisses without
// transitions; a nil logger uses log.Default().
func NewPresenter(host Host, animator Animator, defaults model.Preferences, logger *log.Logger) *Presenter {
	if logger == nil {
		logger = log.Default()
	}
	return &Presenter{
		host:     host,
		animator: animator,
		engine:   engine.New(logger),
		logger:   logger,
		defaults: defaults,
	}
}

// Defaults returns a copy of the presenter's default preferences.
func (p *Presenter) Defaults() model.Preferences {
	return p.defaults
}

// NewTip creates a hidden tip. A nil prefs uses the presenter defaults.
func (p *Presenter) NewTip(content Content, prefs *model.Preferences, observer Observer) *Tip {
	resolved := p.defaults
	if prefs != nil {
		resolved = *prefs
	}
	return &Tip{
		id:        newID(),
		presenter: p,
		prefs:     resolved,
		content:   content,
		observer:  observer,
		preferred: resolved.Drawing.ArrowPosition,
		scale:     1,
		alpha:     1,
	}
}

// Show creates a tip and shows it in one call. The tip is returned even when
// the anchor has no element and nothing was shown.
func (p *Presenter) Show(anchor Anchor, container Element, content Content, prefs *model.Preferences, observer Observer, animated bool) (*Tip, error) {
	t := p.NewTip(content, prefs, observer)
	if err := t.Show(anchor, container, animated); err != nil {
		return nil, err
	}
	return t, nil
}
