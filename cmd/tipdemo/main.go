// tipdemo is a small desktop window for trying tip placement by hand.
//
// Build:
//   go build -o tipdemo ./cmd/tipdemo
package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"

	"github.com/piwi3910/tipview/internal/config"
	"github.com/piwi3910/tipview/internal/model"
	"github.com/piwi3910/tipview/internal/tipview"
	"github.com/piwi3910/tipview/internal/ui"
)

func main() {
	logger := log.Default()

	prefs, err := config.LoadPreferences(config.DefaultConfigPath())
	if err != nil {
		logger.Warn("using default preferences", "err", err)
		prefs = model.DefaultPreferences()
	}

	application := app.NewWithID("com.piwi3910.tipview")
	window := application.NewWindow("TipView")

	target := widget.NewButton("Target", nil)
	stage := container.NewCenter(target)
	buttons := container.NewHBox()

	host := ui.NewOverlayHost(container.NewBorder(buttons, nil, nil, nil, stage), logger)
	presenter := tipview.NewPresenter(host, ui.NewAnimator(), prefs, logger)

	var current *tipview.Tip
	show := func(d model.Direction) {
		if current != nil {
			// a tip that is already gone reports ErrNotShown
			_ = current.Dismiss(nil)
		}
		p := presenter.Defaults()
		p.Drawing.ArrowPosition = d
		content := ui.NewTextContent("Arrow "+d.String()+". Tap to dismiss.", p.Drawing)
		tip, err := presenter.Show(tipview.ForElement(target), stage, content, &p, nil, true)
		if err != nil {
			logger.Error("show tip", "err", err)
			return
		}
		current = tip
	}

	for _, d := range []model.Direction{model.DirectionAuto, model.DirectionTop, model.DirectionBottom, model.DirectionLeft, model.DirectionRight} {
		buttons.Add(widget.NewButton(d.String(), func() { show(d) }))
	}

	window.SetContent(host.Content())
	window.Resize(fyne.NewSize(800, 600))
	window.CenterOnScreen()
	window.ShowAndRun()
}
