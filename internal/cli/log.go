// Package cli implements the tipgeom command-line interface.
//
// tipgeom runs the tip placement engine outside any UI: it places a single
// bubble from command-line geometry, places whole scenario sheets imported
// from CSV or Excel and renders them to a PDF report, and writes the default
// preferences file.
//
// All commands support --verbose (-v) for debug-level logging and --config
// (-c) to choose the preferences file. Loggers and preferences are passed
// through context.Context.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/tipview/internal/model"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

type ctxKey int

const (
	loggerKey ctxKey = iota
	prefsKey
)

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

func withPreferences(ctx context.Context, p model.Preferences) context.Context {
	return context.WithValue(ctx, prefsKey, p)
}

// preferencesFromContext returns the loaded preferences, or the defaults when
// none were loaded.
func preferencesFromContext(ctx context.Context) model.Preferences {
	if p, ok := ctx.Value(prefsKey).(model.Preferences); ok {
		return p
	}
	return model.DefaultPreferences()
}
