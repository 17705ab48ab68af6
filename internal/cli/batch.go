package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/tipview/internal/engine"
	"github.com/piwi3910/tipview/internal/export"
	"github.com/piwi3910/tipview/internal/importer"
)

func newBatchCmd() *cobra.Command {
	var pdfPath string

	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Place every scenario in a CSV or Excel sheet",
		Long: `Place every scenario in a CSV or Excel sheet and print one line per result.

Columns: Label, Container Width, Container Height, Ref X, Ref Y, Ref Width,
Ref Height, Direction, Content Width, Content Height. A header row may name
them in any order.`,
		Example: `  tipgeom batch scenarios.csv
  tipgeom batch scenarios.xlsx --pdf report.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args[0], pdfPath)
		},
	}

	cmd.Flags().StringVar(&pdfPath, "pdf", "", "also write a PDF report to this path")
	return cmd
}

func runBatch(cmd *cobra.Command, path, pdfPath string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prefs := preferencesFromContext(ctx)

	result := importer.Import(path)
	for _, w := range result.Warnings {
		logger.Warn(w, "file", path)
	}
	for _, e := range result.Errors {
		logger.Error(e, "file", path)
	}
	if len(result.Scenarios) == 0 {
		return errors.New("no scenarios to place")
	}
	logger.Debug("imported scenarios", "file", path, "count", len(result.Scenarios))

	eng := engine.New(logger)
	out := cmd.OutOrStdout()
	entries := make([]export.Entry, 0, len(result.Scenarios))
	fallbacks, overlaps := 0, 0

	fmt.Fprintln(out, styleTitle.Render(fmt.Sprintf("%d scenarios", len(result.Scenarios))))
	for _, s := range result.Scenarios {
		req := s.Request(prefs)
		res := eng.Place(req)
		entries = append(entries, export.Entry{Label: s.Label, Request: req, Result: res})
		if res.Fallback {
			fallbacks++
		}
		if res.Overlaps {
			overlaps++
		}

		fmt.Fprintf(out, "%s %-20s %s %s %s\n",
			statusIcon(res), s.Label,
			styleDim.Render(req.PreferredDirection.String()), iconArrow,
			styleNumber.Render(fmt.Sprintf("%-6s %s", res.ResolvedDirection, res.BubbleFrame)))
	}

	fmt.Fprintln(out, styleDim.Render(fmt.Sprintf("fallbacks: %d  overlapping: %d  import errors: %d",
		fallbacks, overlaps, len(result.Errors))))

	if pdfPath != "" {
		if err := export.ExportPDF(pdfPath, entries, prefs.Drawing); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		printSuccess(out, "report written to %s", pdfPath)
	}
	return nil
}
