package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/tipview/internal/engine"
	"github.com/piwi3910/tipview/internal/model"
)

type placeOptions struct {
	container string
	ref       string
	direction string
	content   string
	json      bool
}

func newPlaceCmd() *cobra.Command {
	var opts placeOptions

	cmd := &cobra.Command{
		Use:   "place",
		Short: "Place a single bubble",
		Long: `Place a single bubble next to a reference rectangle inside a container.

The container has its origin at 0,0. Geometry is given as WxH for sizes and
X,Y,W,H for the reference rectangle.`,
		Example: `  tipgeom place --container 600x600 --ref 250,250,100,100 --direction top --content 80x20`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlace(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.container, "container", "", "container size WxH (required)")
	cmd.Flags().StringVar(&opts.ref, "ref", "", "reference rectangle X,Y,W,H (required)")
	cmd.Flags().StringVarP(&opts.direction, "direction", "d", "", "arrow direction: auto, top, bottom, left, right (default from preferences)")
	cmd.Flags().StringVar(&opts.content, "content", "", "content size WxH (required)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the result as JSON")
	_ = cmd.MarkFlagRequired("container")
	_ = cmd.MarkFlagRequired("ref")
	_ = cmd.MarkFlagRequired("content")

	return cmd
}

func runPlace(cmd *cobra.Command, opts placeOptions) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prefs := preferencesFromContext(ctx)

	container, err := parseSize(opts.container)
	if err != nil {
		return fmt.Errorf("--container: %w", err)
	}
	ref, err := parseRect(opts.ref)
	if err != nil {
		return fmt.Errorf("--ref: %w", err)
	}
	content, err := parseSize(opts.content)
	if err != nil {
		return fmt.Errorf("--content: %w", err)
	}
	if opts.direction != "" {
		d, err := model.ParseDirection(opts.direction)
		if err != nil {
			return fmt.Errorf("--direction: %w", err)
		}
		prefs.Drawing.ArrowPosition = d
	}

	content = engine.NormalizeContentSize(content, prefs.Arrow())
	req := engine.NewRequest(ref, model.NewRect(0, 0, container.Width, container.Height), content, prefs)
	res := engine.New(logger).Place(req)

	out := cmd.OutOrStdout()
	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	fmt.Fprintln(out, styleTitle.Render("Placement"))
	printField(out, "preferred", req.PreferredDirection.String())
	printField(out, "resolved", fmt.Sprintf("%s %s", statusIcon(res), res.ResolvedDirection))
	printField(out, "frame", styleNumber.Render(res.BubbleFrame.String()))
	printField(out, "tip", styleNumber.Render(fmt.Sprintf("(%.1f, %.1f)", res.PointerTip.X, res.PointerTip.Y)))
	if res.Fallback {
		printField(out, "", styleWarning.Render(fmt.Sprintf("%s fell back from %s", iconArrow, req.PreferredDirection)))
	}
	if res.Overlaps {
		printField(out, "", styleError.Render("no side fits, bubble overlaps the reference"))
	}
	return nil
}

// parseSize parses "WxH".
func parseSize(s string) (model.Size, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "x")
	if len(parts) != 2 {
		return model.Size{}, fmt.Errorf("invalid size %q, want WxH", s)
	}
	vals, err := parseFloats(parts)
	if err != nil {
		return model.Size{}, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if vals[0] < 0 || vals[1] < 0 {
		return model.Size{}, fmt.Errorf("invalid size %q: negative dimension", s)
	}
	return model.Size{Width: vals[0], Height: vals[1]}, nil
}

// parseRect parses "X,Y,W,H".
func parseRect(s string) (model.Rect, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 4 {
		return model.Rect{}, fmt.Errorf("invalid rectangle %q, want X,Y,W,H", s)
	}
	vals, err := parseFloats(parts)
	if err != nil {
		return model.Rect{}, fmt.Errorf("invalid rectangle %q: %w", s, err)
	}
	if vals[2] < 0 || vals[3] < 0 {
		return model.Rect{}, fmt.Errorf("invalid rectangle %q: negative dimension", s)
	}
	return model.NewRect(vals[0], vals[1], vals[2], vals[3]), nil
}

func parseFloats(parts []string) ([]float64, error) {
	vals := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}
