package cli

import (
	"context"
	"fmt"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/tipview/internal/config"
)

// skipPreferences marks commands that must run without loading the
// preferences file, such as the one that rewrites it.
const skipPreferences = "tipgeom/skip-preferences"

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// NewRootCommand builds the tipgeom command tree.
func NewRootCommand() *cobra.Command {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "tipgeom",
		Short:        "tipgeom places tip bubbles around reference elements",
		Long:         `tipgeom runs the tip placement engine from the command line: single placements, imported scenario sheets and PDF reports.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(cmd.ErrOrStderr(), level)
			ctx := withLogger(cmd.Context(), logger)

			if _, skip := cmd.Annotations[skipPreferences]; skip {
				cmd.SetContext(ctx)
				return nil
			}

			prefs, err := config.LoadPreferences(configPath)
			if err != nil {
				return err
			}
			logger.Debug("loaded preferences", "path", configPath)

			ctx = withPreferences(ctx, prefs)
			cmd.SetContext(ctx)
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("tipgeom %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigPath(), "preferences file (.json, .toml or .yaml)")

	root.AddCommand(newPlaceCmd())
	root.AddCommand(newBatchCmd())
	root.AddCommand(newConfigCmd())

	return root
}

// Execute runs the tipgeom CLI with ctx.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}
