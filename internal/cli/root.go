package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/flowpad/flowpad/pkg/buildinfo"
	"github.com/flowpad/flowpad/pkg/config"
)

// Execute runs the flowpad CLI with the given base context and returns an
// error if any command fails.
//
// The function sets up the root command with all subcommands, configures
// logging based on the --verbose flag, loads the TOML configuration, and
// executes the command tree. The logger is attached to the context and
// accessible to all commands via loggerFromContext.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "flowpad",
		Short:        "flowpad turns plain text into editable flow diagrams",
		Long:         `flowpad infers a directed graph from free-form text (lines and -> arrows), auto-arranges it with a layered layout, and exports, serves, or interactively edits the result.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			c := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(withConfig(c, cfg))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/flowpad/flowpad.toml)")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newLayoutCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newShareCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newTUICmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}

// configKey is the context key for the loaded configuration.
const configKey ctxKey = 1

func withConfig(ctx context.Context, cfg config.Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// configFromContext retrieves the loaded config, or the defaults if
// context setup failed.
func configFromContext(ctx context.Context) config.Config {
	if cfg, ok := ctx.Value(configKey).(config.Config); ok {
		return cfg
	}
	return config.Default()
}
