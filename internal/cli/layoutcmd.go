package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowpad/flowpad/pkg/export"
	"github.com/flowpad/flowpad/pkg/layout"
)

// newLayoutCmd creates the layout command: re-run auto-arrange on an
// existing diagram file, rewriting positions and attachment sides.
func newLayoutCmd() *cobra.Command {
	var (
		output    string
		direction string
	)

	cmd := &cobra.Command{
		Use:   "layout <diagram.json>",
		Short: "Re-run auto-layout on a diagram file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			cfg := configFromContext(ctx)

			dir, err := parseDirection(direction)
			if err != nil {
				return err
			}

			st, err := readDiagram(args[0], dir, cfg.Theme)
			if err != nil {
				return err
			}

			p := newProgress(logger)
			if err := layout.AutoLayout(st, engineFromConfig(cfg)); err != nil {
				return err
			}
			p.done(fmt.Sprintf("Arranged %d nodes", len(st.Nodes)))

			data, err := export.Marshal(st)
			if err != nil {
				return err
			}
			if output == "" {
				output = args[0]
			}
			return writeOutput(output, data)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default: overwrite input)")
	cmd.Flags().StringVarP(&direction, "direction", "d", "TB", "layout direction: TB or LR")

	return cmd
}
