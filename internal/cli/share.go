package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowpad/flowpad/pkg/export"
	"github.com/flowpad/flowpad/pkg/share"
)

// newShareCmd creates the share command with encode/decode subcommands for
// URL-safe diagram tokens.
func newShareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Encode and decode shareable diagram tokens",
		Long: `Share packs a diagram into a URL-safe token that carries the full
graph, theme, and direction, suitable for embedding in a link fragment.`,
	}

	cmd.AddCommand(newShareEncodeCmd())
	cmd.AddCommand(newShareDecodeCmd())
	return cmd
}

func newShareEncodeCmd() *cobra.Command {
	var (
		direction string
		theme     string
	)

	cmd := &cobra.Command{
		Use:   "encode <diagram.json>",
		Short: "Encode a diagram file as a share token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromContext(cmd.Context())

			dir, err := parseDirection(direction)
			if err != nil {
				return err
			}
			if theme == "" {
				theme = cfg.Theme
			}

			st, err := readDiagram(args[0], dir, theme)
			if err != nil {
				return err
			}
			token, err := share.Encode(st)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVarP(&direction, "direction", "d", "TB", "layout direction: TB or LR")
	cmd.Flags().StringVarP(&theme, "theme", "t", "", "theme name (light, dark, mono)")
	return cmd
}

func newShareDecodeCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "decode <token>",
		Short: "Decode a share token back into diagram JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := share.Decode(args[0])
			if err != nil {
				return err
			}
			data, err := export.Marshal(st)
			if err != nil {
				return err
			}
			return writeOutput(output, data)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "-", "output path (- for stdout)")
	return cmd
}
