package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flowpad/flowpad/pkg/diagram"
	"github.com/flowpad/flowpad/pkg/export"
	"github.com/flowpad/flowpad/pkg/layout"
	"github.com/flowpad/flowpad/pkg/parse"
	"github.com/flowpad/flowpad/pkg/render"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	input     string // text file path, or "-" for stdin
	output    string // output file path, or "-" for stdout
	format    string // "json", "svg", or "png"
	direction string // "TB" or "LR"
	theme     string
}

// newGenerateCmd creates the generate command: text in, diagram out.
func newGenerateCmd() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate [file]",
		Short: "Generate a diagram from plain text",
		Long: `Generate infers a diagram from free-form text and auto-arranges it.

Lines containing -> (or the Unicode arrow) become chains of connected
nodes; without arrows, each line becomes a step in a sequence. The result
is written as diagram JSON, SVG, or PNG.

Examples:
  echo "parse -> layout -> render" | flowpad generate -f svg -o flow.svg
  flowpad generate notes.txt -o diagram.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.input = args[0]
			}
			return runGenerate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "-", "output path (- for stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "json", "output format: json, svg, png")
	cmd.Flags().StringVarP(&opts.direction, "direction", "d", "TB", "layout direction: TB or LR")
	cmd.Flags().StringVarP(&opts.theme, "theme", "t", "", "theme name (light, dark, mono)")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts generateOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	cfg := configFromContext(ctx)

	dir, err := parseDirection(opts.direction)
	if err != nil {
		return err
	}
	theme := opts.theme
	if theme == "" {
		theme = cfg.Theme
	}

	raw, err := readInput(opts.input)
	if err != nil {
		return err
	}

	p := newProgress(logger)
	result := parse.Parse(raw)
	if result.Empty() {
		return fmt.Errorf("no structure found: add at least two lines, or connect labels with ->")
	}
	st := diagram.FromGraph(result.Nodes, result.Edges, dir, theme)

	eng := engineFromConfig(cfg)
	if err := layout.AutoLayout(st, eng); err != nil {
		return err
	}
	p.done(fmt.Sprintf("Arranged %d nodes, %d edges", len(st.Nodes), len(st.Edges)))

	var data []byte
	switch strings.ToLower(opts.format) {
	case "json":
		data, err = export.Marshal(st)
	case "svg":
		data = render.SVG(st, render.WithMetrics(eng.Metrics))
	case "png":
		data, err = render.ToPNG(render.SVG(st, render.WithMetrics(eng.Metrics)), 2.0)
	default:
		return fmt.Errorf("unknown format %q (must be json, svg, or png)", opts.format)
	}
	if err != nil {
		return err
	}
	return writeOutput(opts.output, data)
}
