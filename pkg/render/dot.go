package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/flowpad/flowpad/pkg/diagram"
)

// ToDOT converts a diagram to Graphviz DOT format. Graphviz does its own
// layout, so positions and attachment sides are intentionally not carried
// over; this sink exists for quick previews where the native canvas look
// is not needed.
func ToDOT(s *diagram.State) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir(s.Direction))
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range s.Nodes {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", n.ID, n.Label)
	}

	buf.WriteString("\n")
	for _, e := range s.Edges {
		if e.Label != "" {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.Source, e.Target, e.Label)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func rankdir(d diagram.Direction) string {
	if d == diagram.LeftToRight {
		return "LR"
	}
	return "TB"
}

// GraphvizSVG renders the diagram to SVG through Graphviz.
func GraphvizSVG(ctx context.Context, s *diagram.State) ([]byte, error) {
	return renderGraphviz(ctx, s, graphviz.SVG)
}

// GraphvizPNG renders the diagram to PNG through Graphviz.
func GraphvizPNG(ctx context.Context, s *diagram.State) ([]byte, error) {
	return renderGraphviz(ctx, s, graphviz.PNG)
}

func renderGraphviz(ctx context.Context, s *diagram.State, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(ToDOT(s)))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
