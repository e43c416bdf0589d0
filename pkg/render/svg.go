// Package render draws positioned diagrams as SVG documents and converts
// them to PNG. A graphviz-backed sink is available as an alternative
// engine for quick previews (see dot.go).
package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/flowpad/flowpad/pkg/diagram"
	"github.com/flowpad/flowpad/pkg/layout"
)

// Option configures the SVG renderer.
type Option func(*svgRenderer)

type svgRenderer struct {
	metrics layout.Metrics
	theme   Theme
}

// WithMetrics overrides the node box dimensions. They must match what
// the layout engine used, or edges will visually detach from boxes.
func WithMetrics(m layout.Metrics) Option {
	return func(r *svgRenderer) { r.metrics = m }
}

// WithTheme overrides the palette looked up from the state's theme name.
func WithTheme(t Theme) Option {
	return func(r *svgRenderer) { r.theme = t }
}

// SVG renders the state as a standalone SVG document. The output matches
// the canvas look: themed rounded node boxes with centered labels, edges
// entering the recorded target face with an arrowhead, and edge labels on
// a background pill.
func SVG(s *diagram.State, opts ...Option) []byte {
	r := svgRenderer{
		metrics: layout.DefaultMetrics(),
		theme:   ThemeByName(s.Theme),
	}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := r.bounds(s)
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n", w, h, w, h)
	r.renderDefs(&buf)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.theme.Canvas)

	// Edges go under nodes so lines never cover labels.
	pos := make(map[string]diagram.Position, len(s.Nodes))
	for _, n := range s.Nodes {
		pos[n.ID] = n.Position
	}
	for _, e := range s.Edges {
		r.renderEdge(&buf, e, pos)
	}
	for _, n := range s.Nodes {
		r.renderNode(&buf, n)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) bounds(s *diagram.State) (float64, float64) {
	m := r.metrics
	w, h := m.NodeWidth+2*m.Margin, m.NodeHeight+2*m.Margin
	for _, n := range s.Nodes {
		if x := n.Position.X + m.NodeWidth + m.Margin; x > w {
			w = x
		}
		if y := n.Position.Y + m.NodeHeight + m.Margin; y > h {
			h = y
		}
	}
	return w, h
}

func (r *svgRenderer) renderDefs(buf *bytes.Buffer) {
	fmt.Fprintf(buf, `  <defs>
    <marker id="arrow" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="7" markerHeight="7" orient="auto-start-reverse">
      <path d="M 0 0 L 10 5 L 0 10 z" fill="%s"/>
    </marker>
  </defs>
`, r.theme.EdgeStroke)
}

func (r *svgRenderer) renderNode(buf *bytes.Buffer, n diagram.Node) {
	m := r.metrics
	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="6" fill="%s" stroke="%s" stroke-width="1.5"/>`+"\n",
		n.Position.X, n.Position.Y, m.NodeWidth, m.NodeHeight, r.theme.NodeFill, r.theme.NodeStroke)
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="central" font-family="sans-serif" font-size="13" fill="%s">%s</text>`+"\n",
		n.Position.X+m.NodeWidth/2, n.Position.Y+m.NodeHeight/2, r.theme.NodeText, html.EscapeString(n.Label))
}

func (r *svgRenderer) renderEdge(buf *bytes.Buffer, e diagram.Edge, pos map[string]diagram.Position) {
	srcPos, okS := pos[e.Source]
	dstPos, okT := pos[e.Target]
	if !okS || !okT {
		// Dangling edge: invisible rather than fatal.
		return
	}

	to := r.attachPoint(dstPos, e.TargetSide, srcPos)
	from := r.attachPoint(srcPos, e.SourceSide, dstPos)

	fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1.5" marker-end="url(#arrow)"/>`+"\n",
		from.X, from.Y, to.X, to.Y, r.theme.EdgeStroke)

	if e.Label != "" {
		midX, midY := (from.X+to.X)/2, (from.Y+to.Y)/2
		// Rough text extent; precise metrics need font shaping.
		halfW := float64(len([]rune(e.Label)))*3.6 + 6
		fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="16" rx="4" fill="%s"/>`+"\n",
			midX-halfW, midY-8, halfW*2, r.theme.LabelFill)
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="central" font-family="sans-serif" font-size="11" fill="%s">%s</text>`+"\n",
			midX, midY, r.theme.LabelText, html.EscapeString(e.Label))
	}
}

// attachPoint returns the point on the node's bounding box where an edge
// touches it. An unset side resolves to the face nearest the far
// endpoint, mirroring what the canvas renderer does on its own.
func (r *svgRenderer) attachPoint(nodePos diagram.Position, side diagram.Side, far diagram.Position) diagram.Position {
	m := r.metrics
	if side == diagram.SideUnset {
		side = nearestSide(nodePos, far, m)
	}
	switch side {
	case diagram.SideTop:
		return diagram.Position{X: nodePos.X + m.NodeWidth/2, Y: nodePos.Y}
	case diagram.SideBottom:
		return diagram.Position{X: nodePos.X + m.NodeWidth/2, Y: nodePos.Y + m.NodeHeight}
	case diagram.SideLeft:
		return diagram.Position{X: nodePos.X, Y: nodePos.Y + m.NodeHeight/2}
	default:
		return diagram.Position{X: nodePos.X + m.NodeWidth, Y: nodePos.Y + m.NodeHeight/2}
	}
}

func nearestSide(nodePos, far diagram.Position, m layout.Metrics) diagram.Side {
	cx := nodePos.X + m.NodeWidth/2
	cy := nodePos.Y + m.NodeHeight/2
	dx := far.X - cx
	dy := far.Y - cy
	// Normalize by box extent so wide boxes don't always pick left/right.
	if abs(dx)/m.NodeWidth > abs(dy)/m.NodeHeight {
		if dx > 0 {
			return diagram.SideRight
		}
		return diagram.SideLeft
	}
	if dy > 0 {
		return diagram.SideBottom
	}
	return diagram.SideTop
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
