// Package layout assigns 2D positions to diagram nodes and decides which
// face of each target node its incoming edges attach to.
//
// The default engine is a Sugiyama-style layered layout: break cycles,
// rank nodes by longest path, reduce crossings with barycenter sweeps,
// then place fixed-size boxes on a rank grid. The algorithm works on a
// private copy of the graph structure, so the caller's nodes and edges
// are never mutated; only new positions come back.
//
// The engine is a strategy behind the Engine interface so the algorithm
// can be swapped without touching callers.
package layout

import (
	"slices"

	"github.com/flowpad/flowpad/pkg/diagram"
)

// Engine computes positions for a set of nodes given the edges and the
// flow direction. Implementations must be deterministic for identical
// input order and must return a position for every input node, in the
// canvas top-left convention.
type Engine interface {
	Layout(nodes []diagram.Node, edges []diagram.Edge, dir diagram.Direction) ([]diagram.Node, error)
}

// Layered is the default hierarchical layout engine.
//
// Known limitation: cycles are tolerated by dropping back edges from the
// working copy before ranking, so nodes on a cycle are ranked as if the
// cycle's closing edge pointed forward. The dropped edges still render;
// reattachment gives them a sensible entry face.
type Layered struct {
	Metrics Metrics
	Sweeps  int // barycenter sweep passes; 0 means the default
}

const defaultSweeps = 4

// NewLayered returns a Layered engine with the default metrics.
func NewLayered() *Layered {
	return &Layered{Metrics: DefaultMetrics(), Sweeps: defaultSweeps}
}

// Layout implements Engine. Node and edge identities are preserved; the
// returned slice is a copy of nodes with only positions rewritten. An
// empty node set yields an empty result and no error.
func (l *Layered) Layout(nodes []diagram.Node, edges []diagram.Edge, dir diagram.Direction) ([]diagram.Node, error) {
	if len(nodes) == 0 {
		return nil, nil
	}
	if !dir.Valid() {
		dir = diagram.TopToBottom
	}
	m := l.Metrics
	if m.NodeWidth == 0 || m.NodeHeight == 0 {
		m = DefaultMetrics()
	}
	sweeps := l.Sweeps
	if sweeps <= 0 {
		sweeps = defaultSweeps
	}

	g := newGraph(nodes, edges)
	breakCycles(g)
	ranks := assignLayers(g)
	orders := orderRows(g, ranks, sweeps)

	centers := assignCoordinates(orders, dir, m)
	placed := make(map[string]diagram.Position, len(centers))
	for id, c := range centers {
		placed[id] = centerToTopLeft(c, m)
	}
	normalizeOrigin(placed, m.Margin)

	out := slices.Clone(nodes)
	for i := range out {
		if p, ok := placed[out[i].ID]; ok {
			out[i].Position = p
		}
	}
	return out, nil
}

// AutoLayout runs the full auto-arrange pass on a session state: layout,
// position write-back, then edge reattachment. This is what "generate
// from text", initial load, and the Auto-Layout action all call.
func AutoLayout(s *diagram.State, eng Engine) error {
	if eng == nil {
		eng = NewLayered()
	}
	laidOut, err := eng.Layout(s.Nodes, s.Edges, s.Direction)
	if err != nil {
		return err
	}
	s.SetPositions(laidOut)
	s.Edges = Reattach(s.Edges, s.Nodes, s.Direction)
	return nil
}
