package layout

import "github.com/flowpad/flowpad/pkg/diagram"

// graph is the layout engine's private working copy of the diagram
// structure: adjacency lists keyed by node ID, with nodes kept in
// insertion order so every traversal is deterministic. Edges whose
// endpoints are missing from the node set are dropped here (they pass
// through the engine untouched), and cycle breaking mutates only this
// copy, never the caller's edges.
type graph struct {
	order []string // node IDs in insertion order
	out   map[string][]string
	in    map[string][]string
}

func newGraph(nodes []diagram.Node, edges []diagram.Edge) *graph {
	g := &graph{
		order: make([]string, 0, len(nodes)),
		out:   make(map[string][]string, len(nodes)),
		in:    make(map[string][]string, len(nodes)),
	}
	known := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if known[n.ID] {
			continue
		}
		known[n.ID] = true
		g.order = append(g.order, n.ID)
	}
	for _, e := range edges {
		if !known[e.Source] || !known[e.Target] {
			continue
		}
		g.out[e.Source] = append(g.out[e.Source], e.Target)
		g.in[e.Target] = append(g.in[e.Target], e.Source)
	}
	return g
}

// removeEdge drops the first occurrence of from→to from the adjacency
// lists. Parallel edges keep their remaining occurrences.
func (g *graph) removeEdge(from, to string) {
	g.out[from] = removeFirst(g.out[from], to)
	g.in[to] = removeFirst(g.in[to], from)
}

func removeFirst(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func (g *graph) inDegree(id string) int      { return len(g.in[id]) }
func (g *graph) children(id string) []string { return g.out[id] }
func (g *graph) parents(id string) []string  { return g.in[id] }
