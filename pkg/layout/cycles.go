package layout

// breakCycles removes back edges from the working graph so the layering
// step sees a DAG. Back edges are found by depth-first search with
// white/gray/black coloring: an edge into a gray node closes a cycle.
// Traversal starts from source nodes (in-degree zero) in insertion order,
// then sweeps any nodes a pure cycle kept unreached, so the result is
// deterministic for identical input order.
//
// Only the engine's working copy is mutated. The removed edges still
// exist in the caller's diagram and are rendered and reattached normally;
// their direction simply opposes rank order.
func breakCycles(g *graph) int {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(g.order))
	var backEdges [][2]string

	var dfs func(node string)
	dfs = func(node string) {
		color[node] = gray
		for _, child := range g.children(node) {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				backEdges = append(backEdges, [2]string{node, child})
			}
		}
		color[node] = black
	}

	for _, id := range g.order {
		if g.inDegree(id) == 0 && color[id] == white {
			dfs(id)
		}
	}
	for _, id := range g.order {
		if color[id] == white {
			dfs(id)
		}
	}

	for _, e := range backEdges {
		g.removeEdge(e[0], e[1])
	}
	return len(backEdges)
}
