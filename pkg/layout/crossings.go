package layout

import "slices"

// countCrossings returns the total number of edge crossings for the given
// per-rank orderings, summing the crossings between each pair of
// consecutive ranks. It is the objective the ordering sweeps minimize.
func countCrossings(g *graph, orders [][]string) int {
	crossings := 0
	for r := 0; r+1 < len(orders); r++ {
		crossings += countLayerCrossings(g, orders[r], orders[r+1])
	}
	return crossings
}

// countLayerCrossings counts edge crossings between two adjacent ranks
// using a Fenwick tree (binary indexed tree) for O(E log V) performance.
//
// Two edges (u1,v1) and (u2,v2) cross if and only if:
//
//	pos(u1) < pos(u2) AND pos(v1) > pos(v2)
//
// which is equivalent to counting inversions in the sequence of target
// positions when edges are sorted by source position.
func countLayerCrossings(g *graph, upper, lower []string) int {
	if len(upper) == 0 || len(lower) == 0 {
		return 0
	}

	lowerPos := make(map[string]int, len(lower))
	for i, id := range lower {
		lowerPos[id] = i
	}

	type edge struct{ upper, lower int }
	edges := make([]edge, 0, len(upper)*2)
	for i, id := range upper {
		for _, child := range g.children(id) {
			if pos, ok := lowerPos[child]; ok {
				edges = append(edges, edge{i, pos})
			}
		}
	}
	if len(edges) < 2 {
		return 0
	}

	slices.SortFunc(edges, func(a, b edge) int {
		if a.upper != b.upper {
			return a.upper - b.upper
		}
		return a.lower - b.lower
	})

	// Count inversions using the Fenwick tree.
	fenwick := make([]int, len(lower)+1)
	crossings, total := 0, 0
	for _, e := range edges {
		// Count edges seen so far with target <= e.lower.
		lessOrEqual := 0
		for q := e.lower + 1; q > 0; q -= q & (-q) {
			lessOrEqual += fenwick[q]
		}
		crossings += total - lessOrEqual

		total++
		for idx := e.lower + 1; idx < len(fenwick); idx += idx & (-idx) {
			fenwick[idx]++
		}
	}
	return crossings
}
