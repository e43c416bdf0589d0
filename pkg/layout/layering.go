package layout

// assignLayers computes a rank for every node using the longest-path rule
// via topological sort (Kahn's algorithm): each node lands one rank below
// its deepest parent, sources land at rank 0. Disconnected nodes have no
// parents and stay at rank 0, where the coordinate pass gives them
// non-overlapping slots.
//
// The graph must be acyclic; run breakCycles first. The queue is seeded
// in insertion order so equal graphs produce equal rankings.
func assignLayers(g *graph) map[string]int {
	ranks := make(map[string]int, len(g.order))
	inDegree := make(map[string]int, len(g.order))
	queue := make([]string, 0, len(g.order))

	for _, id := range g.order {
		degree := g.inDegree(id)
		inDegree[id] = degree
		if degree == 0 {
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, child := range g.children(curr) {
			if rank := ranks[curr] + 1; rank > ranks[child] {
				ranks[child] = rank
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	return ranks
}
