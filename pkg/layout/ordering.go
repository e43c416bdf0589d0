package layout

import "slices"

// orderRows decides the left-to-right (or top-to-bottom, for horizontal
// layouts) sequence of nodes within each rank. The initial order is
// insertion order; a fixed number of alternating barycenter sweeps then
// reorders each rank by the mean position of its neighbors in the
// adjacent rank. After every sweep the total crossing count is compared
// against the best ordering seen so far, and the sweep is kept only if
// it is no worse. The heuristic is not optimal, but it is deterministic:
// sorts are stable and ties keep the previous relative order.
func orderRows(g *graph, ranks map[string]int, sweeps int) [][]string {
	maxRank := 0
	for _, r := range ranks {
		if r > maxRank {
			maxRank = r
		}
	}

	orders := make([][]string, maxRank+1)
	for _, id := range g.order {
		r := ranks[id]
		orders[r] = append(orders[r], id)
	}

	best := cloneOrders(orders)
	bestCrossings := countCrossings(g, best)
	if bestCrossings == 0 {
		return best
	}

	for pass := 0; pass < sweeps; pass++ {
		// Downward: order each rank by parent barycenters.
		for r := 1; r <= maxRank; r++ {
			sortByBarycenter(orders[r], orders[r-1], g.parents)
		}
		// Upward: order each rank by child barycenters.
		for r := maxRank - 1; r >= 0; r-- {
			sortByBarycenter(orders[r], orders[r+1], g.children)
		}

		if c := countCrossings(g, orders); c <= bestCrossings {
			bestCrossings = c
			best = cloneOrders(orders)
			if bestCrossings == 0 {
				break
			}
		}
	}
	return best
}

// sortByBarycenter stably reorders row by the mean index of each node's
// neighbors in the adjacent rank. Nodes without neighbors there keep
// their own current index as the sort key, which leaves isolated nodes
// roughly where they were.
func sortByBarycenter(row, adjacent []string, neighbors func(string) []string) {
	if len(row) < 2 {
		return
	}
	adjPos := make(map[string]int, len(adjacent))
	for i, id := range adjacent {
		adjPos[id] = i
	}

	keys := make(map[string]float64, len(row))
	for i, id := range row {
		sum, count := 0, 0
		for _, nb := range neighbors(id) {
			if p, ok := adjPos[nb]; ok {
				sum += p
				count++
			}
		}
		if count == 0 {
			keys[id] = float64(i)
		} else {
			keys[id] = float64(sum) / float64(count)
		}
	}

	slices.SortStableFunc(row, func(a, b string) int {
		ka, kb := keys[a], keys[b]
		switch {
		case ka < kb:
			return -1
		case ka > kb:
			return 1
		default:
			return 0
		}
	})
}

func cloneOrders(orders [][]string) [][]string {
	out := make([][]string, len(orders))
	for i, row := range orders {
		out[i] = slices.Clone(row)
	}
	return out
}
