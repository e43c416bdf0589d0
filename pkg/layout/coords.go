package layout

import "github.com/flowpad/flowpad/pkg/diagram"

// Metrics are the fixed box dimensions and spacing used for coordinate
// assignment. All nodes share one bounding box, so non-overlap within a
// rank reduces to even spacing.
type Metrics struct {
	NodeWidth  float64
	NodeHeight float64
	RankGap    float64 // gap between consecutive ranks along the primary axis
	NodeGap    float64 // gap between siblings within a rank
	Margin     float64 // canvas margin applied after normalization
}

// DefaultMetrics matches the node box the renderer draws.
func DefaultMetrics() Metrics {
	return Metrics{
		NodeWidth:  172,
		NodeHeight: 36,
		RankGap:    64,
		NodeGap:    28,
		Margin:     24,
	}
}

// assignCoordinates places node centers on a rank grid: ranks advance
// along the primary axis (Y for TopToBottom, X for LeftToRight) and
// siblings spread along the cross axis, each rank centered on the
// primary axis. Returned positions are box centers; callers convert to
// the canvas convention with centerToTopLeft.
func assignCoordinates(orders [][]string, dir diagram.Direction, m Metrics) map[string]diagram.Position {
	// Box extent and pitch along each axis depend on the orientation.
	primaryExtent, crossExtent := m.NodeHeight, m.NodeWidth
	if dir == diagram.LeftToRight {
		primaryExtent, crossExtent = m.NodeWidth, m.NodeHeight
	}
	primaryPitch := primaryExtent + m.RankGap
	crossPitch := crossExtent + m.NodeGap

	centers := make(map[string]diagram.Position)
	for rank, row := range orders {
		primary := float64(rank) * primaryPitch
		span := float64(len(row))*crossPitch - m.NodeGap
		start := -span/2 + crossExtent/2
		for i, id := range row {
			cross := start + float64(i)*crossPitch
			if dir == diagram.LeftToRight {
				centers[id] = diagram.Position{X: primary, Y: cross}
			} else {
				centers[id] = diagram.Position{X: cross, Y: primary}
			}
		}
	}
	return centers
}

// centerToTopLeft converts the layout algorithm's center-based coordinate
// for a node into the canvas top-left placement convention. This is the
// single point where the two coordinate spaces meet; keep the offset
// arithmetic here.
func centerToTopLeft(center diagram.Position, m Metrics) diagram.Position {
	return diagram.Position{
		X: center.X - m.NodeWidth/2,
		Y: center.Y - m.NodeHeight/2,
	}
}

// normalizeOrigin translates all positions so the top-left-most node sits
// at (margin, margin). Centered ranks produce negative cross coordinates;
// this shifts the whole drawing back onto the canvas.
func normalizeOrigin(positions map[string]diagram.Position, margin float64) {
	if len(positions) == 0 {
		return
	}
	first := true
	var minX, minY float64
	for _, p := range positions {
		if first {
			minX, minY = p.X, p.Y
			first = false
			continue
		}
		if p.X < minX {
			minX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
	}
	for id, p := range positions {
		positions[id] = diagram.Position{X: p.X - minX + margin, Y: p.Y - minY + margin}
	}
}
