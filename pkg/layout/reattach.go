package layout

import (
	"slices"

	"github.com/flowpad/flowpad/pkg/diagram"
)

// Reattach recomputes the attachment face on the target node of every
// edge whose endpoints both exist among nodes, and resets the source
// side to unset so the renderer picks the nearest face. Edges with a
// missing endpoint pass through unchanged.
//
// The rule keeps arrowheads entering the downstream face even when the
// layout produces back edges or same-rank siblings: in TopToBottom mode
// a target at or below its source is entered from the top, otherwise
// from the bottom; LeftToRight uses the same rule on the X axis with the
// left and right faces.
//
// Reattach is idempotent: with unchanged positions a second run assigns
// identical sides. It must run after every layout pass.
func Reattach(edges []diagram.Edge, nodes []diagram.Node, dir diagram.Direction) []diagram.Edge {
	pos := make(map[string]diagram.Position, len(nodes))
	for _, n := range nodes {
		pos[n.ID] = n.Position
	}

	out := slices.Clone(edges)
	for i := range out {
		src, okS := pos[out[i].Source]
		dst, okT := pos[out[i].Target]
		if !okS || !okT {
			continue
		}
		out[i].SourceSide = diagram.SideUnset
		if dir == diagram.LeftToRight {
			if dst.X >= src.X {
				out[i].TargetSide = diagram.SideLeft
			} else {
				out[i].TargetSide = diagram.SideRight
			}
		} else {
			if dst.Y >= src.Y {
				out[i].TargetSide = diagram.SideTop
			} else {
				out[i].TargetSide = diagram.SideBottom
			}
		}
	}
	return out
}
