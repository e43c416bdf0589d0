package layout

import (
	"testing"

	"github.com/flowpad/flowpad/pkg/diagram"
)

func nodesOf(ids ...string) []diagram.Node {
	out := make([]diagram.Node, len(ids))
	for i, id := range ids {
		out[i] = diagram.Node{ID: id, Label: id}
	}
	return out
}

func edgesOf(pairs ...[2]string) []diagram.Edge {
	out := make([]diagram.Edge, len(pairs))
	for i, p := range pairs {
		out[i] = diagram.Edge{ID: "e" + p[0] + p[1], Source: p[0], Target: p[1]}
	}
	return out
}

func positionsByID(nodes []diagram.Node) map[string]diagram.Position {
	out := make(map[string]diagram.Position, len(nodes))
	for _, n := range nodes {
		out[n.ID] = n.Position
	}
	return out
}

func TestLayout_Empty(t *testing.T) {
	eng := NewLayered()

	out, err := eng.Layout(nil, nil, diagram.TopToBottom)
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if len(out) != 0 {
		t.Errorf("Layout() = %d nodes, want 0", len(out))
	}
}

func TestLayout_EveryNodePlaced(t *testing.T) {
	eng := NewLayered()
	nodes := nodesOf("a", "b", "c", "loner")
	edges := edgesOf([2]string{"a", "b"}, [2]string{"b", "c"})

	out, err := eng.Layout(nodes, edges, diagram.TopToBottom)
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if len(out) != len(nodes) {
		t.Fatalf("Layout() = %d nodes, want %d", len(out), len(nodes))
	}
	for i, n := range out {
		if n.ID != nodes[i].ID {
			t.Errorf("node %d = %s, want %s (order preserved)", i, n.ID, nodes[i].ID)
		}
	}
}

func TestLayout_RanksAdvanceTB(t *testing.T) {
	eng := NewLayered()
	nodes := nodesOf("a", "b", "c")
	edges := edgesOf([2]string{"a", "b"}, [2]string{"b", "c"})

	out, err := eng.Layout(nodes, edges, diagram.TopToBottom)
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	pos := positionsByID(out)

	if !(pos["a"].Y < pos["b"].Y && pos["b"].Y < pos["c"].Y) {
		t.Errorf("Y must increase along the chain: a=%v b=%v c=%v",
			pos["a"].Y, pos["b"].Y, pos["c"].Y)
	}
	// A chain is a single column; centering aligns X.
	if pos["a"].X != pos["b"].X || pos["b"].X != pos["c"].X {
		t.Errorf("chain should share X: a=%v b=%v c=%v", pos["a"].X, pos["b"].X, pos["c"].X)
	}
}

func TestLayout_RanksAdvanceLR(t *testing.T) {
	eng := NewLayered()
	nodes := nodesOf("a", "b", "c")
	edges := edgesOf([2]string{"a", "b"}, [2]string{"b", "c"})

	out, err := eng.Layout(nodes, edges, diagram.LeftToRight)
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	pos := positionsByID(out)

	if !(pos["a"].X < pos["b"].X && pos["b"].X < pos["c"].X) {
		t.Errorf("X must increase along the chain: a=%v b=%v c=%v",
			pos["a"].X, pos["b"].X, pos["c"].X)
	}
	if pos["a"].Y != pos["b"].Y || pos["b"].Y != pos["c"].Y {
		t.Errorf("chain should share Y: a=%v b=%v c=%v", pos["a"].Y, pos["b"].Y, pos["c"].Y)
	}
}

func TestLayout_Deterministic(t *testing.T) {
	eng := NewLayered()
	nodes := nodesOf("a", "b", "c", "d", "e", "f")
	edges := edgesOf(
		[2]string{"a", "b"},
		[2]string{"a", "c"},
		[2]string{"b", "d"},
		[2]string{"c", "d"},
		[2]string{"d", "e"},
		[2]string{"a", "f"},
	)

	first, err := eng.Layout(nodes, edges, diagram.TopToBottom)
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	for run := 0; run < 5; run++ {
		again, err := eng.Layout(nodes, edges, diagram.TopToBottom)
		if err != nil {
			t.Fatalf("Layout() error = %v", err)
		}
		for i := range first {
			if again[i].Position != first[i].Position {
				t.Fatalf("run %d: node %s at %v, first run had %v",
					run, again[i].ID, again[i].Position, first[i].Position)
			}
		}
	}
}

func TestLayout_NoOverlap(t *testing.T) {
	eng := NewLayered()
	// Fan-out plus a disconnected pair, enough siblings to collide if
	// spacing were wrong.
	nodes := nodesOf("root", "a", "b", "c", "d", "x", "y")
	edges := edgesOf(
		[2]string{"root", "a"},
		[2]string{"root", "b"},
		[2]string{"root", "c"},
		[2]string{"root", "d"},
		[2]string{"x", "y"},
	)

	out, err := eng.Layout(nodes, edges, diagram.TopToBottom)
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}

	m := eng.Metrics
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			a, b := out[i], out[j]
			overlapX := a.Position.X < b.Position.X+m.NodeWidth && b.Position.X < a.Position.X+m.NodeWidth
			overlapY := a.Position.Y < b.Position.Y+m.NodeHeight && b.Position.Y < a.Position.Y+m.NodeHeight
			if overlapX && overlapY {
				t.Errorf("nodes %s and %s overlap: %v vs %v", a.ID, b.ID, a.Position, b.Position)
			}
		}
	}
}

func TestLayout_CycleTolerated(t *testing.T) {
	eng := NewLayered()
	nodes := nodesOf("a", "b", "c")
	edges := edgesOf([2]string{"a", "b"}, [2]string{"b", "c"}, [2]string{"c", "a"})

	out, err := eng.Layout(nodes, edges, diagram.TopToBottom)
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("Layout() = %d nodes, want 3", len(out))
	}
	// The caller's edge slice is untouched; the back edge survives.
	if len(edges) != 3 {
		t.Errorf("input edges mutated: %d remain, want 3", len(edges))
	}
	pos := positionsByID(out)
	if !(pos["a"].Y < pos["b"].Y && pos["b"].Y < pos["c"].Y) {
		t.Errorf("cycle should rank as a chain with the closing edge dropped: %v", pos)
	}
}

func TestLayout_InputNotMutated(t *testing.T) {
	eng := NewLayered()
	nodes := nodesOf("a", "b")
	nodes[0].Position = diagram.Position{X: 500, Y: 500}
	edges := edgesOf([2]string{"a", "b"})

	_, err := eng.Layout(nodes, edges, diagram.TopToBottom)
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if nodes[0].Position.X != 500 || nodes[0].Position.Y != 500 {
		t.Errorf("input node position mutated: %v", nodes[0].Position)
	}
}

func TestLayout_MarginApplied(t *testing.T) {
	eng := NewLayered()
	nodes := nodesOf("a", "b", "c")
	edges := edgesOf([2]string{"a", "b"}, [2]string{"a", "c"})

	out, err := eng.Layout(nodes, edges, diagram.TopToBottom)
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}

	m := eng.Metrics
	minX, minY := out[0].Position.X, out[0].Position.Y
	for _, n := range out[1:] {
		if n.Position.X < minX {
			minX = n.Position.X
		}
		if n.Position.Y < minY {
			minY = n.Position.Y
		}
	}
	if minX != m.Margin || minY != m.Margin {
		t.Errorf("origin = (%v, %v), want (%v, %v)", minX, minY, m.Margin, m.Margin)
	}
}

func TestLayout_UnknownEdgeEndpointsIgnored(t *testing.T) {
	eng := NewLayered()
	nodes := nodesOf("a", "b")
	edges := edgesOf([2]string{"a", "ghost"}, [2]string{"a", "b"})

	out, err := eng.Layout(nodes, edges, diagram.TopToBottom)
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if len(out) != 2 {
		t.Errorf("Layout() = %d nodes, want 2", len(out))
	}
}

func TestAutoLayout(t *testing.T) {
	st := diagram.NewState(diagram.TopToBottom, "light")
	a := st.AddNode("a", diagram.Position{})
	b := st.AddNode("b", diagram.Position{})
	if _, err := st.Connect(a.ID, b.ID); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	if err := AutoLayout(st, nil); err != nil {
		t.Fatalf("AutoLayout() error = %v", err)
	}
	if st.Nodes[0].Position == st.Nodes[1].Position {
		t.Errorf("positions not assigned: both at %v", st.Nodes[0].Position)
	}
	if st.Edges[0].TargetSide != diagram.SideTop {
		t.Errorf("TargetSide = %q, want top after reattachment", st.Edges[0].TargetSide)
	}
}
