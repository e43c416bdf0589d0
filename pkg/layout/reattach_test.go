package layout

import (
	"testing"

	"github.com/flowpad/flowpad/pkg/diagram"
)

func TestReattach_TopToBottom(t *testing.T) {
	nodes := []diagram.Node{
		{ID: "up", Position: diagram.Position{X: 0, Y: 0}},
		{ID: "down", Position: diagram.Position{X: 0, Y: 200}},
		{ID: "level", Position: diagram.Position{X: 300, Y: 0}},
	}

	tests := []struct {
		name     string
		source   string
		target   string
		wantSide diagram.Side
	}{
		{"downstream enters top", "up", "down", diagram.SideTop},
		{"upstream enters bottom", "down", "up", diagram.SideBottom},
		{"same rank ties to top", "up", "level", diagram.SideTop},
		{"self loop ties to top", "up", "up", diagram.SideTop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edges := []diagram.Edge{{ID: "e1", Source: tt.source, Target: tt.target}}
			out := Reattach(edges, nodes, diagram.TopToBottom)
			if out[0].TargetSide != tt.wantSide {
				t.Errorf("TargetSide = %q, want %q", out[0].TargetSide, tt.wantSide)
			}
			if out[0].SourceSide != diagram.SideUnset {
				t.Errorf("SourceSide = %q, want unset", out[0].SourceSide)
			}
		})
	}
}

func TestReattach_LeftToRight(t *testing.T) {
	nodes := []diagram.Node{
		{ID: "west", Position: diagram.Position{X: 0, Y: 0}},
		{ID: "east", Position: diagram.Position{X: 400, Y: 0}},
	}

	tests := []struct {
		name     string
		source   string
		target   string
		wantSide diagram.Side
	}{
		{"downstream enters left", "west", "east", diagram.SideLeft},
		{"upstream enters right", "east", "west", diagram.SideRight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edges := []diagram.Edge{{ID: "e1", Source: tt.source, Target: tt.target}}
			out := Reattach(edges, nodes, diagram.LeftToRight)
			if out[0].TargetSide != tt.wantSide {
				t.Errorf("TargetSide = %q, want %q", out[0].TargetSide, tt.wantSide)
			}
		})
	}
}

func TestReattach_Idempotent(t *testing.T) {
	nodes := []diagram.Node{
		{ID: "a", Position: diagram.Position{X: 0, Y: 0}},
		{ID: "b", Position: diagram.Position{X: 100, Y: 150}},
		{ID: "c", Position: diagram.Position{X: 200, Y: 50}},
	}
	edges := []diagram.Edge{
		{ID: "e1", Source: "a", Target: "b"},
		{ID: "e2", Source: "b", Target: "c"},
		{ID: "e3", Source: "c", Target: "a"},
	}

	once := Reattach(edges, nodes, diagram.TopToBottom)
	twice := Reattach(once, nodes, diagram.TopToBottom)

	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("edge %s changed on second run: %+v vs %+v", once[i].ID, once[i], twice[i])
		}
	}
}

func TestReattach_MissingEndpointUntouched(t *testing.T) {
	nodes := []diagram.Node{{ID: "a", Position: diagram.Position{}}}
	edges := []diagram.Edge{
		{ID: "e1", Source: "a", Target: "ghost", TargetSide: diagram.SideRight, SourceSide: diagram.SideLeft},
	}

	out := Reattach(edges, nodes, diagram.TopToBottom)

	if out[0].TargetSide != diagram.SideRight || out[0].SourceSide != diagram.SideLeft {
		t.Errorf("edge with missing endpoint changed: %+v", out[0])
	}
}

func TestReattach_DoesNotMutateInput(t *testing.T) {
	nodes := []diagram.Node{
		{ID: "a", Position: diagram.Position{Y: 0}},
		{ID: "b", Position: diagram.Position{Y: 100}},
	}
	edges := []diagram.Edge{{ID: "e1", Source: "a", Target: "b", TargetSide: diagram.SideRight}}

	Reattach(edges, nodes, diagram.TopToBottom)

	if edges[0].TargetSide != diagram.SideRight {
		t.Errorf("input edge mutated: %+v", edges[0])
	}
}
