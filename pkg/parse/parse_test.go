package parse

import (
	"testing"
)

func TestParse_SingleArrow(t *testing.T) {
	r := Parse("A -> B")

	if len(r.Nodes) != 2 {
		t.Fatalf("Parse() nodes = %d, want 2", len(r.Nodes))
	}
	if len(r.Edges) != 1 {
		t.Fatalf("Parse() edges = %d, want 1", len(r.Edges))
	}
	if r.Nodes[0].Label != "A" || r.Nodes[1].Label != "B" {
		t.Errorf("labels = %q, %q, want A, B", r.Nodes[0].Label, r.Nodes[1].Label)
	}
	if r.Edges[0].Source != r.Nodes[0].ID || r.Edges[0].Target != r.Nodes[1].ID {
		t.Errorf("edge %s -> %s, want %s -> %s",
			r.Edges[0].Source, r.Edges[0].Target, r.Nodes[0].ID, r.Nodes[1].ID)
	}
}

func TestParse_Chain(t *testing.T) {
	r := Parse("A -> B -> C")

	if len(r.Nodes) != 3 {
		t.Fatalf("Parse() nodes = %d, want 3", len(r.Nodes))
	}
	if len(r.Edges) != 2 {
		t.Fatalf("Parse() edges = %d, want 2", len(r.Edges))
	}

	id := map[string]string{}
	for _, n := range r.Nodes {
		id[n.Label] = n.ID
	}
	// Consecutive pairs only: A->B and B->C, never A->C.
	if r.Edges[0].Source != id["A"] || r.Edges[0].Target != id["B"] {
		t.Errorf("edge 0 = %s -> %s, want A -> B", r.Edges[0].Source, r.Edges[0].Target)
	}
	if r.Edges[1].Source != id["B"] || r.Edges[1].Target != id["C"] {
		t.Errorf("edge 1 = %s -> %s, want B -> C", r.Edges[1].Source, r.Edges[1].Target)
	}
}

func TestParse_DedupAcrossLines(t *testing.T) {
	r := Parse("A -> B\nA -> C")

	if len(r.Nodes) != 3 {
		t.Fatalf("Parse() nodes = %d, want 3 (A shared)", len(r.Nodes))
	}
	if len(r.Edges) != 2 {
		t.Fatalf("Parse() edges = %d, want 2", len(r.Edges))
	}
	if r.Edges[0].Source != r.Edges[1].Source {
		t.Errorf("edges have sources %s and %s, want the same A node",
			r.Edges[0].Source, r.Edges[1].Source)
	}
}

func TestParse_Sequential(t *testing.T) {
	r := Parse("alpha\nbeta\ngamma")

	if len(r.Nodes) != 3 {
		t.Fatalf("Parse() nodes = %d, want 3", len(r.Nodes))
	}
	if len(r.Edges) != 2 {
		t.Fatalf("Parse() edges = %d, want 2", len(r.Edges))
	}
	if r.Edges[0].Source != r.Nodes[0].ID || r.Edges[0].Target != r.Nodes[1].ID {
		t.Errorf("edge 0 does not chain line 1 to line 2")
	}
	if r.Edges[1].Source != r.Nodes[1].ID || r.Edges[1].Target != r.Nodes[2].ID {
		t.Errorf("edge 1 does not chain line 2 to line 3")
	}
}

func TestParse_SequentialSingleLine(t *testing.T) {
	r := Parse("just one line")

	if !r.Empty() {
		t.Errorf("Parse() = %d nodes, want empty for a single arrowless line", len(r.Nodes))
	}
}

func TestParse_Empty(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\n\t\n"} {
		r := Parse(raw)
		if !r.Empty() {
			t.Errorf("Parse(%q) = %d nodes, want empty", raw, len(r.Nodes))
		}
	}
}

func TestParse_DanglingArrow(t *testing.T) {
	r := Parse("A ->")

	if len(r.Nodes) != 1 {
		t.Fatalf("Parse() nodes = %d, want 1", len(r.Nodes))
	}
	if len(r.Edges) != 0 {
		t.Errorf("Parse() edges = %d, want 0", len(r.Edges))
	}
	if r.Nodes[0].Label != "A" {
		t.Errorf("label = %q, want A", r.Nodes[0].Label)
	}
}

func TestParse_ArrowOnly(t *testing.T) {
	r := Parse("->")

	if !r.Empty() {
		t.Errorf("Parse(\"->\") = %d nodes, want empty", len(r.Nodes))
	}
}

func TestParse_UnicodeArrow(t *testing.T) {
	r := Parse("start → finish")

	if len(r.Nodes) != 2 || len(r.Edges) != 1 {
		t.Fatalf("Parse() = %d nodes, %d edges, want 2 and 1", len(r.Nodes), len(r.Edges))
	}
	if r.Nodes[0].Label != "start" || r.Nodes[1].Label != "finish" {
		t.Errorf("labels = %q, %q", r.Nodes[0].Label, r.Nodes[1].Label)
	}
}

func TestParse_WhitespaceNormalization(t *testing.T) {
	r := Parse("big   label -> big label")

	// Both sides normalize to "big label" and resolve to one node, so the
	// edge is a self-loop.
	if len(r.Nodes) != 1 {
		t.Fatalf("Parse() nodes = %d, want 1", len(r.Nodes))
	}
	if r.Nodes[0].Label != "big label" {
		t.Errorf("label = %q, want %q", r.Nodes[0].Label, "big label")
	}
	if len(r.Edges) != 1 || r.Edges[0].Source != r.Edges[0].Target {
		t.Errorf("want one self-loop edge, got %+v", r.Edges)
	}
}

func TestParse_CaseSensitiveLabels(t *testing.T) {
	r := Parse("api -> API")

	if len(r.Nodes) != 2 {
		t.Errorf("Parse() nodes = %d, want 2 (labels are case-sensitive)", len(r.Nodes))
	}
}

func TestParse_MixedModePrefersRelational(t *testing.T) {
	// One arrow anywhere puts the whole input in relation mode; an
	// arrowless line there becomes an isolated node, not part of a chain.
	r := Parse("A -> B\nlonely")

	if len(r.Edges) != 1 {
		t.Fatalf("Parse() edges = %d, want 1", len(r.Edges))
	}
	if len(r.Nodes) != 3 {
		t.Fatalf("Parse() nodes = %d, want 3", len(r.Nodes))
	}
	if r.Nodes[2].Label != "lonely" {
		t.Errorf("node 2 label = %q, want lonely", r.Nodes[2].Label)
	}
}

func TestParse_ParallelEdges(t *testing.T) {
	r := Parse("A -> B\nA -> B")

	if len(r.Nodes) != 2 {
		t.Fatalf("Parse() nodes = %d, want 2", len(r.Nodes))
	}
	if len(r.Edges) != 2 {
		t.Errorf("Parse() edges = %d, want 2 (duplicate pairs kept)", len(r.Edges))
	}
}

func TestParse_IDsAreSequential(t *testing.T) {
	r := Parse("A -> B -> C")

	wantNodes := []string{"n1", "n2", "n3"}
	for i, n := range r.Nodes {
		if n.ID != wantNodes[i] {
			t.Errorf("node %d ID = %s, want %s", i, n.ID, wantNodes[i])
		}
	}
	wantEdges := []string{"e1", "e2"}
	for i, e := range r.Edges {
		if e.ID != wantEdges[i] {
			t.Errorf("edge %d ID = %s, want %s", i, e.ID, wantEdges[i])
		}
	}
}
