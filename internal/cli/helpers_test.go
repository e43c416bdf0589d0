package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/flowpad/flowpad/pkg/config"
	"github.com/flowpad/flowpad/pkg/diagram"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input   string
		want    diagram.Direction
		wantErr bool
	}{
		{"TB", diagram.TopToBottom, false},
		{"tb", diagram.TopToBottom, false},
		{"", diagram.TopToBottom, false},
		{"LR", diagram.LeftToRight, false},
		{"left-to-right", diagram.LeftToRight, false},
		{"diagonal", "", true},
	}

	for _, tt := range tests {
		got, err := parseDirection(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseDirection(%q) = nil error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseDirection(%q) error = %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseDirection(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestEngineFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Layout.RankGap = 120

	eng := engineFromConfig(cfg)

	if eng.Metrics.RankGap != 120 {
		t.Errorf("RankGap = %v, want 120", eng.Metrics.RankGap)
	}
	if eng.Metrics.NodeWidth != 172 {
		t.Errorf("NodeWidth = %v, want default 172", eng.Metrics.NodeWidth)
	}
}

func TestWriteReadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	if err := writeOutput(path, []byte("a -> b")); err != nil {
		t.Fatalf("writeOutput() error = %v", err)
	}
	got, err := readInput(path)
	if err != nil {
		t.Fatalf("readInput() error = %v", err)
	}
	if got != "a -> b" {
		t.Errorf("readInput() = %q", got)
	}
}

func TestReadDiagram(t *testing.T) {
	path := filepath.Join(t.TempDir(), "d.json")
	content := `{"nodes": [{"id": "n1", "data": {"label": "x"}, "position": {"x": 1, "y": 2}}], "edges": []}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	st, err := readDiagram(path, diagram.LeftToRight, "dark")
	if err != nil {
		t.Fatalf("readDiagram() error = %v", err)
	}
	if len(st.Nodes) != 1 || st.Direction != diagram.LeftToRight || st.Theme != "dark" {
		t.Errorf("got %+v", st)
	}
}

func TestNextTheme_Cycles(t *testing.T) {
	seen := map[string]bool{}
	theme := "light"
	for i := 0; i < 3; i++ {
		theme = nextTheme(theme)
		seen[theme] = true
	}
	if len(seen) != 3 {
		t.Errorf("cycling themes visited %d distinct names, want 3", len(seen))
	}
	if theme != "light" {
		t.Errorf("cycle did not return to light: %q", theme)
	}
}

func TestEditorModel_Operations(t *testing.T) {
	st := diagram.NewState(diagram.TopToBottom, "light")
	a := st.AddNode("a", diagram.Position{})
	b := st.AddNode("b", diagram.Position{})
	if _, err := st.Connect(a.ID, b.ID); err != nil {
		t.Fatal(err)
	}
	m := NewEditorModel(st, nil, "")

	// Prompted add.
	m.mode = promptAddNode
	m.input = "  c  "
	m = m.applyPrompt()
	if len(st.Nodes) != 3 || st.Nodes[2].Label != "c" {
		t.Fatalf("add failed: %+v", st.Nodes)
	}

	// Connect the selection (cursor 0 = node a) to c by label.
	m.mode = promptConnect
	m.input = "c"
	m = m.applyPrompt()
	if len(st.Edges) != 2 {
		t.Fatalf("connect failed: %+v", st.Edges)
	}
	if st.Edges[1].Source != a.ID || st.Edges[1].Target != st.Nodes[2].ID {
		t.Errorf("edge = %+v", st.Edges[1])
	}

	// Rename the selection.
	m.mode = promptRename
	m.input = "renamed"
	m = m.applyPrompt()
	if st.Nodes[0].Label != "renamed" {
		t.Errorf("rename failed: %q", st.Nodes[0].Label)
	}

	if !m.dirty {
		t.Error("edits did not mark the session dirty")
	}
	if m.isError {
		t.Errorf("unexpected error status: %q", m.status)
	}
}

func TestEditorModel_DeleteSelectedNodePrunesEdges(t *testing.T) {
	st := diagram.NewState(diagram.TopToBottom, "light")
	a := st.AddNode("a", diagram.Position{})
	b := st.AddNode("b", diagram.Position{})
	if _, err := st.Connect(a.ID, b.ID); err != nil {
		t.Fatal(err)
	}
	m := NewEditorModel(st, nil, "")

	m = m.deleteSelected()

	if len(st.Nodes) != 1 || st.Nodes[0].ID != b.ID {
		t.Errorf("nodes after delete = %+v", st.Nodes)
	}
	if len(st.Edges) != 0 {
		t.Errorf("edges after delete = %+v", st.Edges)
	}
}
