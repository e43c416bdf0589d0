// Package export reads and writes the interchange JSON format used for
// file import/export. The format mirrors what canvas toolkits expect:
// nodes carry a type, a top-left position, and a data object holding the
// label; edges carry endpoint IDs plus optional handle and style fields.
//
// Theme and direction are deliberately not part of this format; they
// travel in the share-link payload instead (see the share package).
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/flowpad/flowpad/pkg/diagram"
)

// DefaultFilename is the canonical download name for exported diagrams.
const DefaultFilename = "diagram.json"

// nodeType and edgeType are the interchange type tags written on export.
// Import tolerates any value.
const (
	nodeType = "default"
	edgeType = "default"
)

type document struct {
	Nodes []node `json:"nodes"`
	Edges []edge `json:"edges"`
}

type node struct {
	ID       string           `json:"id"`
	Type     string           `json:"type,omitempty"`
	Position diagram.Position `json:"position"`
	Data     nodeData         `json:"data"`
}

type nodeData struct {
	Label string `json:"label"`
}

type edge struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	Type         string `json:"type,omitempty"`
	SourceHandle string `json:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty"`
	Label        string `json:"label,omitempty"`
	MarkerEnd    string `json:"markerEnd,omitempty"`
}

// Write encodes the state's nodes and edges as indented interchange JSON.
func Write(s *diagram.State, w io.Writer) error {
	doc := document{
		Nodes: make([]node, len(s.Nodes)),
		Edges: make([]edge, len(s.Edges)),
	}
	for i, n := range s.Nodes {
		doc.Nodes[i] = node{
			ID:       n.ID,
			Type:     nodeType,
			Position: n.Position,
			Data:     nodeData{Label: n.Label},
		}
	}
	for i, e := range s.Edges {
		doc.Edges[i] = edge{
			ID:           e.ID,
			Source:       e.Source,
			Target:       e.Target,
			Type:         edgeType,
			SourceHandle: string(e.SourceSide),
			TargetHandle: string(e.TargetSide),
			Label:        e.Label,
			MarkerEnd:    "arrow",
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes the state to a JSON file at path.
// This is a convenience wrapper around [Write] for file-based output.
func WriteFile(s *diagram.State, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(s, f)
}

// Marshal returns the state's interchange JSON as bytes.
func Marshal(s *diagram.State) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(s, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
