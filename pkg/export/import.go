package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/flowpad/flowpad/pkg/diagram"
	"github.com/flowpad/flowpad/pkg/errors"
)

// importDocument uses pointers to the arrays so a missing key can be told
// apart from an empty one: the format requires both to be present.
type importDocument struct {
	Nodes *[]node `json:"nodes"`
	Edges *[]edge `json:"edges"`
}

// Read decodes interchange JSON from r into nodes and edges. The input
// must be a JSON object with "nodes" and "edges" arrays; any other shape
// is rejected with an INVALID_FORMAT error. Unknown type tags and extra
// style fields are tolerated and dropped.
func Read(r io.Reader) ([]diagram.Node, []diagram.Edge, error) {
	var doc importDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode diagram JSON")
	}
	if doc.Nodes == nil || doc.Edges == nil {
		return nil, nil, errors.New(errors.ErrCodeInvalidFormat, "diagram JSON must contain nodes and edges arrays")
	}

	nodes := make([]diagram.Node, len(*doc.Nodes))
	for i, n := range *doc.Nodes {
		if n.ID == "" {
			return nil, nil, errors.New(errors.ErrCodeInvalidFormat, "node %d has no id", i)
		}
		nodes[i] = diagram.Node{ID: n.ID, Label: n.Data.Label, Position: n.Position}
	}

	edges := make([]diagram.Edge, len(*doc.Edges))
	for i, e := range *doc.Edges {
		if e.ID == "" || e.Source == "" || e.Target == "" {
			return nil, nil, errors.New(errors.ErrCodeInvalidFormat, "edge %d is missing id, source, or target", i)
		}
		edges[i] = diagram.Edge{
			ID:         e.ID,
			Source:     e.Source,
			Target:     e.Target,
			SourceSide: diagram.Side(e.SourceHandle),
			TargetSide: diagram.Side(e.TargetHandle),
			Label:      e.Label,
		}
	}
	return nodes, edges, nil
}

// ReadFile reads the interchange JSON file at path.
func ReadFile(path string) ([]diagram.Node, []diagram.Edge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Unmarshal decodes interchange JSON bytes.
func Unmarshal(data []byte) ([]diagram.Node, []diagram.Edge, error) {
	return Read(bytes.NewReader(data))
}
