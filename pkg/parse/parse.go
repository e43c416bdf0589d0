// Package parse converts free-form text into an unlaid-out diagram graph.
//
// Two strategies are used, chosen by the presence of an arrow token:
//
//   - Relation mode: any line containing "->" (or the Unicode arrow "→")
//     is split into an ordered chain of labels, and consecutive pairs
//     become directed edges. "A -> B -> C" yields A→B and B→C, never A→C.
//   - Sequential mode: with no arrows anywhere, each non-empty line becomes
//     a node and consecutive lines are chained. At least two lines are
//     required; fewer is treated as insufficient structure.
//
// Parsing is pure and never fails: empty or unusable input yields an empty
// graph, and the caller decides how to surface that to the user.
package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/flowpad/flowpad/pkg/diagram"
)

// arrowToken matches the "leads to" separators, with surrounding whitespace
// absorbed so "A->B" and "A -> B" split identically.
var arrowToken = regexp.MustCompile(`\s*(?:->|→)\s*`)

// Result is the parser output: nodes in first-seen order with no positions
// assigned, and edges in creation order. Callers run the layout engine to
// assign positions.
type Result struct {
	Nodes []diagram.Node
	Edges []diagram.Edge
}

// Empty reports whether parsing found no usable structure.
func (r Result) Empty() bool { return len(r.Nodes) == 0 }

// Parse derives a node/edge graph from raw text. See the package comment
// for the two parsing modes. Labels are normalized (whitespace runs
// collapsed, ends trimmed) and deduplicated case-sensitively: two tokens
// with the same normalized label resolve to the same node. Duplicate
// ordered pairs produce parallel edges; the parser does not dedupe edges.
func Parse(raw string) Result {
	lines := splitLines(raw)
	if len(lines) == 0 {
		return Result{}
	}

	relational := false
	for _, line := range lines {
		if arrowToken.MatchString(line) {
			relational = true
			break
		}
	}

	b := newBuilder()
	if relational {
		for _, line := range lines {
			labels := splitChain(line)
			for i := 0; i+1 < len(labels); i++ {
				b.connect(labels[i], labels[i+1])
			}
			// A single label on an arrow-bearing line still names a node.
			if len(labels) == 1 {
				b.node(labels[0])
			}
		}
	} else {
		if len(lines) < 2 {
			return Result{}
		}
		for i := 0; i+1 < len(lines); i++ {
			b.connect(normalize(lines[i]), normalize(lines[i+1]))
		}
	}
	return Result{Nodes: b.nodes, Edges: b.edges}
}

// splitLines returns the non-empty trimmed lines of raw.
func splitLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// splitChain splits a line on arrow tokens into normalized labels,
// dropping empties left by dangling arrows ("A ->").
func splitChain(line string) []string {
	var labels []string
	for _, part := range arrowToken.Split(line, -1) {
		if label := normalize(part); label != "" {
			labels = append(labels, label)
		}
	}
	return labels
}

// normalize collapses internal whitespace runs to single spaces and trims
// the ends. Matching is case-sensitive; normalization changes spacing only.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// builder accumulates nodes and edges with call-scoped monotonic counters.
type builder struct {
	nodes  []diagram.Node
	edges  []diagram.Edge
	byName map[string]string // normalized label -> node ID
}

func newBuilder() *builder {
	return &builder{byName: make(map[string]string)}
}

// node returns the ID for a label, creating the node on first sight.
func (b *builder) node(label string) string {
	if id, ok := b.byName[label]; ok {
		return id
	}
	id := "n" + strconv.Itoa(len(b.nodes)+1)
	b.byName[label] = id
	b.nodes = append(b.nodes, diagram.Node{ID: id, Label: label})
	return id
}

// connect ensures both labels exist as nodes and appends a directed edge.
func (b *builder) connect(from, to string) {
	src := b.node(from)
	dst := b.node(to)
	b.edges = append(b.edges, diagram.Edge{
		ID:     "e" + strconv.Itoa(len(b.edges)+1),
		Source: src,
		Target: dst,
	})
}
