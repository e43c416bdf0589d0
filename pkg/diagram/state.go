// Package diagram defines the diagram data model and the session state that
// all editing operations mutate.
//
// A State owns an ordered set of nodes and edges together with the view
// settings (layout direction and theme name). It is the unit of export,
// share-link payloads, and autosave. State is not safe for concurrent use
// without external synchronization; the intended owner is a single event
// loop (the HTTP handler chain or the TUI update loop).
package diagram

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

var (
	// ErrUnknownNode is returned when an operation references a node ID
	// that does not exist in the state.
	ErrUnknownNode = errors.New("unknown node")

	// ErrUnknownEdge is returned when an operation references an edge ID
	// that does not exist in the state.
	ErrUnknownEdge = errors.New("unknown edge")

	// ErrDuplicateID is returned by Validate when two nodes or two edges
	// share an ID. This indicates state corruption, since the monotonic
	// counters never hand out the same ID twice.
	ErrDuplicateID = errors.New("duplicate ID")

	// ErrInvalidEdgeEndpoint is returned by Validate when an edge references
	// a node that doesn't exist. Node deletion prunes incident edges, so
	// this state should be unreachable.
	ErrInvalidEdgeEndpoint = errors.New("invalid edge endpoint")

	// ErrInvalidDirection is returned by SetDirection for directions other
	// than TopToBottom and LeftToRight.
	ErrInvalidDirection = errors.New("invalid direction")
)

// DuplicateOffset is the constant delta applied to a duplicated node's
// position so the copy does not sit exactly on the original.
const DuplicateOffset = 32.0

// DefaultTheme is the theme applied to fresh states and used as a fallback
// for unknown theme names.
const DefaultTheme = "light"

// State is the live diagram: ordered nodes and edges plus view settings.
// Node order is creation order, which the layout engine relies on for
// deterministic output.
type State struct {
	Nodes     []Node    `json:"nodes" bson:"nodes"`
	Edges     []Edge    `json:"edges" bson:"edges"`
	Direction Direction `json:"direction" bson:"direction"`
	Theme     string    `json:"themeName" bson:"themeName"`

	nextNode int
	nextEdge int
}

// NewState creates an empty state with the given view settings.
// An invalid direction falls back to TopToBottom and an empty theme to
// DefaultTheme.
func NewState(dir Direction, theme string) *State {
	if !dir.Valid() {
		dir = TopToBottom
	}
	if theme == "" {
		theme = DefaultTheme
	}
	return &State{Direction: dir, Theme: theme}
}

// FromGraph creates a state from parser output, adopting the nodes and
// edges as-is and seeding the ID counters past the highest seen ID.
func FromGraph(nodes []Node, edges []Edge, dir Direction, theme string) *State {
	s := NewState(dir, theme)
	s.Nodes = slices.Clone(nodes)
	s.Edges = slices.Clone(edges)
	s.seedCounters()
	return s
}

// Node returns a pointer to the node with the given ID, or nil and false.
// The pointer refers into the state; position and label mutations through
// it are visible to subsequent operations.
func (s *State) Node(id string) (*Node, bool) {
	for i := range s.Nodes {
		if s.Nodes[i].ID == id {
			return &s.Nodes[i], true
		}
	}
	return nil, false
}

// Edge returns a pointer to the edge with the given ID, or nil and false.
func (s *State) Edge(id string) (*Edge, bool) {
	for i := range s.Edges {
		if s.Edges[i].ID == id {
			return &s.Edges[i], true
		}
	}
	return nil, false
}

// AddNode appends a new node with a fresh ID at the given position and
// returns a pointer to it.
func (s *State) AddNode(label string, pos Position) *Node {
	s.Nodes = append(s.Nodes, Node{ID: s.newNodeID(), Label: label, Position: pos})
	return &s.Nodes[len(s.Nodes)-1]
}

// DeleteNodes removes the given nodes and every edge incident to any of
// them, so no dangling edge survives the call. Unknown IDs are ignored.
// It returns the number of nodes actually removed.
func (s *State) DeleteNodes(ids ...string) int {
	doomed := make(map[string]bool, len(ids))
	for _, id := range ids {
		doomed[id] = true
	}
	before := len(s.Nodes)
	s.Nodes = slices.DeleteFunc(s.Nodes, func(n Node) bool { return doomed[n.ID] })
	removed := before - len(s.Nodes)
	if removed > 0 {
		s.Edges = slices.DeleteFunc(s.Edges, func(e Edge) bool {
			return doomed[e.Source] || doomed[e.Target]
		})
	}
	return removed
}

// DeleteEdges removes the given edges. Unknown IDs are ignored.
// It returns the number of edges actually removed.
func (s *State) DeleteEdges(ids ...string) int {
	doomed := make(map[string]bool, len(ids))
	for _, id := range ids {
		doomed[id] = true
	}
	before := len(s.Edges)
	s.Edges = slices.DeleteFunc(s.Edges, func(e Edge) bool { return doomed[e.ID] })
	return before - len(s.Edges)
}

// RenameNode sets the label of an existing node.
// Returns ErrUnknownNode if the node does not exist.
func (s *State) RenameNode(id, label string) error {
	n, ok := s.Node(id)
	if !ok {
		return fmt.Errorf("rename %s: %w", id, ErrUnknownNode)
	}
	n.Label = label
	return nil
}

// Connect creates a directed edge between two existing nodes and returns a
// pointer to it. Both attachment sides start unset; the reattachment pass
// assigns them after the next layout. Parallel edges between the same pair
// are allowed.
func (s *State) Connect(source, target string) (*Edge, error) {
	if _, ok := s.Node(source); !ok {
		return nil, fmt.Errorf("connect source %s: %w", source, ErrUnknownNode)
	}
	if _, ok := s.Node(target); !ok {
		return nil, fmt.Errorf("connect target %s: %w", target, ErrUnknownNode)
	}
	s.Edges = append(s.Edges, Edge{ID: s.newEdgeID(), Source: source, Target: target})
	return &s.Edges[len(s.Edges)-1], nil
}

// Duplicate clones a node under a fresh ID, offset by DuplicateOffset on
// both axes. When cloneEdges is true, every edge incident to the original
// is cloned with a fresh edge ID, with the duplicated node substituted for
// the original endpoint.
func (s *State) Duplicate(id string, cloneEdges bool) (*Node, error) {
	orig, ok := s.Node(id)
	if !ok {
		return nil, fmt.Errorf("duplicate %s: %w", id, ErrUnknownNode)
	}
	copyPos := Position{X: orig.Position.X + DuplicateOffset, Y: orig.Position.Y + DuplicateOffset}
	label := orig.Label
	dup := s.AddNode(label, copyPos)

	if cloneEdges {
		// Snapshot first: appending to s.Edges while ranging would
		// re-clone the clones.
		incident := make([]Edge, 0)
		for _, e := range s.Edges {
			if e.Source == id || e.Target == id {
				incident = append(incident, e)
			}
		}
		for _, e := range incident {
			clone := e
			clone.ID = s.newEdgeID()
			clone.SourceSide = SideUnset
			clone.TargetSide = SideUnset
			if clone.Source == id {
				clone.Source = dup.ID
			}
			if clone.Target == id {
				clone.Target = dup.ID
			}
			s.Edges = append(s.Edges, clone)
		}
	}
	return dup, nil
}

// SetEdgeLabel sets the label of an existing edge.
// Returns ErrUnknownEdge if the edge does not exist.
func (s *State) SetEdgeLabel(id, label string) error {
	e, ok := s.Edge(id)
	if !ok {
		return fmt.Errorf("label %s: %w", id, ErrUnknownEdge)
	}
	e.Label = label
	return nil
}

// SetDirection switches the layout orientation.
// The caller re-runs layout and reattachment afterwards.
func (s *State) SetDirection(dir Direction) error {
	if !dir.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidDirection, dir)
	}
	s.Direction = dir
	return nil
}

// SetTheme switches the theme name. Unknown names are kept verbatim;
// the renderer falls back to the default palette for them.
func (s *State) SetTheme(name string) {
	if name == "" {
		name = DefaultTheme
	}
	s.Theme = name
}

// Replace swaps in a whole new state (import, share-link, autosave load),
// keeping the receiver's identity. The ID counters are re-seeded past the
// highest imported ID so fresh IDs never collide with imported ones.
func (s *State) Replace(other *State) {
	s.Nodes = slices.Clone(other.Nodes)
	s.Edges = slices.Clone(other.Edges)
	if other.Direction.Valid() {
		s.Direction = other.Direction
	} else {
		s.Direction = TopToBottom
	}
	s.Theme = other.Theme
	if s.Theme == "" {
		s.Theme = DefaultTheme
	}
	s.seedCounters()
}

// Clone returns a deep copy sharing no memory with the receiver.
func (s *State) Clone() *State {
	return &State{
		Nodes:     slices.Clone(s.Nodes),
		Edges:     slices.Clone(s.Edges),
		Direction: s.Direction,
		Theme:     s.Theme,
		nextNode:  s.nextNode,
		nextEdge:  s.nextEdge,
	}
}

// SetPositions overwrites node positions from laid-out nodes, matching by
// ID. Nodes absent from the input keep their current position.
func (s *State) SetPositions(laidOut []Node) {
	pos := make(map[string]Position, len(laidOut))
	for _, n := range laidOut {
		pos[n.ID] = n.Position
	}
	for i := range s.Nodes {
		if p, ok := pos[s.Nodes[i].ID]; ok {
			s.Nodes[i].Position = p
		}
	}
}

// Validate checks state integrity: unique node and edge IDs, and every
// edge endpoint resolving to an existing node. Returns ErrDuplicateID or
// ErrInvalidEdgeEndpoint describing the first violation found.
func (s *State) Validate() error {
	nodeIDs := make(map[string]bool, len(s.Nodes))
	for _, n := range s.Nodes {
		if nodeIDs[n.ID] {
			return fmt.Errorf("node %s: %w", n.ID, ErrDuplicateID)
		}
		nodeIDs[n.ID] = true
	}
	edgeIDs := make(map[string]bool, len(s.Edges))
	for _, e := range s.Edges {
		if edgeIDs[e.ID] {
			return fmt.Errorf("edge %s: %w", e.ID, ErrDuplicateID)
		}
		edgeIDs[e.ID] = true
		if !nodeIDs[e.Source] || !nodeIDs[e.Target] {
			return fmt.Errorf("edge %s (%s→%s): %w", e.ID, e.Source, e.Target, ErrInvalidEdgeEndpoint)
		}
	}
	return nil
}

func (s *State) newNodeID() string {
	s.nextNode++
	return fmt.Sprintf("n%d", s.nextNode)
}

func (s *State) newEdgeID() string {
	s.nextEdge++
	return fmt.Sprintf("e%d", s.nextEdge)
}

// seedCounters pushes the ID counters past the highest numeric suffix in
// the current nodes and edges. IDs that don't match the n<digits>/e<digits>
// scheme (hand-edited imports) are ignored; collisions with them are
// impossible since generated IDs always match the scheme.
func (s *State) seedCounters() {
	s.nextNode = 0
	s.nextEdge = 0
	for _, n := range s.Nodes {
		if v, ok := numericSuffix(n.ID, "n"); ok && v > s.nextNode {
			s.nextNode = v
		}
	}
	for _, e := range s.Edges {
		if v, ok := numericSuffix(e.ID, "e"); ok && v > s.nextEdge {
			s.nextEdge = v
		}
	}
}

func numericSuffix(id, prefix string) (int, bool) {
	rest, ok := strings.CutPrefix(id, prefix)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(rest)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
