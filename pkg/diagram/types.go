package diagram

// Side identifies the face of a node's bounding box that an edge visually
// attaches to. The zero value means "unset": the renderer picks the nearest
// face itself.
type Side string

// Attachment faces.
const (
	SideUnset  Side = ""
	SideTop    Side = "top"
	SideRight  Side = "right"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
)

// Direction is the global layout orientation.
type Direction string

const (
	// TopToBottom lays ranks along the vertical axis.
	TopToBottom Direction = "TB"
	// LeftToRight lays ranks along the horizontal axis.
	LeftToRight Direction = "LR"
)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d == TopToBottom || d == LeftToRight
}

// Position is a node's top-left placement on the canvas.
type Position struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Node is a labeled box in the diagram.
type Node struct {
	ID       string   `json:"id" bson:"id"`
	Label    string   `json:"label" bson:"label"`
	Position Position `json:"position" bson:"position"`
}

// Edge is a directed connection between two nodes. SourceSide and
// TargetSide record the attachment faces chosen by the reattachment pass;
// either may be unset.
type Edge struct {
	ID         string `json:"id" bson:"id"`
	Source     string `json:"source" bson:"source"`
	Target     string `json:"target" bson:"target"`
	SourceSide Side   `json:"sourceSide,omitempty" bson:"sourceSide,omitempty"`
	TargetSide Side   `json:"targetSide,omitempty" bson:"targetSide,omitempty"`
	Label      string `json:"label,omitempty" bson:"label,omitempty"`
}
