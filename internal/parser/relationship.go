package parser

// Relationship tells where the next token lands relative to the innermost
// open fragment.
type Relationship uint8

const (
	// Contained: the next node becomes a child of the open complex (or a root).
	Contained Relationship = iota
	// Attached: the next node belongs to the open simplex or attacher.
	Attached
)

func (r Relationship) String() string {
	if r == Attached {
		return "attached"
	}
	return "contained"
}
