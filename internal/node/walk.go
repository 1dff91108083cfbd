package node

// Visitor is called for every node in pre-order. depth is 0 for roots;
// attachers are visited one level below their owner. Returning false skips
// the node's attachers and children.
type Visitor[T Text] func(n Node[T], depth int) bool

// Walk visits a forest: each node, then its attachers, then its children.
func Walk[T Text](forest []Node[T], visit Visitor[T]) {
	for _, n := range forest {
		walk(n, 0, visit)
	}
}

func walk[T Text](n Node[T], depth int, visit Visitor[T]) {
	if !visit(n, depth) {
		return
	}
	if attachers, ok := AttachersOf(n); ok {
		for _, a := range attachers {
			visit(a, depth+1)
		}
	}
	if children, ok := ChildrenOf(n); ok {
		for _, c := range children {
			walk(c, depth+1, visit)
		}
	}
}

// Count returns the number of nodes in a forest, attachers included.
func Count[T Text](forest []Node[T]) int {
	n := 0
	Walk(forest, func(Node[T], int) bool {
		n++
		return true
	})
	return n
}
