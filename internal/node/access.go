package node

// Checked accessors: ok is false when n is not of the requested kind.

func AsLineComment[T Text](n Node[T]) (*LineComment[T], bool) {
	v, ok := n.(*LineComment[T])
	return v, ok
}

func AsBlockComment[T Text](n Node[T]) (*BlockComment[T], bool) {
	v, ok := n.(*BlockComment[T])
	return v, ok
}

func AsLineOthertongue[T Text](n Node[T]) (*LineOthertongue[T], bool) {
	v, ok := n.(*LineOthertongue[T])
	return v, ok
}

func AsBlockOthertongue[T Text](n Node[T]) (*BlockOthertongue[T], bool) {
	v, ok := n.(*BlockOthertongue[T])
	return v, ok
}

func AsSimplex[T Text](n Node[T]) (*Simplex[T], bool) {
	v, ok := n.(*Simplex[T])
	return v, ok
}

func AsComplex[T Text](n Node[T]) (*Complex[T], bool) {
	v, ok := n.(*Complex[T])
	return v, ok
}

func AsAttacher[T Text](n Node[T]) (*Attacher[T], bool) {
	v, ok := n.(*Attacher[T])
	return v, ok
}

// Name returns the name of a simplex or complex.
func Name[T Text](n Node[T]) (T, bool) {
	switch v := n.(type) {
	case *Simplex[T]:
		return v.Name, true
	case *Complex[T]:
		return v.Name, true
	}
	var zero T
	return zero, false
}

// Line returns the payload of a line comment or line othertongue.
func Line[T Text](n Node[T]) (T, bool) {
	switch v := n.(type) {
	case *LineComment[T]:
		return v.Line, true
	case *LineOthertongue[T]:
		return v.Line, true
	}
	var zero T
	return zero, false
}

// Block returns the lines of a block comment or block othertongue.
func Block[T Text](n Node[T]) ([]T, bool) {
	switch v := n.(type) {
	case *BlockComment[T]:
		return v.Lines, true
	case *BlockOthertongue[T]:
		return v.Lines, true
	}
	return nil, false
}

// AttachersOf returns the attachers of a simplex or complex.
func AttachersOf[T Text](n Node[T]) ([]*Attacher[T], bool) {
	switch v := n.(type) {
	case *Simplex[T]:
		return v.Attachers, true
	case *Complex[T]:
		return v.Attachers, true
	}
	return nil, false
}

// ChildrenOf returns the children of a complex.
func ChildrenOf[T Text](n Node[T]) ([]Node[T], bool) {
	if v, ok := n.(*Complex[T]); ok {
		return v.Children, true
	}
	return nil, false
}

// Consume* move the payload out of the node and leave it zeroed.

func (n *LineComment[T]) Consume() T {
	line := n.Line
	*n = LineComment[T]{Pos: n.Pos}
	return line
}

func (n *BlockComment[T]) Consume() []T {
	lines := n.Lines
	*n = BlockComment[T]{Pos: n.Pos}
	return lines
}

func (n *LineOthertongue[T]) Consume() T {
	line := n.Line
	*n = LineOthertongue[T]{Pos: n.Pos}
	return line
}

func (n *BlockOthertongue[T]) Consume() []T {
	lines := n.Lines
	*n = BlockOthertongue[T]{Pos: n.Pos}
	return lines
}

func (n *Simplex[T]) Consume() (T, []*Attacher[T]) {
	name, attachers := n.Name, n.Attachers
	*n = Simplex[T]{Pos: n.Pos}
	return name, attachers
}

func (n *Complex[T]) Consume() (T, []*Attacher[T], []Node[T]) {
	name, attachers, children := n.Name, n.Attachers, n.Children
	*n = Complex[T]{Pos: n.Pos}
	return name, attachers, children
}

func (n *Attacher[T]) Consume() (label, content T, comments []T) {
	label, content, comments = n.Label, n.Content, n.Comments
	*n = Attacher[T]{Pos: n.Pos}
	return label, content, comments
}
