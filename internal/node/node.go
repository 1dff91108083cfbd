package node

import (
	"chearmyp/internal/source"
)

// Node is any element of an outline forest.
type Node[T Text] interface {
	Kind() Kind
	Span() source.Span
	// payload returns the leading text; keeps T in the method set.
	payload() T
}

// LineComment is a single "#" line.
type LineComment[T Text] struct {
	Pos  source.Span
	Line T
}

// BlockComment is a "###" fenced run of lines.
type BlockComment[T Text] struct {
	Pos   source.Span
	Lines []T
}

// LineOthertongue is a single "=" line passed through unparsed.
type LineOthertongue[T Text] struct {
	Pos  source.Span
	Line T
}

// BlockOthertongue is a "===" fenced run of foreign lines.
type BlockOthertongue[T Text] struct {
	Pos   source.Span
	Lines []T
}

// Simplex is a leaf concept: a name plus attachers, never children.
type Simplex[T Text] struct {
	Pos       source.Span
	Name      T
	Attachers []*Attacher[T]
}

// Complex is a concept with attachers and a subtree.
type Complex[T Text] struct {
	Pos       source.Span
	Name      T
	Attachers []*Attacher[T]
	Children  []Node[T]
}

// Attacher is a "label: content" annotation with the comments written under it.
type Attacher[T Text] struct {
	Pos      source.Span
	Label    T
	Content  T
	Comments []T
}

func (*LineComment[T]) Kind() Kind      { return KindLineComment }
func (*BlockComment[T]) Kind() Kind     { return KindBlockComment }
func (*LineOthertongue[T]) Kind() Kind  { return KindLineOthertongue }
func (*BlockOthertongue[T]) Kind() Kind { return KindBlockOthertongue }
func (*Simplex[T]) Kind() Kind          { return KindSimplex }
func (*Complex[T]) Kind() Kind          { return KindComplex }
func (*Attacher[T]) Kind() Kind         { return KindAttacher }

func (n *LineComment[T]) Span() source.Span      { return n.Pos }
func (n *BlockComment[T]) Span() source.Span     { return n.Pos }
func (n *LineOthertongue[T]) Span() source.Span  { return n.Pos }
func (n *BlockOthertongue[T]) Span() source.Span { return n.Pos }
func (n *Simplex[T]) Span() source.Span          { return n.Pos }
func (n *Complex[T]) Span() source.Span          { return n.Pos }
func (n *Attacher[T]) Span() source.Span         { return n.Pos }

func (n *LineComment[T]) payload() T      { return n.Line }
func (n *BlockComment[T]) payload() T     { return first(n.Lines) }
func (n *LineOthertongue[T]) payload() T  { return n.Line }
func (n *BlockOthertongue[T]) payload() T { return first(n.Lines) }
func (n *Simplex[T]) payload() T          { return n.Name }
func (n *Complex[T]) payload() T          { return n.Name }
func (n *Attacher[T]) payload() T         { return n.Label }

func first[T Text](lines []T) T {
	if len(lines) == 0 {
		var zero T
		return zero
	}
	return lines[0]
}

func NewLineComment[T Text](sp source.Span, line T) *LineComment[T] {
	return &LineComment[T]{Pos: sp, Line: line}
}

func NewBlockComment[T Text](sp source.Span, lines []T) *BlockComment[T] {
	return &BlockComment[T]{Pos: sp, Lines: lines}
}

func NewLineOthertongue[T Text](sp source.Span, line T) *LineOthertongue[T] {
	return &LineOthertongue[T]{Pos: sp, Line: line}
}

func NewBlockOthertongue[T Text](sp source.Span, lines []T) *BlockOthertongue[T] {
	return &BlockOthertongue[T]{Pos: sp, Lines: lines}
}

func NewSimplex[T Text](sp source.Span, name T, attachers ...*Attacher[T]) *Simplex[T] {
	return &Simplex[T]{Pos: sp, Name: name, Attachers: attachers}
}

// NewComplex creates a complex; attachers and children may be nil.
func NewComplex[T Text](sp source.Span, name T, attachers []*Attacher[T], children []Node[T]) *Complex[T] {
	return &Complex[T]{Pos: sp, Name: name, Attachers: attachers, Children: children}
}

func NewAttacher[T Text](sp source.Span, label, content T, comments ...T) *Attacher[T] {
	return &Attacher[T]{Pos: sp, Label: label, Content: content, Comments: comments}
}
