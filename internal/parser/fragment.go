package parser

import (
	"chearmyp/internal/node"
	"chearmyp/internal/source"
)

type fragmentKind uint8

const (
	fragSimplex fragmentKind = iota
	fragComplex
	fragAttacher
)

// fragment — узел, который ещё строится: он закрывается, когда приходит
// менее вложенный токен или кончается вход. Дети лежат в соседнем scope.
type fragment[T node.Text] struct {
	kind fragmentKind
	// rel is the relationship the fragment was opened with: Attached
	// fragments promote into the owner's attachers, Contained ones into
	// the enclosing scope.
	rel  Relationship
	span source.Span

	name      T // name of a concept, label of an attacher
	content   T
	comments  []T
	attachers []*node.Attacher[T]
}

func (f *fragment[T]) isConcept() bool {
	return f.kind == fragSimplex || f.kind == fragComplex
}

// finish builds the finished node; children is the fragment's own scope.
func (f *fragment[T]) finish(children []node.Node[T]) node.Node[T] {
	sp := f.span
	switch f.kind {
	case fragSimplex:
		if n := len(f.attachers); n > 0 {
			sp = sp.Cover(f.attachers[n-1].Span())
		}
		return node.NewSimplex(sp, f.name, f.attachers...)
	case fragComplex:
		if n := len(f.attachers); n > 0 {
			sp = sp.Cover(f.attachers[n-1].Span())
		}
		if n := len(children); n > 0 {
			sp = sp.Cover(children[n-1].Span())
		}
		return node.NewComplex(sp, f.name, f.attachers, children)
	default:
		return f.finishAttacher()
	}
}

func (f *fragment[T]) finishAttacher() *node.Attacher[T] {
	return node.NewAttacher(f.span, f.name, f.content, f.comments...)
}
