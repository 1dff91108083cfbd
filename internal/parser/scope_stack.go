package parser

import (
	"fmt"

	"chearmyp/internal/diag"
	"chearmyp/internal/node"
	"chearmyp/internal/source"
	"chearmyp/internal/token"
)

// ScopeStack builds a forest from depth-tagged tokens without recursion.
//
// fragments holds the open nodes, innermost last; scopes[i+1] collects the
// finished children of fragments[i] and scopes[0] is the root scope.
// level always equals len(fragments).
type ScopeStack[T node.Text] struct {
	level            int
	lastRelationship Relationship
	fragments        []*fragment[T]
	scopes           [][]node.Node[T]

	convert  func([]byte) T
	reporter diag.Reporter
}

// NewScopeStack returns an empty stack: level 0, relationship Contained.
func NewScopeStack[T node.Text](opts Options[T]) *ScopeStack[T] {
	conv := opts.Convert
	if conv == nil {
		conv = Convert[T]
	}
	return &ScopeStack[T]{
		lastRelationship: Contained,
		fragments:        make([]*fragment[T], 0, 8),
		scopes:           append(make([][]node.Node[T], 0, 9), nil),
		convert:          conv,
		reporter:         opts.Reporter,
	}
}

// Level is the current indentation depth, i.e. the number of open fragments.
func (s *ScopeStack[T]) Level() int { return s.level }

// LastRelationship steers placement of the next token.
func (s *ScopeStack[T]) LastRelationship() Relationship { return s.lastRelationship }

// Push places one token. Tokens that carry no outline meaning (EOF, raw
// scanner results) are ignored.
func (s *ScopeStack[T]) Push(tok token.Token) {
	if !tok.IsConcept() && !tok.IsPassThrough() && !tok.IsAnnotation() {
		return
	}

	depth := max(tok.Depth, 0)
	if s.level > depth {
		s.minimizeScopeLevelBy(s.level - depth)
	}

	reported := false
	if last := s.lastFragment(); last != nil && last.kind == fragAttacher && !tok.IsComment() {
		// атачер может держать только комментарии
		s.reportNested(diag.SynAttacherChild, tok.Span, last.span,
			fmt.Sprintf("%s cannot be nested under an attacher", describe(tok)), "attacher is here")
		s.necessarilyPromoteLastFragments()
		reported = true
	}
	if last := s.lastFragment(); last != nil && last.kind == fragSimplex && !tok.IsAnnotation() {
		if !tok.IsComment() {
			s.reportNested(diag.SynSimplexChild, tok.Span, last.span,
				fmt.Sprintf("simplex cannot have children; %s is placed after it", describe(tok)), "simplex is here")
		}
		s.promoteLastFragment()
		s.refreshRelationship()
		reported = true
	}

	if depth > s.level && !reported {
		s.report(diag.SynOverIndent, tok.Span,
			fmt.Sprintf("line is indented %d level(s) deeper than allowed", depth-s.level))
	}

	s.pushToPreferredRelationship(tok)
	s.refreshRelationship()
}

// Finish closes every open fragment and returns the root scope.
// The stack must not be used afterwards.
func (s *ScopeStack[T]) Finish() []node.Node[T] {
	s.minimizeScopeLevelBy(s.level)
	forest := s.scopes[0]
	s.scopes = nil
	s.fragments = nil
	return forest
}

func (s *ScopeStack[T]) lastFragment() *fragment[T] {
	if len(s.fragments) == 0 {
		return nil
	}
	return s.fragments[len(s.fragments)-1]
}

// pushToPreferredRelationship places tok at the current level.
func (s *ScopeStack[T]) pushToPreferredRelationship(tok token.Token) {
	switch tok.Kind {
	case token.Simplex:
		s.openFragment(&fragment[T]{kind: fragSimplex, rel: Contained, span: tok.Span, name: s.convert(tok.Text)})
	case token.Complex:
		s.openFragment(&fragment[T]{kind: fragComplex, rel: Contained, span: tok.Span, name: s.convert(tok.Text)})
	case token.Attacher:
		f := &fragment[T]{
			kind:    fragAttacher,
			rel:     Attached,
			span:    tok.Span,
			name:    s.convert(tok.Label),
			content: s.convert(tok.Text),
		}
		if last := s.lastFragment(); last == nil || !last.isConcept() {
			f.rel = Contained
			s.report(diag.SynOrphanAttacher, tok.Span,
				fmt.Sprintf("attacher %q has no simplex or complex to attach to", tok.Label))
		}
		s.openFragment(f)
	case token.LineComment, token.BlockComment:
		last := s.lastFragment()
		if s.lastRelationship == Attached && last != nil && last.kind == fragAttacher {
			last.comments = append(last.comments, s.lines(tok)...)
			last.span = last.span.Cover(tok.Span)
			return
		}
		s.pushToLastScope(s.leaf(tok))
	default:
		s.pushToLastScope(s.leaf(tok))
	}
}

func (s *ScopeStack[T]) openFragment(f *fragment[T]) {
	s.fragments = append(s.fragments, f)
	s.scopes = append(s.scopes, nil)
	s.level++
}

// pushToLastScope appends a finished node to the innermost scope.
func (s *ScopeStack[T]) pushToLastScope(n node.Node[T]) {
	s.scopes[s.level] = node.PushBack(s.scopes[s.level], n)
}

// promoteLastFragment closes the innermost fragment and moves the finished
// node to where it was opened: the owner's attachers or the parent scope.
func (s *ScopeStack[T]) promoteLastFragment() {
	if s.level == 0 {
		return
	}
	f, fragments, _ := node.PopBack(s.fragments)
	children, scopes, _ := node.PopBack(s.scopes)
	s.fragments, s.scopes = fragments, scopes
	s.level--

	if f.rel == Attached {
		if owner := s.lastFragment(); owner != nil && owner.isConcept() {
			owner.attachers = node.PushBack(owner.attachers, f.finishAttacher())
			return
		}
	}
	s.pushToLastScope(f.finish(children))
}

// minimizeScopeLevelBy closes n levels one at a time; a dedent by k is the
// same as k dedents by one.
func (s *ScopeStack[T]) minimizeScopeLevelBy(n int) {
	for range n {
		s.promoteLastFragment()
	}
	s.refreshRelationship()
}

// necessarilyPromoteLastFragments closes open attachers so the next token
// lands on a simplex, a complex or a scope.
func (s *ScopeStack[T]) necessarilyPromoteLastFragments() {
	for {
		last := s.lastFragment()
		if last == nil || last.kind != fragAttacher {
			break
		}
		s.promoteLastFragment()
	}
	s.refreshRelationship()
}

func (s *ScopeStack[T]) refreshRelationship() {
	last := s.lastFragment()
	if last == nil || last.kind == fragComplex {
		s.lastRelationship = Contained
		return
	}
	s.lastRelationship = Attached
}

func (s *ScopeStack[T]) leaf(tok token.Token) node.Node[T] {
	switch tok.Kind {
	case token.LineComment:
		return node.NewLineComment(tok.Span, s.convert(tok.Text))
	case token.BlockComment:
		return node.NewBlockComment(tok.Span, s.lines(tok))
	case token.LineOthertongue:
		return node.NewLineOthertongue(tok.Span, s.convert(tok.Text))
	case token.BlockOthertongue:
		return node.NewBlockOthertongue(tok.Span, s.lines(tok))
	}
	panic(fmt.Sprintf("parser: %v is not a leaf token", tok.Kind))
}

// lines returns the comment payload: block lines, or the line comment text.
func (s *ScopeStack[T]) lines(tok token.Token) []T {
	if !tok.IsBlock() {
		return []T{s.convert(tok.Text)}
	}
	out := make([]T, len(tok.Lines))
	for i, l := range tok.Lines {
		out[i] = s.convert(l)
	}
	return out
}

func (s *ScopeStack[T]) report(code diag.Code, sp source.Span, msg string) {
	if s.reporter != nil {
		s.reporter.Report(code, diag.SevWarning, sp, msg, nil)
	}
}

func (s *ScopeStack[T]) reportNested(code diag.Code, sp, owner source.Span, msg, note string) {
	diag.ReportWarning(s.reporter, code, sp, msg).WithNote(owner, note).Emit()
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.Simplex:
		return "simplex"
	case token.Complex:
		return "complex"
	case token.Attacher:
		return "attacher"
	case token.LineComment, token.BlockComment:
		return "comment"
	default:
		return "othertongue"
	}
}
