package node

import (
	"fmt"

	"chearmyp/internal/source"
)

// Record is a kind-tagged, serializable mirror of a node.
// Which fields are set depends on Kind:
//   - line_comment, line_othertongue: Line
//   - block_comment, block_othertongue: Lines
//   - simplex: Name, Attachers; complex: Name, Attachers, Children
//   - attacher: Label, Content, Lines (the comments)
type Record struct {
	Kind      string   `json:"kind" yaml:"kind" msgpack:"k"`
	Name      string   `json:"name,omitempty" yaml:"name,omitempty" msgpack:"n,omitempty"`
	Label     string   `json:"label,omitempty" yaml:"label,omitempty" msgpack:"l,omitempty"`
	Content   string   `json:"content,omitempty" yaml:"content,omitempty" msgpack:"c,omitempty"`
	Line      string   `json:"line,omitempty" yaml:"line,omitempty" msgpack:"ln,omitempty"`
	Lines     []string `json:"lines,omitempty" yaml:"lines,omitempty" msgpack:"ls,omitempty"`
	Start     uint32   `json:"start" yaml:"start" msgpack:"s"`
	End       uint32   `json:"end" yaml:"end" msgpack:"e"`
	Attachers []Record `json:"attachers,omitempty" yaml:"attachers,omitempty" msgpack:"a,omitempty"`
	Children  []Record `json:"children,omitempty" yaml:"children,omitempty" msgpack:"ch,omitempty"`
}

// ToRecord converts one node (and its subtree).
func ToRecord[T Text](n Node[T]) Record {
	sp := n.Span()
	r := Record{Kind: n.Kind().String(), Start: sp.Start, End: sp.End}
	switch v := n.(type) {
	case *LineComment[T]:
		r.Line = string(v.Line)
	case *LineOthertongue[T]:
		r.Line = string(v.Line)
	case *BlockComment[T]:
		r.Lines = toStrings(v.Lines)
	case *BlockOthertongue[T]:
		r.Lines = toStrings(v.Lines)
	case *Simplex[T]:
		r.Name = string(v.Name)
		r.Attachers = attacherRecords(v.Attachers)
	case *Complex[T]:
		r.Name = string(v.Name)
		r.Attachers = attacherRecords(v.Attachers)
		r.Children = ToRecords(v.Children)
	case *Attacher[T]:
		r.Label = string(v.Label)
		r.Content = string(v.Content)
		r.Lines = toStrings(v.Comments)
	}
	return r
}

func ToRecords[T Text](forest []Node[T]) []Record {
	if len(forest) == 0 {
		return nil
	}
	out := make([]Record, len(forest))
	for i, n := range forest {
		out[i] = ToRecord(n)
	}
	return out
}

// FromRecords rebuilds an owned forest. Spans are attached to file.
func FromRecords(file source.FileID, rs []Record) ([]Node[Owned], error) {
	if len(rs) == 0 {
		return nil, nil
	}
	out := make([]Node[Owned], 0, len(rs))
	for i := range rs {
		n, err := fromRecord(file, &rs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func fromRecord(file source.FileID, r *Record) (Node[Owned], error) {
	kind, ok := ParseKind(r.Kind)
	if !ok {
		return nil, fmt.Errorf("node: unknown record kind %q", r.Kind)
	}
	sp := source.Span{File: file, Start: r.Start, End: r.End}
	switch kind {
	case KindLineComment:
		return NewLineComment(sp, r.Line), nil
	case KindLineOthertongue:
		return NewLineOthertongue(sp, r.Line), nil
	case KindBlockComment:
		return NewBlockComment(sp, r.Lines), nil
	case KindBlockOthertongue:
		return NewBlockOthertongue(sp, r.Lines), nil
	case KindAttacher:
		return attacherFromRecord(file, r)
	}

	attachers := make([]*Attacher[Owned], 0, len(r.Attachers))
	for i := range r.Attachers {
		a, err := attacherFromRecord(file, &r.Attachers[i])
		if err != nil {
			return nil, fmt.Errorf("node: attachers of %q: %w", r.Name, err)
		}
		attachers = append(attachers, a)
	}
	if len(attachers) == 0 {
		attachers = nil
	}
	if kind == KindSimplex {
		if len(r.Children) != 0 {
			return nil, fmt.Errorf("node: simplex %q has children", r.Name)
		}
		return NewSimplex(sp, r.Name, attachers...), nil
	}
	children, err := FromRecords(file, r.Children)
	if err != nil {
		return nil, err
	}
	return NewComplex(sp, r.Name, attachers, children), nil
}

func attacherFromRecord(file source.FileID, r *Record) (*Attacher[Owned], error) {
	if r.Kind != KindAttacher.String() {
		return nil, fmt.Errorf("node: expected attacher record, got %q", r.Kind)
	}
	sp := source.Span{File: file, Start: r.Start, End: r.End}
	return NewAttacher(sp, r.Label, r.Content, r.Lines...), nil
}

func attacherRecords[T Text](as []*Attacher[T]) []Record {
	if len(as) == 0 {
		return nil
	}
	out := make([]Record, len(as))
	for i, a := range as {
		out[i] = ToRecord[T](a)
	}
	return out
}

func toStrings[T Text](lines []T) []string {
	if len(lines) == 0 {
		return nil
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = string(l)
	}
	return out
}
