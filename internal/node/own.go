package node

import (
	"golang.org/x/text/unicode/norm"
)

type OwnOptions struct {
	// NormalizeNFC rewrites every payload into Unicode normalization form C.
	NormalizeNFC bool
}

// Own deep-copies a borrowed forest so it no longer aliases the source buffer.
func Own(forest []Node[Borrowed], opts OwnOptions) []Node[Owned] {
	conv := func(b Borrowed) Owned { return string(b) }
	if opts.NormalizeNFC {
		conv = func(b Borrowed) Owned { return norm.NFC.String(string(b)) }
	}
	return Convert(forest, conv)
}

// Convert rebuilds a forest with every payload mapped through conv.
// The result shares nothing with the input except what conv returns.
func Convert[S, D Text](forest []Node[S], conv func(S) D) []Node[D] {
	if forest == nil {
		return nil
	}
	out := make([]Node[D], 0, len(forest))
	for _, n := range forest {
		out = append(out, convertNode(n, conv))
	}
	return out
}

func convertNode[S, D Text](n Node[S], conv func(S) D) Node[D] {
	switch v := n.(type) {
	case *LineComment[S]:
		return NewLineComment(v.Pos, conv(v.Line))
	case *BlockComment[S]:
		return NewBlockComment(v.Pos, convertLines(v.Lines, conv))
	case *LineOthertongue[S]:
		return NewLineOthertongue(v.Pos, conv(v.Line))
	case *BlockOthertongue[S]:
		return NewBlockOthertongue(v.Pos, convertLines(v.Lines, conv))
	case *Simplex[S]:
		return NewSimplex(v.Pos, conv(v.Name), convertAttachers(v.Attachers, conv)...)
	case *Complex[S]:
		return NewComplex(v.Pos, conv(v.Name), convertAttachers(v.Attachers, conv), Convert(v.Children, conv))
	case *Attacher[S]:
		return convertAttacher(v, conv)
	}
	panic("node: unknown node type")
}

func convertAttacher[S, D Text](a *Attacher[S], conv func(S) D) *Attacher[D] {
	return &Attacher[D]{
		Pos:      a.Pos,
		Label:    conv(a.Label),
		Content:  conv(a.Content),
		Comments: convertLines(a.Comments, conv),
	}
}

func convertAttachers[S, D Text](as []*Attacher[S], conv func(S) D) []*Attacher[D] {
	if as == nil {
		return nil
	}
	out := make([]*Attacher[D], len(as))
	for i, a := range as {
		out[i] = convertAttacher(a, conv)
	}
	return out
}

func convertLines[S, D Text](lines []S, conv func(S) D) []D {
	if lines == nil {
		return nil
	}
	out := make([]D, len(lines))
	for i, l := range lines {
		out[i] = conv(l)
	}
	return out
}
