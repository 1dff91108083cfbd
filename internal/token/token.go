package token

import (
	"chearmyp/internal/source"
)

// Token is one classified line (or fenced run of lines) of an outline document.
type Token struct {
	Kind  Kind
	Depth int
	Span  source.Span
	// Text is the name of a simplex/complex, the payload of a line comment or
	// othertongue, and the content of an attacher.
	Text []byte
	// Label is set for attachers only.
	Label []byte
	// Lines holds the content of fenced blocks, fences excluded.
	Lines [][]byte
}

// IsBlock reports whether the token carries fenced content.
func (t Token) IsBlock() bool {
	switch t.Kind {
	case Block, BlockComment, BlockOthertongue:
		return true
	default:
		return false
	}
}

// IsConcept reports whether the token starts a simplex or complex node.
func (t Token) IsConcept() bool { return t.Kind == Simplex || t.Kind == Complex }

// IsPassThrough reports whether the token is a comment or othertongue leaf.
func (t Token) IsPassThrough() bool {
	switch t.Kind {
	case LineComment, BlockComment, LineOthertongue, BlockOthertongue:
		return true
	default:
		return false
	}
}

// IsComment reports whether the token is a line or block comment.
func (t Token) IsComment() bool { return t.Kind == LineComment || t.Kind == BlockComment }

// IsAnnotation reports whether the token is an attacher.
func (t Token) IsAnnotation() bool { return t.Kind == Attacher }
