package parser

import (
	"golang.org/x/text/unicode/norm"

	"chearmyp/internal/diag"
	"chearmyp/internal/lexer"
	"chearmyp/internal/node"
	"chearmyp/internal/source"
	"chearmyp/internal/token"
)

type Options[T node.Text] struct {
	// Reporter receives structural warnings; nil drops them.
	Reporter diag.Reporter
	// Convert turns token bytes into payload text. nil means Convert[T].
	Convert func([]byte) T
}

// Parse drains stream into a fresh ScopeStack and returns the forest.
func Parse[T node.Text](stream lexer.Stream, opts Options[T]) []node.Node[T] {
	s := NewScopeStack(opts)
	for {
		tok := stream.Next()
		if tok.Kind == token.EOF {
			break
		}
		s.Push(tok)
	}
	return s.Finish()
}

// ParseFile lexes and parses one file. Lexer diagnostics go to the same reporter.
func ParseFile[T node.Text](file *source.File, opts Options[T]) []node.Node[T] {
	lx := lexer.New(file, lexer.Options{Reporter: opts.Reporter})
	return Parse(lx, opts)
}

// ParseBytes parses an in-memory document.
func ParseBytes[T node.Text](src []byte, opts Options[T]) []node.Node[T] {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<input>", src)
	return ParseFile(fs.Get(id), opts)
}

// Convert is the plain conversion: []byte payloads alias the buffer,
// string payloads are copies.
func Convert[T node.Text](b []byte) T {
	return T(b)
}

// Borrow keeps payloads as slices of the source buffer.
func Borrow(b []byte) node.Borrowed {
	return b
}

// Own returns a converter that copies payloads, NFC-normalized on request.
func Own(normalize bool) func([]byte) node.Owned {
	if normalize {
		return func(b []byte) node.Owned { return string(norm.NFC.Bytes(b)) }
	}
	return func(b []byte) node.Owned { return string(b) }
}
