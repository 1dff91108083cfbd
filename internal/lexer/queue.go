package lexer

import (
	"chearmyp/internal/node"
	"chearmyp/internal/token"
)

// Stream is anything that hands out tokens one at a time and returns
// token.EOF once exhausted. Both *Lexer and *Queue are streams.
type Stream interface {
	Next() token.Token
}

// Queue is an already materialized token sequence.
type Queue struct {
	items []token.Token
}

// NewQueue wraps tokens without copying them. EOF tokens are dropped.
func NewQueue(tokens ...token.Token) *Queue {
	q := &Queue{items: make([]token.Token, 0, len(tokens))}
	for _, tok := range tokens {
		q.Push(tok)
	}
	return q
}

// Collect drains a stream into a queue.
func Collect(s Stream) *Queue {
	q := &Queue{items: make([]token.Token, 0, 32)}
	for {
		tok := s.Next()
		if tok.Kind == token.EOF {
			return q
		}
		q.Push(tok)
	}
}

// Push appends a token at the back.
func (q *Queue) Push(tok token.Token) {
	if tok.Kind == token.EOF {
		return
	}
	q.items = node.PushBack(q.items, tok)
}

// Next pops the front token or returns EOF.
func (q *Queue) Next() token.Token {
	tok, rest, ok := node.PopFront(q.items)
	if !ok {
		return token.Token{Kind: token.EOF}
	}
	q.items = rest
	return tok
}

// Len is the number of tokens not yet consumed.
func (q *Queue) Len() int {
	return len(q.items)
}

// Tokens returns the remaining tokens without consuming them.
func (q *Queue) Tokens() []token.Token {
	return q.items
}
