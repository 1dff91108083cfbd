package lexer

import (
	"chearmyp/internal/diag"
	"chearmyp/internal/node"
	"chearmyp/internal/source"
	"chearmyp/internal/token"
)

const (
	commentDelimiter     = '#'
	othertongueDelimiter = '='
	attacherSeparator    = ':'
	simplexMarker        = '|'
)

// Lexer classifies the lines of one file into tokens.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   []token.Token // токены, отданные Peek
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next returns the next classified line token. Blank lines are skipped.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if tok, rest, ok := node.PopFront(lx.look); ok {
		lx.look = rest
		return tok
	}

	for !lx.cursor.EOF() {
		if tok, ok := lx.scanLine(); ok {
			return tok
		}
	}
	return token.Token{Kind: token.EOF, Span: lx.EmptySpan()}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = node.PushFront(lx.look, t)
	return t
}

// EmptySpan is a zero-length span at the current position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// scanLine consumes one line (or one fenced block) and classifies it.
// ok is false for blank lines.
func (lx *Lexer) scanLine() (token.Token, bool) {
	lineStart := lx.cursor.Mark()
	depth := lx.cursor.EatRun(tab)
	contentStart := lx.cursor.Off
	end := lx.cursor.LineEnd()
	content := lx.file.Content[contentStart:end]

	if isBlank(content) {
		lx.skipLine(end)
		return token.Token{}, false
	}
	if content[0] == space {
		// пробелы не дают глубины; строка остаётся на уровне табов
		lx.report(diag.LexSpaceIndent, diag.SevWarning,
			source.Span{File: lx.file.ID, Start: uint32(lineStart), End: end},
			"spaces do not indent; only leading tabs count")
	}

	switch content[0] {
	case commentDelimiter:
		if tok, ok := lx.probeBlock(lineStart, depth, commentDelimiter, token.BlockComment); ok {
			return tok, true
		}
		return lx.lineToken(token.LineComment, lineStart, depth, content[1:], end), true
	case othertongueDelimiter:
		if tok, ok := lx.probeBlock(lineStart, depth, othertongueDelimiter, token.BlockOthertongue); ok {
			return tok, true
		}
		return lx.lineToken(token.LineOthertongue, lineStart, depth, content[1:], end), true
	}

	content = trimRightBlank(content)
	if label, rest, ok := splitAttacher(content); ok {
		tok := lx.lineToken(token.Attacher, lineStart, depth, rest, end)
		tok.Label = label
		return tok, true
	}
	if content[len(content)-1] == simplexMarker {
		name := content[:len(content)-1]
		tok := lx.lineToken(token.Simplex, lineStart, depth, name, end)
		if len(name) == 0 {
			lx.report(diag.LexEmptyName, diag.SevWarning, tok.Span, "simplex has an empty name")
		}
		return tok, true
	}
	return lx.lineToken(token.Complex, lineStart, depth, content, end), true
}

// probeBlock tries the block scanner at the current position. A fence that
// shares its line with other text is not a block opener.
func (lx *Lexer) probeBlock(lineStart Mark, depth int, delimiter byte, kind token.Kind) (token.Token, bool) {
	src := lx.file.Content[:lx.cursor.Limit]
	at := int(lx.cursor.Off)
	if lx.cursor.AtTriple(delimiter) && at+3 != lineEnd(src, at) {
		return token.Token{Kind: token.Invalid}, false
	}

	tok, next, closed := scanBlock(src, at, depth, delimiter)
	if tok.Kind != token.Block {
		// Invalid/Empty: вызывающий повторит разбор как однострочный токен
		return tok, false
	}

	tok.Kind = kind
	tok.Depth = depth
	spanEnd := next
	if spanEnd > 0 && src[spanEnd-1] == newLine {
		spanEnd--
	}
	tok.Span = source.Span{File: lx.file.ID, Start: uint32(lineStart), End: source.Offset(spanEnd)}
	lx.cursor.Seek(next)

	if !closed {
		diag.ReportInfo(lx.opts.Reporter, diag.LexUnterminatedBlock, tok.Span,
			"block is not closed; it ends at end of input").Emit()
	}
	return tok, true
}

func (lx *Lexer) lineToken(kind token.Kind, lineStart Mark, depth int, text []byte, end uint32) token.Token {
	lx.cursor.Off = end
	tok := token.Token{
		Kind:  kind,
		Depth: depth,
		Span:  lx.cursor.SpanFrom(lineStart),
		Text:  text,
	}
	lx.cursor.Eat(newLine)
	return tok
}

func (lx *Lexer) skipLine(end uint32) {
	lx.cursor.Off = end
	lx.cursor.Eat(newLine)
}

// splitAttacher splits "label: content". The label is non-empty, holds no
// blanks and is followed by ':' and a blank or the end of the line.
func splitAttacher(content []byte) (label, rest []byte, ok bool) {
	for i, b := range content {
		switch b {
		case space, tab:
			return nil, nil, false
		case attacherSeparator:
			if i == 0 {
				return nil, nil, false
			}
			if i+1 < len(content) && content[i+1] != space && content[i+1] != tab {
				continue
			}
			rest = content[i+1:]
			for len(rest) > 0 && (rest[0] == space || rest[0] == tab) {
				rest = rest[1:]
			}
			return content[:i], rest, true
		}
	}
	return nil, nil, false
}
