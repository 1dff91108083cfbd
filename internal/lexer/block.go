package lexer

import (
	"chearmyp/internal/source"
	"chearmyp/internal/token"
)

// Block recognizes a fenced block at offset and returns it together with the
// offset of the first byte after it.
//
// A block opens with three delimiter bytes; one newline right after the fence
// is skipped. It closes on the first line whose first tabCount bytes are tabs
// and whose remainder starts with three delimiter bytes. The closing fence and
// its newline are consumed but not returned. Content lines are returned raw,
// leading tabs included. A block that is never closed ends at len(src) and keeps
// every line read so far.
//
// When offset holds no fence the result is token.Invalid (input remains) or
// token.Empty (offset at or past the end), and the offset is returned unchanged.
//
//	tok, next := Block([]byte("bbb\nb\nbbb"), 0, 0, 'b')
//	// tok.Kind == token.Block, tok.Lines == [][]byte{[]byte("b")}, next == 9
func Block(src []byte, offset, tabCount int, delimiter byte) (token.Token, int) {
	tok, next, _ := scanBlock(src, offset, tabCount, delimiter)
	return tok, next
}

// scanBlock is Block that also reports whether a closing fence was found.
func scanBlock(src []byte, offset, tabCount int, delimiter byte) (tok token.Token, next int, closed bool) {
	if !hasTriple(src, offset, delimiter) {
		if offset >= 0 && offset < len(src) {
			return token.Token{Kind: token.Invalid}, offset, false
		}
		return token.Token{Kind: token.Empty}, offset, false
	}

	start := offset
	offset += 3
	if offset < len(src) && src[offset] == newLine {
		offset++
	}

	lines := make([][]byte, 0, 4)
	for offset < len(src) {
		end := lineEnd(src, offset)
		line := src[offset:end]

		// закрывающий забор допустим только на глубине окружающего блока
		if hasIndent(line, tabCount) && hasTriple(line, tabCount, delimiter) {
			if end < len(src) {
				end++
			}
			return blockToken(start, end, lines), end, true
		}

		lines = append(lines, line)
		offset = end
		if offset < len(src) {
			offset++
		}
	}
	return blockToken(start, len(src), lines), len(src), false
}

func blockToken(start, end int, lines [][]byte) token.Token {
	return token.Token{
		Kind:  token.Block,
		Span:  source.Span{Start: source.Offset(start), End: source.Offset(end)},
		Lines: lines,
	}
}
