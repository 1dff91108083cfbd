package lexer

import "bytes"

const (
	newLine = '\n'
	tab     = '\t'
	space   = ' '
)

// lineEnd returns the index of the first '\n' at or after start, or len(src).
func lineEnd(src []byte, start int) int {
	if start >= len(src) {
		return len(src)
	}
	if i := bytes.IndexByte(src[start:], newLine); i >= 0 {
		return start + i
	}
	return len(src)
}

// hasTriple reports whether src holds three delimiter bytes at offset.
// Fewer than three remaining bytes is never a match.
func hasTriple(src []byte, offset int, delimiter byte) bool {
	if offset < 0 || offset+2 >= len(src) {
		return false
	}
	return src[offset] == delimiter && src[offset+1] == delimiter && src[offset+2] == delimiter
}

// hasIndent reports whether the first n bytes of line are all tabs.
func hasIndent(line []byte, n int) bool {
	if n > len(line) {
		return false
	}
	for i := n - 1; i >= 0; i-- {
		if line[i] != tab {
			return false
		}
	}
	return true
}

func trimRightBlank(b []byte) []byte {
	return bytes.TrimRight(b, " \t")
}

func isBlank(b []byte) bool {
	return len(bytes.Trim(b, " \t")) == 0
}
