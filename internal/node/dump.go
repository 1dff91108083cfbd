package node

import (
	"strconv"
	"strings"
)

// Dump renders a forest as indented text without spans, one node per line.
// Two forests with equal structure and payloads dump identically.
func Dump[T Text](forest []Node[T]) string {
	var sb strings.Builder
	Walk(forest, func(n Node[T], depth int) bool {
		sb.WriteString(strings.Repeat("\t", depth))
		sb.WriteString(n.Kind().String())
		switch v := n.(type) {
		case *LineComment[T]:
			writeQuoted(&sb, v.Line)
		case *LineOthertongue[T]:
			writeQuoted(&sb, v.Line)
		case *BlockComment[T]:
			writeLines(&sb, v.Lines)
		case *BlockOthertongue[T]:
			writeLines(&sb, v.Lines)
		case *Simplex[T]:
			writeQuoted(&sb, v.Name)
		case *Complex[T]:
			writeQuoted(&sb, v.Name)
		case *Attacher[T]:
			writeQuoted(&sb, v.Label)
			writeQuoted(&sb, v.Content)
			writeLines(&sb, v.Comments)
		}
		sb.WriteByte('\n')
		return true
	})
	return sb.String()
}

func writeQuoted[T Text](sb *strings.Builder, s T) {
	sb.WriteByte(' ')
	sb.WriteString(strconv.Quote(string(s)))
}

func writeLines[T Text](sb *strings.Builder, lines []T) {
	sb.WriteString(" [")
	for i, l := range lines {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Quote(string(l)))
	}
	sb.WriteByte(']')
}
