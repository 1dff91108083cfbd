package testkit

import (
	"bytes"
	"fmt"

	"fortio.org/safecast"

	"chearmyp/internal/node"
	"chearmyp/internal/source"
)

// CheckForestInvariants runs the structural checks every parsed forest must pass:
// 1) every span is non-empty, belongs to sf and lies within its content
// 2) a parent span covers the spans of its attachers and children
// 3) roots appear in source order and do not overlap
// 4) no node is reachable twice
func CheckForestInvariants[T node.Text](forest []node.Node[T], sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	c := &checker[T]{file: sf.ID, limit: lenContent, seen: make(map[node.Node[T]]struct{})}

	var prevEnd uint32
	for i, root := range forest {
		if i > 0 && root.Span().Start < prevEnd {
			return fmt.Errorf("root %d starts at %d before previous root ends at %d", i, root.Span().Start, prevEnd)
		}
		prevEnd = root.Span().End
		if err := c.subtree(root, nil); err != nil {
			return err
		}
	}
	return nil
}

type checker[T node.Text] struct {
	file  source.FileID
	limit uint32
	seen  map[node.Node[T]]struct{}
}

func (c *checker[T]) subtree(n node.Node[T], parent *source.Span) error {
	if err := c.one(n, parent); err != nil {
		return err
	}
	sp := n.Span()
	if attachers, ok := node.AttachersOf(n); ok {
		for _, a := range attachers {
			if err := c.one(a, &sp); err != nil {
				return err
			}
		}
	}
	if children, ok := node.ChildrenOf(n); ok {
		for _, child := range children {
			if err := c.subtree(child, &sp); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *checker[T]) one(n node.Node[T], parent *source.Span) error {
	if _, dup := c.seen[n]; dup {
		return fmt.Errorf("%s at %v is reachable twice", n.Kind(), n.Span())
	}
	c.seen[n] = struct{}{}

	sp := n.Span()
	if sp.End <= sp.Start {
		return fmt.Errorf("empty %s span: %v", n.Kind(), sp)
	}
	if sp.File != c.file {
		return fmt.Errorf("%s span file mismatch: got=%d want=%d", n.Kind(), sp.File, c.file)
	}
	if sp.End > c.limit {
		return fmt.Errorf("%s span end beyond content: %d > %d", n.Kind(), sp.End, c.limit)
	}
	if parent != nil && !parent.Contains(sp) {
		return fmt.Errorf("%s span %v is outside its parent %v", n.Kind(), sp, *parent)
	}
	return nil
}

// CountTopLevel counts the lines of src that start a root construct: non-blank
// lines without leading tabs. Bodies of top-level fenced blocks are skipped.
func CountTopLevel(src []byte) int {
	count := 0
	var fence []byte
	for _, line := range bytes.Split(src, []byte{'\n'}) {
		switch {
		case fence != nil:
			if bytes.HasPrefix(line, fence) {
				fence = nil
			}
		case len(bytes.Trim(line, " \t")) == 0 || line[0] == '\t':
		default:
			count++
			if string(line) == "###" || string(line) == "===" {
				fence = line
			}
		}
	}
	return count
}
