package lexer

import (
	"testing"

	"chearmyp/internal/source"
)

// helper function to create a file
func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.chy", []byte(content))
	return fs.Get(id)
}

func TestCursorSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\n\t"))

	for _, want := range []byte{'a', '\n', '\t'} {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("Bump = %q, want %q", got, want)
		}
	}
	if !cursor.EOF() || cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Error("expected EOF state at end")
	}
}

func TestCursorEatRunAndLineEnd(t *testing.T) {
	cursor := NewCursor(createFile("\t\t\tname\nnext"))
	if n := cursor.EatRun('\t'); n != 3 {
		t.Fatalf("EatRun = %d, want 3", n)
	}
	if end := cursor.LineEnd(); end != 7 {
		t.Errorf("LineEnd = %d, want 7", end)
	}
	cursor.Seek(8)
	if end := cursor.LineEnd(); end != 12 {
		t.Errorf("LineEnd on last line = %d, want 12", end)
	}
	cursor.Seek(100)
	if !cursor.EOF() {
		t.Error("Seek past end must clamp to Limit")
	}
}

func TestCursorMarkSpanAndTriple(t *testing.T) {
	cursor := NewCursor(createFile("###x"))
	m := cursor.Mark()
	b0, b1, b2, ok := cursor.Peek3()
	if !ok || b0 != '#' || b1 != '#' || b2 != '#' {
		t.Fatalf("Peek3 = %q%q%q %v", b0, b1, b2, ok)
	}
	if !cursor.AtTriple('#') || cursor.AtTriple('=') {
		t.Error("AtTriple mismatch at fence")
	}
	cursor.EatRun('#')
	if sp := cursor.SpanFrom(m); sp.Start != 0 || sp.End != 3 {
		t.Errorf("SpanFrom = %v", sp)
	}
	cursor.Seek(2)
	if _, _, _, ok := cursor.Peek3(); ok {
		t.Error("Peek3 must fail with fewer than three bytes left")
	}
	if cursor.AtTriple('#') {
		t.Error("AtTriple must fail with fewer than three bytes left")
	}
}
