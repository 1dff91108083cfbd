package lexer

import (
	"chearmyp/internal/source"
)

// Cursor is a byte position inside a source file.
type Cursor struct {
	File *source.File
	Off  uint32
	// Limit is the exclusive upper bound for Off; defaults to len(File.Content).
	Limit uint32
}

// NewCursor creates a new cursor for the provided file.
func NewCursor(f *source.File) Cursor {
	return Cursor{
		File:  f,
		Off:   0,
		Limit: source.Offset(len(f.Content)),
	}
}

// EOF проверяет, достигнут ли конец файла
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.File.Content[c.Off]
}

// AtTriple reports whether the cursor stands on three delimiter bytes.
func (c *Cursor) AtTriple(delimiter byte) bool {
	b0, b1, b2, ok := c.Peek3()
	return ok && b0 == delimiter && b1 == delimiter && b2 == delimiter
}

// Peek3 reads the current byte and the two after it.
func (c *Cursor) Peek3() (b0, b1, b2 byte, ok bool) {
	if c.Off+2 >= c.Limit {
		return 0, 0, 0, false
	}
	return c.File.Content[c.Off], c.File.Content[c.Off+1], c.File.Content[c.Off+2], true
}

// Bump перемещает курсор на один байт вперед и возвращает прочитанный байт
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.File.Content[c.Off]
	c.Off++
	return b
}

// Eat consumes the next byte if it matches the provided byte.
func (c *Cursor) Eat(b byte) bool {
	if c.EOF() || c.Peek() != b {
		return false
	}
	c.Bump()
	return true
}

// EatRun consumes consecutive b bytes and returns how many were eaten.
func (c *Cursor) EatRun(b byte) int {
	n := 0
	for c.Eat(b) {
		n++
	}
	return n
}

// LineEnd returns the offset of the next '\n' at or after Off, or Limit.
func (c *Cursor) LineEnd() uint32 {
	end := lineEnd(c.File.Content[:c.Limit], int(c.Off))
	return source.Offset(end)
}

// Mark это метка, что бы быстро получать Span читаемого фрагмента
type Mark uint32

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{
		File:  c.File.ID,
		Start: uint32(m),
		End:   c.Off,
	}
}

// Seek moves the cursor to an absolute offset, clamped to Limit.
func (c *Cursor) Seek(off int) {
	pos := source.Offset(off)
	if pos > c.Limit {
		pos = c.Limit
	}
	c.Off = pos
}
