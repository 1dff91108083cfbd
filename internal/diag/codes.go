package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo              Code = 1000
	LexUnterminatedBlock Code = 1001
	LexSpaceIndent       Code = 1002
	LexEmptyName         Code = 1003

	// Структурные (scope stack)
	SynInfo           Code = 2000
	SynOverIndent     Code = 2001
	SynOrphanAttacher Code = 2002
	SynSimplexChild   Code = 2003
	SynAttacherChild  Code = 2004

	// I/O
	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002
)

var codeDescription = map[Code]string{
	UnknownCode:          "Unknown error",
	LexInfo:              "Lexical information",
	LexUnterminatedBlock: "Block closed at end of input",
	LexSpaceIndent:       "Spaces do not indent",
	LexEmptyName:         "Empty concept name",
	SynInfo:              "Structural information",
	SynOverIndent:        "Line indented deeper than its parent allows",
	SynOrphanAttacher:    "Attacher without a simplex or complex",
	SynSimplexChild:      "Simplex cannot have children",
	SynAttacherChild:     "Attacher can only hold comments",
	IOLoadFileError:      "I/O load file error",
	IOCacheError:         "Parse cache error",
}

// ID returns the stable short identifier, e.g. LEX1001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
