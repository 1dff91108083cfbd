package token

// Kind represents the category of a line token.
type Kind uint8

const (
	// Invalid: the probed position does not have the expected shape, input remains.
	Invalid Kind = iota
	// Empty: the probed position is at or after the end of input.
	Empty
	// Block is a raw fenced block produced by the block scanner before classification.
	Block

	LineComment
	BlockComment
	LineOthertongue
	BlockOthertongue
	Simplex
	Complex
	Attacher

	// EOF marks the end of the token stream.
	EOF
)

var kindNames = [...]string{
	Invalid:          "Invalid",
	Empty:            "Empty",
	Block:            "Block",
	LineComment:      "LineComment",
	BlockComment:     "BlockComment",
	LineOthertongue:  "LineOthertongue",
	BlockOthertongue: "BlockOthertongue",
	Simplex:          "Simplex",
	Complex:          "Complex",
	Attacher:         "Attacher",
	EOF:              "EOF",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}
