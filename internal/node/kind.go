package node

// Kind discriminates node structs.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindLineComment
	KindBlockComment
	KindSimplex
	KindComplex
	KindAttacher
	KindLineOthertongue
	KindBlockOthertongue
)

var kindNames = [...]string{
	KindInvalid:          "invalid",
	KindLineComment:      "line_comment",
	KindBlockComment:     "block_comment",
	KindSimplex:          "simplex",
	KindComplex:          "complex",
	KindAttacher:         "attacher",
	KindLineOthertongue:  "line_othertongue",
	KindBlockOthertongue: "block_othertongue",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s && Kind(k) != KindInvalid {
			return Kind(k), true
		}
	}
	return KindInvalid, false
}

// IsConcept reports whether nodes of this kind carry a name and attachers.
func (k Kind) IsConcept() bool { return k == KindSimplex || k == KindComplex }
