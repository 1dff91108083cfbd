package diag

import (
	"chearmyp/internal/source"
)

// Note points at secondary context, e.g. the node a line was attached to.
type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}
