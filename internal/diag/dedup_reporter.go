package diag

import "chearmyp/internal/source"

type dedupKey struct {
	code  Code
	file  source.FileID
	start uint32
	end   uint32
	msg   string
}

// DedupReporter drops repeated diagnostics (same code, span and message)
// before forwarding to next.
type DedupReporter struct {
	next Reporter
	seen map[dedupKey]struct{}
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[dedupKey]struct{})}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r == nil || r.next == nil {
		return
	}
	key := dedupKey{code: code, file: primary.File, start: primary.Start, end: primary.End, msg: msg}
	if _, dup := r.seen[key]; dup {
		return
	}
	r.seen[key] = struct{}{}
	r.next.Report(code, sev, primary, msg, notes)
}
