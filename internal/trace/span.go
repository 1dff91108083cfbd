package trace

import (
	"bytes"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"
)

var (
	globalSeq   atomic.Uint64
	globalSpans atomic.Uint64
)

// NextSeq returns a monotonically increasing sequence number.
func NextSeq() uint64 {
	return globalSeq.Add(1)
}

// goroutineID reads the id from the header of runtime.Stack.
// ParseDir workers are told apart by it in the text output.
func goroutineID() uint64 {
	var buf [64]byte
	header := bytes.TrimPrefix(buf[:runtime.Stack(buf[:], false)], []byte("goroutine "))
	if i := bytes.IndexByte(header, ' '); i > 0 {
		if gid, err := strconv.ParseUint(string(header[:i]), 10, 64); err == nil {
			return gid
		}
	}
	return 0
}

func enabled(t Tracer) bool {
	return t != nil && t.Level() > LevelOff
}

// accepts reports whether t wants events of scope.
func accepts(t Tracer, scope Scope) bool {
	return enabled(t) && t.Level().ShouldEmit(scope)
}

func newEvent(kind Kind, scope Scope, name string, parent uint64) *Event {
	return &Event{
		Time:     time.Now(),
		Seq:      NextSeq(),
		Kind:     kind,
		Scope:    scope,
		ParentID: parent,
		GID:      goroutineID(),
		Name:     name,
	}
}

// Span is an open begin/end pair, e.g. one "parse_file" per document.
type Span struct {
	tracer  Tracer
	begin   Event
	started time.Time
	extra   map[string]string
}

// Begin starts a span and emits KindSpanBegin. parent is 0 for roots.
// A disabled tracer or a filtered scope returns an inert span.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if !accepts(t, scope) {
		return &Span{tracer: Nop}
	}
	ev := newEvent(KindSpanBegin, scope, name, parent)
	ev.SpanID = globalSpans.Add(1)
	t.Emit(ev)
	return &Span{tracer: t, begin: *ev, started: ev.Time}
}

// End emits KindSpanEnd with detail and the collected extras and returns
// the span duration.
func (s *Span) End(detail string) time.Duration {
	if s == nil || !enabled(s.tracer) {
		return 0
	}
	ev := newEvent(KindSpanEnd, s.begin.Scope, s.begin.Name, s.begin.ParentID)
	ev.SpanID = s.begin.SpanID
	ev.GID = s.begin.GID
	ev.Detail = detail
	ev.Extra = s.extra
	s.tracer.Emit(ev)
	return ev.Time.Sub(s.started)
}

// WithExtra adds a key-value pair to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || !enabled(s.tracer) {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string)
	}
	s.extra[key] = value
	return s
}

func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.begin.SpanID
}

// Point emits an instant event, e.g. one token handed to the scope stack.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if !accepts(t, scope) {
		return
	}
	ev := newEvent(KindPoint, scope, name, parent)
	ev.Detail = detail
	t.Emit(ev)
}
