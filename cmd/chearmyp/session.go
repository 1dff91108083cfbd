package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"chearmyp/internal/observ"
	"chearmyp/internal/trace"
)

// session owns the per-command tracer, profiler and phase timer.
type session struct {
	ctx      context.Context
	timer    *observ.Timer
	span     *trace.Span
	cleanups []func()
}

func startSession(cmd *cobra.Command, s *settings) (*session, error) {
	sess := &session{ctx: cmd.Context()}
	if sess.ctx == nil {
		sess.ctx = context.Background()
	}

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return nil, err
	}
	sess.cleanups = append(sess.cleanups, stopProfiling)

	tracer, stopTracing, err := setupTracing(cmd, s.trace)
	if err != nil {
		sess.close()
		return nil, err
	}
	sess.cleanups = append(sess.cleanups, stopTracing)

	sess.ctx = trace.WithTracer(sess.ctx, tracer)
	sess.span = trace.Begin(tracer, trace.ScopeDriver, cmd.Name(), 0)
	sess.ctx = trace.WithSpan(sess.ctx, sess.span)

	if s.timings {
		sess.timer = observ.NewTimer()
	}
	return sess, nil
}

// close runs cleanups in reverse order; the driver span ends before the
// tracer is flushed.
func (sess *session) close() {
	if sess.span != nil {
		sess.span.End("")
		sess.span = nil
	}
	for i := len(sess.cleanups) - 1; i >= 0; i-- {
		sess.cleanups[i]()
	}
	sess.cleanups = nil
}

func (sess *session) printTimings(w io.Writer) {
	if sess.timer == nil {
		return
	}
	fmt.Fprint(w, sess.timer.Summary())
}
