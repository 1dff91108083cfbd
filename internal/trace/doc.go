// Package trace records what the chearmyp pipeline is doing.
//
// It is the logging layer of the tool: every driver phase opens a span and
// closes it with a short detail, and the CLI decides where the events go.
//
// # Usage
//
//	chearmyp parse docs/ --trace=- --trace-level=detail
//
// # Tracers
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: writes each event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events and dumps them when the command exits
//
// # Levels and scopes
//
//   - LevelPhase: ScopeDriver and ScopePass (load, lex, parse, cache)
//   - LevelDetail: plus ScopeFile (one span per parsed file)
//   - LevelDebug: plus ScopeToken (one point per token fed to the scope stack)
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", trace.CurrentSpan(ctx).SpanID)
//	defer span.End("")
package trace
