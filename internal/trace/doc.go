// Package trace records what quill is doing while it runs.
//
// It is the operational log of the tokenizer pipeline: driver runs, lex and
// bind passes, per-file work and, at the most verbose level, scope push/pop
// events from the binder.
//
// # Usage
//
//	quill tokenize --trace=- --trace-level=detail scripts/
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes every event immediately (file or stderr)
//   - RingTracer: keeps the last N events in memory for dumps
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// A tracer at LevelPhase emits ScopeDriver and ScopePass events, LevelDetail
// adds ScopeModule (one per file) and LevelDebug adds ScopeNode.
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "lex", parentID)
//	defer span.End("")
package trace
