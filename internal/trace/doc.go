// Package trace is the structured logging layer of ssc.
//
// The checker has no free-form logger: every phase reports what it is doing
// as trace events (span begin/end and instant points) tagged with a Scope.
// The configured Level decides which scopes reach the output.
//
// # Levels
//
//   - LevelOff: nothing
//   - LevelError: only events explicitly marked as failures
//   - LevelPhase: driver and pass boundaries (load, parse, check)
//   - LevelDetail: one span per checked definition
//   - LevelDebug: everything, including unifier bindings
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is disabled
//   - StreamTracer: writes each event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events in memory
//   - MultiTracer: fans out to several tracers
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "parse", parentID)
//	defer span.End("")
package trace
