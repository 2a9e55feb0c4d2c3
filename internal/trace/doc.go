// Package trace records where the Zephyr front end spends its time.
//
// Spans mark the driver, the lex/parse/bind passes of each file, nested import
// binds and the per-type sweeps of the binder. They help spot slow files and
// runaway import chains.
//
// # Usage
//
//	zephyr diag --trace=- --trace-level=phase main.zph
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes every event immediately
//   - RingTracer: keeps the last N events for a dump on failure
//   - MultiTracer: fans out to several tracers; RingOf finds its ring
//
// # Levels and scopes
//
// LevelPhase shows ScopeDriver and ScopePass events, LevelDetail adds ScopeFile
// (one span per bound file or import), LevelDebug adds ScopeNode (one span per
// type sweep).
//
// LevelError streams nothing; a ring tracer at that level still keeps file
// spans and the CLI dumps it when a command fails.
//
// Tracers and the current span travel through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopePass, "declare")
//	defer span.WithCount("types", n).End("")
package trace
