// Package trace records what a lintfix run does, span by span.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	lintfix fix --trace=- --trace-level=file lint.log
//
// # Levels
//
//   - LevelOff: No tracing
//   - LevelRun: Whole-run spans (parse, fix, report)
//   - LevelFile: Plus one span per source file
//   - LevelRecord: Everything, including each applied record
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeFile, "fix:a.js", parentID)
//	defer span.End("")
package trace
