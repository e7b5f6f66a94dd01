// Package diag is the reporting channel of a lintfix run.
//
// # Purpose
//
//   - Give the driver and the fix engine a Reporter to talk to instead of a
//     process-wide logger, so tests can collect messages in a Bag.
//   - Render messages for humans: StreamReporter writes timestamped lines,
//     colored by severity when the output is a terminal.
//
// # Scope
//
// Package diag does not decide what is worth reporting. Tally rendering lives
// in internal/report; structured run events go to internal/trace.
//
// # Implementations
//
//   - StreamReporter – "[ts LEVEL name]: path: message" lines on an io.Writer.
//   - Bag / BagReporter – in-memory collection, used by tests and by callers
//     that need to inspect what happened.
//   - MultiReporter – fan-out, e.g. console plus --log-file.
//   - Nop – drops everything.
package diag
