// Package progress turns periodic "units processed" readings into throughput,
// percentage and ETA figures for a single batch run.
//
// The only mutable state is RunState. Calculator.Update is the single writer:
// it either applies a reading completely or leaves the state untouched, so a
// display that renders a snapshot after any call always sees a consistent run.
//
// Time is never read from the ambient clock. Every computation takes the
// current instant as an argument, which keeps overnight rollover and ETA
// arithmetic deterministic under test.
package progress
