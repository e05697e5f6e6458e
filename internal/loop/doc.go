// Package loop runs the live dashboard session.
//
// A Loop owns the single RunState of a session. It applies readings from
// three sources to it, one at a time:
//   - form submissions and update requests from the TUI
//   - samples from an optional counter file watcher (internal/feed)
//   - countdown completion reported by the TUI's countdown ticker
//
// After every applied reading it pushes a fresh view state to the TUI and,
// when configured, rewrites the chart PNG. The TUI's clock and countdown
// tickers only read the target it was given; they never change run state.
package loop
