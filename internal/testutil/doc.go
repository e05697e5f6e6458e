// Package testutil provides shared test utilities for burndown.
//
// # Fixtures
//
// The fixtures.go file provides sample data for testing:
//
//   - ScenarioStart, ScenarioTotal - the 09:00 / 10,000 unit reference run
//   - At(hhmm) - an instant on the reference day
//   - SampleConfig, SampleReplay - YAML documents for config and replay files
//   - SampleInput(processed) - a calculator input for the reference run
//
// # Environment Helpers
//
// The env.go file provides test environment setup:
//
//   - SetupTestDir(t) - creates a temp directory with a .burndown/config.yaml
//   - FindProjectRoot(t) - finds the directory holding go.mod
//   - WriteTestFile(t, base, path, content) - writes a file in test dir
//
// # Assertions
//
// The assertions.go file provides custom test assertions:
//
//   - AssertSeriesShape(t, points) - checks the seed, projection and label invariants
//   - AssertActualValues(t, points, values...) - compares the recorded readings
//   - AssertProjectionTail(t, points, label, total) - checks the trailing projection point
//
// # Usage
//
//	func TestSomething(t *testing.T) {
//	    dir := testutil.SetupTestDir(t)
//	    state := progress.NewRunState()
//	    calc.Apply(state, testutil.SampleInput("4000"), testutil.At("13:00"))
//	    testutil.AssertSeriesShape(t, state.Points)
//	}
package testutil
