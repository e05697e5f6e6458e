package testutil

import (
	"time"

	"github.com/thruflo/burndown/internal/progress"
)

// Reference run used across packages: 10,000 units started at 09:00.
const (
	ScenarioStart = "09:00"
	ScenarioTotal = "10000"
)

// SampleConfig is a config.yaml with every section set.
const SampleConfig = `run:
  start: "09:00"
  total: 10000
display:
  time_layout: "15:04"
  clock_layout: "15:04:05"
  chart_rows: 6
  stall_readings: 3
chart:
  width: 800
  height: 400
log:
  level: warn
`

// SampleReplay is a replay file with one unparseable reading between two
// good ones. Applied in order it yields ETAs of 19:00 and 17:20.
const SampleReplay = `start: "09:00"
total: 10000
samples:
  - at: 2026-10-18T13:00:00Z
    processed: 4000
  - at: 2026-10-18T13:30:00Z
    processed: lots
  - at: 2026-10-18T14:00:00Z
    processed: 6000
`

// At returns hh:mm on 2026-10-18 in UTC. It panics on a malformed argument.
func At(hhmm string) time.Time {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		panic(err)
	}
	return time.Date(2026, 10, 18, t.Hour(), t.Minute(), 0, 0, time.UTC)
}

// SampleInput returns the reference run's input with the given processed text.
func SampleInput(processed string) progress.Input {
	return progress.Input{Start: ScenarioStart, Total: ScenarioTotal, Processed: processed}
}
