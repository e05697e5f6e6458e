// Package replay runs a recorded sequence of readings through the progress
// calculator, producing the same results the dashboard would have shown had
// each reading been entered at its recorded time.
package replay

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/thruflo/burndown/internal/progress"
)

// Sample is one recorded reading. Processed is kept as text so that readings
// which do not parse replay as skipped, exactly as they would live.
type Sample struct {
	At        time.Time `yaml:"at"`
	Processed string    `yaml:"processed"`
}

// File is the replay file format.
type File struct {
	Start   string   `yaml:"start"`
	Total   string   `yaml:"total"`
	Samples []Sample `yaml:"samples"`
}

// Step is the outcome of replaying one sample.
type Step struct {
	Sample  Sample
	Result  progress.Result
	Skipped progress.SkipReason
}

// Applied reports whether the sample updated the run.
func (s Step) Applied() bool {
	return s.Skipped == progress.SkipNone
}

// Load reads a replay file from path.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("replay file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to open replay file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses a replay file.
func Decode(r io.Reader) (*File, error) {
	var file File
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse replay file: %w", err)
	}
	if len(file.Samples) == 0 {
		return nil, fmt.Errorf("replay file has no samples")
	}
	for i, s := range file.Samples {
		if s.At.IsZero() {
			return nil, fmt.Errorf("sample %d: missing time", i+1)
		}
	}
	return &file, nil
}

// Run applies every sample in order to a fresh run and returns the steps and
// the final state.
func Run(calc *progress.Calculator, file *File) ([]Step, *progress.RunState) {
	state := progress.NewRunState()
	steps := make([]Step, 0, len(file.Samples))

	for _, s := range file.Samples {
		in := progress.Input{Start: file.Start, Total: file.Total, Processed: s.Processed}
		res, reason := calc.Apply(state, in, s.At)
		steps = append(steps, Step{Sample: s, Result: res, Skipped: reason})
	}

	return steps, state
}
