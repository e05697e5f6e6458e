package progress

import (
	"time"

	"github.com/google/uuid"
)

// StartLabel labels the seed point every run begins with.
const StartLabel = "Start"

// Point is one entry on the shared chart axis.
// Actual is nil for the trailing projection-only point; Projected is nil
// everywhere except the last actual point and the projection point.
type Point struct {
	Label     string
	Actual    *float64
	Projected *float64
}

// Series is the ordered point sequence backing both chart series.
type Series []Point

// Labels returns the shared label axis.
func (s Series) Labels() []string {
	labels := make([]string, len(s))
	for i, p := range s {
		labels[i] = p.Label
	}
	return labels
}

// Actual returns the "Actual" series aligned with Labels. Only the trailing
// projection point yields nil.
func (s Series) Actual() []*float64 {
	values := make([]*float64, len(s))
	for i, p := range s {
		values[i] = p.Actual
	}
	return values
}

// Projection returns the sparse "Projection" series aligned with Labels.
func (s Series) Projection() []*float64 {
	values := make([]*float64, len(s))
	for i, p := range s {
		values[i] = p.Projected
	}
	return values
}

// ActualCount returns the number of recorded actual points, seed included.
func (s Series) ActualCount() int {
	n := 0
	for _, p := range s {
		if p.Actual != nil {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the series.
func (s Series) Clone() Series {
	if s == nil {
		return nil
	}
	out := make(Series, len(s))
	for i, p := range s {
		out[i] = Point{
			Label:     p.Label,
			Actual:    cloneFloat(p.Actual),
			Projected: cloneFloat(p.Projected),
		}
	}
	return out
}

// RunState is the state of one tracked run for the lifetime of a session.
type RunState struct {
	ID        string
	StartTime TimeOfDay
	Total     int

	// LastSpeed is nil until the first successful update.
	LastSpeed *float64

	// TargetDate is the current ETA; nil before the first successful update
	// and whenever the ETA cannot be computed.
	TargetDate *time.Time

	Points Series
}

// NewRunState returns a state seeded with the zero-valued "Start" point.
func NewRunState() *RunState {
	return &RunState{
		ID:     uuid.New().String(),
		Points: Series{{Label: StartLabel, Actual: floatPtr(0)}},
	}
}

// Clone returns a deep copy safe to hand to readers.
func (s *RunState) Clone() *RunState {
	out := &RunState{
		ID:        s.ID,
		StartTime: s.StartTime,
		Total:     s.Total,
		LastSpeed: cloneFloat(s.LastSpeed),
		Points:    s.Points.Clone(),
	}
	if s.TargetDate != nil {
		t := *s.TargetDate
		out.TargetDate = &t
	}
	return out
}

// ShortID returns the first segment of the run ID for display.
func (s *RunState) ShortID() string {
	if len(s.ID) < 8 {
		return s.ID
	}
	return s.ID[:8]
}

func floatPtr(v float64) *float64 {
	return &v
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	return floatPtr(*p)
}
