package progress

import (
	"math"
	"time"

	"github.com/thruflo/burndown/internal/logging"
)

// DefaultLabelLayout formats chart labels and the ETA clock time.
const DefaultLabelLayout = "15:04"

// UnknownLabel stands in for the ETA time when it cannot be computed.
const UnknownLabel = "--:--"

// DeltaClass classifies a speed change against the previous reading.
type DeltaClass int

const (
	DeltaNone DeltaClass = iota // no previous reading
	DeltaFaster
	DeltaSlower
	DeltaStable
)

// String returns the string representation of the class.
func (c DeltaClass) String() string {
	switch c {
	case DeltaNone:
		return "none"
	case DeltaFaster:
		return "faster"
	case DeltaSlower:
		return "slower"
	case DeltaStable:
		return "stable"
	default:
		return "unknown"
	}
}

// SpeedDelta is the change in speed since the previous successful update.
// Magnitude is signed and rounded to two decimals.
type SpeedDelta struct {
	Class     DeltaClass
	Magnitude float64
}

// Result is the outcome of one successful update.
type Result struct {
	Speed      float64 // units per minute
	Percentage float64
	Processed  int
	Total      int
	Remaining  int

	// ETA is nil when the completion instant is not finite, e.g. zero speed.
	ETA *time.Time

	Delta  SpeedDelta
	Points Series
}

// Calculator applies readings to a RunState.
type Calculator struct {
	// LabelLayout is the time layout for chart labels; DefaultLabelLayout when empty.
	LabelLayout string

	log *logging.Logger
}

// NewCalculator creates a Calculator using the given label layout.
func NewCalculator(layout string) *Calculator {
	if layout == "" {
		layout = DefaultLabelLayout
	}
	return &Calculator{
		LabelLayout: layout,
		log:         logging.With("component", "calculator"),
	}
}

// Apply parses the raw form fields and updates state. The returned reason
// is SkipNone exactly when the update was applied.
func (c *Calculator) Apply(state *RunState, in Input, now time.Time) (Result, SkipReason) {
	v, reason := in.Parse()
	if reason != SkipNone {
		c.log.Debug("reading skipped", "reason", string(reason))
		return Result{}, reason
	}
	return c.Update(state, v.Start, v.Total, v.Processed, now)
}

// Update computes speed, percentage and ETA for processed units out of total
// at now, and records the reading in state. When elapsed time since start is
// not positive, or total is not positive, state is left untouched.
func (c *Calculator) Update(state *RunState, start TimeOfDay, total, processed int, now time.Time) (Result, SkipReason) {
	if total <= 0 {
		c.log.Debug("reading skipped", "reason", string(SkipNonPositiveTotal))
		return Result{}, SkipNonPositiveTotal
	}

	startAt := start.ResolveStart(now)
	elapsed := now.Sub(startAt).Minutes()
	if elapsed <= 0 {
		c.log.Debug("reading skipped", "reason", string(SkipNoElapsedTime), "start", start.String())
		return Result{}, SkipNoElapsedTime
	}

	speed := float64(processed) / elapsed
	remaining := total - processed
	eta := projectETA(now, float64(remaining), speed)

	delta := SpeedDelta{Class: DeltaNone}
	if state.LastSpeed != nil {
		delta = classifyDelta(*state.LastSpeed, speed)
	}

	state.StartTime = start
	state.Total = total
	state.LastSpeed = floatPtr(speed)
	state.TargetDate = eta
	state.Points = c.appendReading(state.Points, now, eta, processed, total)

	c.log.Debug("reading applied",
		"processed", processed,
		"total", total,
		"speed", speed,
		"delta", delta.Class.String(),
	)

	return Result{
		Speed:      speed,
		Percentage: float64(processed) / float64(total) * 100,
		Processed:  processed,
		Total:      total,
		Remaining:  remaining,
		ETA:        eta,
		Delta:      delta,
		Points:     state.Points.Clone(),
	}, SkipNone
}

// appendReading adds the actual point for now and rebuilds the projection
// overlay: the new actual point projects processed, and a single trailing
// point labelled with the ETA projects total. Any previous trailing
// projection point is dropped first.
func (c *Calculator) appendReading(points Series, now time.Time, eta *time.Time, processed, total int) Series {
	if n := len(points); n > 0 && points[n-1].Actual == nil {
		points = points[:n-1]
	}
	for i := range points {
		points[i].Projected = nil
	}

	points = append(points, Point{
		Label:     now.Format(c.LabelLayout),
		Actual:    floatPtr(float64(processed)),
		Projected: floatPtr(float64(processed)),
	})

	etaLabel := UnknownLabel
	if eta != nil {
		etaLabel = eta.Format(c.LabelLayout)
	}
	return append(points, Point{
		Label:     etaLabel,
		Projected: floatPtr(float64(total)),
	})
}

// projectETA extrapolates linearly from speed. It returns nil when the
// result is not a representable instant.
func projectETA(now time.Time, remaining, speed float64) *time.Time {
	minutesLeft := remaining / speed
	if math.IsNaN(minutesLeft) || math.IsInf(minutesLeft, 0) {
		return nil
	}
	nanos := minutesLeft * float64(time.Minute)
	if math.Abs(nanos) >= math.MaxInt64 {
		return nil
	}
	eta := now.Add(time.Duration(math.Round(nanos)))
	return &eta
}

func classifyDelta(prev, speed float64) SpeedDelta {
	diff := math.Round((speed-prev)*100) / 100
	switch {
	case diff > 0:
		return SpeedDelta{Class: DeltaFaster, Magnitude: diff}
	case diff < 0:
		return SpeedDelta{Class: DeltaSlower, Magnitude: diff}
	default:
		return SpeedDelta{Class: DeltaStable}
	}
}
