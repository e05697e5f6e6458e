package loop

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/thruflo/burndown/internal/chart"
	"github.com/thruflo/burndown/internal/feed"
	"github.com/thruflo/burndown/internal/logging"
	"github.com/thruflo/burndown/internal/progress"
	"github.com/thruflo/burndown/internal/tui"
)

// ExitReason indicates why the loop stopped.
type ExitReason int

const (
	ExitReasonUnknown   ExitReason = iota
	ExitReasonQuit                 // User quit the dashboard
	ExitReasonCancelled            // Context was cancelled
)

// String returns a human-readable description of the exit reason.
func (r ExitReason) String() string {
	switch r {
	case ExitReasonQuit:
		return "user quit"
	case ExitReasonCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Result contains the outcome of a loop execution.
type Result struct {
	Reason   ExitReason
	Readings int // Number of readings applied
	State    *progress.RunState
}

// Screen is the part of the TUI the loop drives.
type Screen interface {
	SetState(tui.ViewState)
	Update()
	Actions() <-chan tui.ActionEvent
	IsRunning() bool
}

// Notifier alerts the user when the run finishes or reaches its ETA.
type Notifier interface {
	NotifyForReason(reason tui.NotificationReason, runID string, isForeground bool) error
}

// Loop owns the run state for one dashboard session.
type Loop struct {
	calc     *progress.Calculator
	screen   Screen
	notifier Notifier
	samples  <-chan feed.Sample
	feedPath string

	timeLayout    string
	chartPath     string
	chartOpts     chart.Options
	stallReadings int
	now           func() time.Time
	log           *logging.Logger

	mu       sync.Mutex
	state    *progress.RunState
	input    progress.Input
	last     *progress.Result
	readings int
	finished bool
	etaSeen  bool
	message  string
}

// LoopOptions holds configuration for creating a Loop instance.
type LoopOptions struct {
	Calculator *progress.Calculator
	State      *progress.RunState // Optional: a fresh run is started if nil
	Input      progress.Input     // Initial form fields
	TUI        Screen
	Notifier   Notifier // Optional

	Samples  <-chan feed.Sample // Optional: counter file readings
	FeedPath string

	TimeLayout    string
	ChartPath     string // Optional: rewritten after every applied reading
	Chart         chart.Options
	StallReadings int

	Now func() time.Time // Optional: defaults to time.Now
}

// NewLoopWithOptions creates a Loop with explicit options.
func NewLoopWithOptions(opts LoopOptions) *Loop {
	calc := opts.Calculator
	if calc == nil {
		calc = progress.NewCalculator(opts.TimeLayout)
	}
	state := opts.State
	if state == nil {
		state = progress.NewRunState()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	layout := opts.TimeLayout
	if layout == "" {
		layout = progress.DefaultLabelLayout
	}

	return &Loop{
		calc:          calc,
		screen:        opts.TUI,
		notifier:      opts.Notifier,
		samples:       opts.Samples,
		feedPath:      opts.FeedPath,
		timeLayout:    layout,
		chartPath:     opts.ChartPath,
		chartOpts:     opts.Chart,
		stallReadings: opts.StallReadings,
		now:           now,
		log:           logging.WithFields(map[string]interface{}{"component": "loop", "run": state.ShortID()}),
		state:         state,
		input:         opts.Input,
	}
}

// Run processes TUI actions and feed samples until the user quits or ctx is
// cancelled. An initial reading is attempted from the starting input.
func (l *Loop) Run(ctx context.Context) Result {
	l.Refresh()

	samples := l.samples
	actions := l.screen.Actions()

	for {
		select {
		case <-ctx.Done():
			return l.result(ExitReasonCancelled)

		case sample, ok := <-samples:
			if !ok {
				// Watcher stopped; keep serving the keyboard
				samples = nil
				l.log.Debug("feed closed")
				continue
			}
			l.Feed(sample)

		case action := <-actions:
			switch action.Action {
			case tui.ActionSubmitField:
				l.Submit(action.Field, action.Input)
			case tui.ActionUpdate:
				l.Refresh()
			case tui.ActionExport:
				l.Export()
			case tui.ActionCountdownComplete:
				l.etaReached()
			case tui.ActionQuit:
				return l.result(ExitReasonQuit)
			}
		}
	}
}

func (l *Loop) result(reason ExitReason) Result {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Result{Reason: reason, Readings: l.readings, State: l.state.Clone()}
}

// Submit stores a form field. Submitting the processed count also applies
// a reading.
func (l *Loop) Submit(field tui.Field, value string) bool {
	l.mu.Lock()
	switch field {
	case tui.FieldStart:
		l.input.Start = value
	case tui.FieldTotal:
		l.input.Total = value
	case tui.FieldProcessed:
		l.input.Processed = value
	}
	l.mu.Unlock()

	if field == tui.FieldProcessed {
		return l.Refresh()
	}
	l.push()
	return false
}

// Refresh applies a reading from the current form fields at the current time.
func (l *Loop) Refresh() bool {
	l.mu.Lock()
	in := l.input
	l.mu.Unlock()
	return l.apply(in, l.now())
}

// Feed applies a counter file sample as the processed count, timed when
// the file was read. A sample that does not parse leaves the processed
// field as it was.
func (l *Loop) Feed(sample feed.Sample) bool {
	l.mu.Lock()
	in := l.input
	l.mu.Unlock()
	in.Processed = sample.Raw

	at := sample.At
	if at.IsZero() {
		at = l.now()
	}
	return l.apply(in, at)
}

// apply runs the calculator on in. Readings that don't parse, or that have
// no elapsed time, leave everything as it was.
func (l *Loop) apply(in progress.Input, now time.Time) bool {
	l.mu.Lock()
	res, reason := l.calc.Apply(l.state, in, now)
	if reason != progress.SkipNone {
		l.mu.Unlock()
		l.log.Debug("reading skipped", "reason", string(reason), "processed", in.Processed)
		l.push()
		return false
	}

	l.input.Processed = in.Processed
	l.last = &res
	l.readings++
	l.message = ""
	if DetectStalled(l.state.Points, l.stallReadings) {
		l.message = fmt.Sprintf("No progress in the last %d readings", l.stallReadings)
		l.log.Warn("run stalled", "readings", l.stallReadings, "processed", res.Processed)
	}
	finishedNow := !l.finished && res.Processed >= res.Total
	if finishedNow {
		l.finished = true
	}
	points := l.state.Points.Clone()
	l.mu.Unlock()

	if l.chartPath != "" {
		if err := chart.WriteFile(l.chartPath, points, l.chartOptions()); err != nil {
			l.log.Warn("failed to write chart", "path", l.chartPath, "error", err)
			l.setMessage(fmt.Sprintf("Chart not written: %v", err))
		}
	}
	if finishedNow {
		l.notify(tui.NotifyReasonFinished)
	}

	l.push()
	return true
}

// Export writes the chart PNG and returns its path. Without a --chart path
// the file is named after the run in the working directory.
func (l *Loop) Export() (string, error) {
	l.mu.Lock()
	path := l.chartPath
	if path == "" {
		path = fmt.Sprintf("burndown-%s.png", l.state.ShortID())
	}
	points := l.state.Points.Clone()
	l.mu.Unlock()

	if err := chart.WriteFile(path, points, l.chartOptions()); err != nil {
		l.log.Warn("chart export failed", "path", path, "error", err)
		l.setMessage(fmt.Sprintf("Export failed: %v", err))
		l.push()
		return "", fmt.Errorf("failed to export chart: %w", err)
	}

	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	l.log.Info("chart exported", "path", path)
	l.setMessage("Chart written to " + path)
	l.push()
	return path, nil
}

func (l *Loop) chartOptions() chart.Options {
	opts := l.chartOpts
	if opts.Title == "" {
		opts.Title = "Burndown " + l.state.ShortID()
	}
	return opts
}

// etaReached notifies the first time the countdown completes. Later
// completions, after a reading pushed the ETA out again, are only logged.
func (l *Loop) etaReached() {
	l.mu.Lock()
	first := !l.etaSeen
	l.etaSeen = true
	l.mu.Unlock()

	if !first {
		l.log.Info("ETA reached again")
		return
	}
	l.notify(tui.NotifyReasonETAReached)
}

func (l *Loop) setMessage(msg string) {
	l.mu.Lock()
	l.message = msg
	l.mu.Unlock()
}

func (l *Loop) notify(reason tui.NotificationReason) {
	if l.notifier == nil {
		return
	}
	if err := l.notifier.NotifyForReason(reason, l.state.ShortID(), l.screen.IsRunning()); err != nil {
		l.log.Warn("notification failed", "reason", reason.String(), "error", err)
	}
}

// ViewState builds the TUI state for the current run.
func (l *Loop) ViewState() tui.ViewState {
	l.mu.Lock()
	defer l.mu.Unlock()

	vs := tui.ViewState{
		RunID:    l.state.ShortID(),
		Input:    l.input,
		FeedPath: l.feedPath,
		Points:   l.state.Points.Clone(),
		Total:    l.state.Total,
		Message:  l.message,
	}
	if l.last != nil {
		d := progress.Format(*l.last, l.timeLayout)
		vs.Display = &d
		vs.DeltaClass = l.last.Delta.Class
	}
	if l.state.TargetDate != nil {
		target := *l.state.TargetDate
		vs.Target = &target
	}
	return vs
}

// push sends the current view state to the TUI and redraws it.
func (l *Loop) push() {
	l.screen.SetState(l.ViewState())
	l.screen.Update()
}
