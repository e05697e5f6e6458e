package tui

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/thruflo/burndown/internal/progress"
)

// View represents the current TUI view.
type View int

const (
	ViewDashboard View = iota
	ViewForm
)

// String returns the string representation of the view.
func (v View) String() string {
	switch v {
	case ViewDashboard:
		return "dashboard"
	case ViewForm:
		return "form"
	default:
		return "unknown"
	}
}

// Field identifies one of the dashboard input fields.
type Field int

const (
	FieldStart Field = iota
	FieldTotal
	FieldProcessed
)

// String returns the string representation of the field.
func (f Field) String() string {
	switch f {
	case FieldStart:
		return "start"
	case FieldTotal:
		return "total"
	case FieldProcessed:
		return "processed"
	default:
		return "unknown"
	}
}

// Label returns the form heading for the field.
func (f Field) Label() string {
	switch f {
	case FieldStart:
		return "Start time"
	case FieldTotal:
		return "Total units"
	case FieldProcessed:
		return "Units processed"
	default:
		return "Value"
	}
}

// Hint describes the expected input format.
func (f Field) Hint() string {
	switch f {
	case FieldStart:
		return "24-hour clock, HH:MM"
	case FieldTotal, FieldProcessed:
		return "whole number, separators allowed"
	default:
		return ""
	}
}

// Value returns the field's text from in.
func (f Field) Value(in progress.Input) string {
	switch f {
	case FieldStart:
		return in.Start
	case FieldTotal:
		return in.Total
	case FieldProcessed:
		return in.Processed
	default:
		return ""
	}
}

// Action represents a user action from the TUI.
type Action int

const (
	ActionNone              Action = iota
	ActionSubmitField              // User submitted a field value
	ActionUpdate                   // User requested a recompute
	ActionExport                   // User requested a chart export
	ActionQuit                     // User requested quit
	ActionCountdownComplete        // Countdown reached the ETA
)

// String returns the string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionSubmitField:
		return "submit_field"
	case ActionUpdate:
		return "update"
	case ActionExport:
		return "export"
	case ActionQuit:
		return "quit"
	case ActionCountdownComplete:
		return "countdown_complete"
	default:
		return "unknown"
	}
}

// ActionEvent is sent when the user triggers an action.
type ActionEvent struct {
	Action Action
	Field  Field  // Only set for ActionSubmitField
	Input  string // Only set for ActionSubmitField
}

// Options configures the TUI.
type Options struct {
	ClockLayout       string
	ClockInterval     time.Duration
	CountdownInterval time.Duration
	ChartRows         int

	// Now returns the current time; defaults to time.Now.
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.ClockLayout == "" {
		o.ClockLayout = "15:04:05"
	}
	if o.ClockInterval <= 0 {
		o.ClockInterval = time.Second
	}
	if o.CountdownInterval <= 0 {
		o.CountdownInterval = time.Second
	}
	if o.ChartRows <= 0 {
		o.ChartRows = 10
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// TUI manages the terminal user interface.
//
// State is replaced only through SetState. The clock and countdown tickers
// read the target from it but never modify it.
type TUI struct {
	terminal  *Terminal
	keyReader *KeyReader
	out       io.Writer
	opts      Options
	mu        sync.Mutex
	state     ViewState
	timers    Timers
	view      View
	dashboard *DashboardView
	form      *FormView
	width     int
	height    int
	running   bool
	actionCh  chan ActionEvent
}

// NewTUI creates a new TUI instance.
func NewTUI(out io.Writer, opts Options) *TUI {
	opts = opts.withDefaults()
	t := &TUI{
		terminal:  NewTerminal(out),
		out:       out,
		opts:      opts,
		view:      ViewDashboard,
		dashboard: &DashboardView{},
		form:      NewFormView(),
		width:     80,
		height:    24,
		actionCh:  make(chan ActionEvent, 10),
	}
	t.timers.Clock = opts.Now().Format(opts.ClockLayout)
	return t
}

// SetState updates the view state and the countdown derived from its target.
// A countdown that runs out between ticks is reported here, since the next
// tick would find it already complete.
func (t *TUI) SetState(state ViewState) {
	now := t.opts.Now()
	t.mu.Lock()
	t.state = state
	reached := t.refreshCountdownLocked(now)
	t.mu.Unlock()

	if reached {
		t.emit(ActionEvent{Action: ActionCountdownComplete})
	}
}

// GetState returns the current view state.
func (t *TUI) GetState() ViewState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Timers returns the current clock and countdown text.
func (t *TUI) Timers() Timers {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timers
}

// SetView switches to a different view.
func (t *TUI) SetView(v View) {
	t.mu.Lock()
	t.view = v
	t.mu.Unlock()
}

// GetView returns the current view.
func (t *TUI) GetView() View {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.view
}

// EditField switches to the form view for field, pre-filled from the
// current input.
func (t *TUI) EditField(field Field) {
	value := field.Value(t.GetState().Input)
	t.mu.Lock()
	t.form.Open(field, value)
	t.view = ViewForm
	t.mu.Unlock()
}

// Actions returns a channel that receives user actions.
func (t *TUI) Actions() <-chan ActionEvent {
	return t.actionCh
}

// Render returns the lines of the current view at the last known size.
func (t *TUI) Render() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.renderLocked()
}

func (t *TUI) renderLocked() []string {
	switch t.view {
	case ViewForm:
		return t.form.Render(t.width)
	default:
		return t.dashboard.Render(t.state, t.timers, t.width, t.opts.ChartRows)
	}
}

// Update redraws the current view.
func (t *TUI) Update() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return
	}

	if width, height, err := t.terminal.Size(); err == nil {
		t.width = width
		t.height = height
	}

	t.terminal.Clear()
	t.terminal.HideCursor()

	for _, line := range t.renderLocked() {
		t.terminal.WriteLine(line)
	}

	if t.view == ViewForm {
		t.terminal.ShowCursor()
	}
}

// Run starts the TUI event loop.
// It returns when the context is cancelled or the user quits.
func (t *TUI) Run(ctx context.Context) error {
	if err := t.terminal.EnterRaw(); err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer t.terminal.ExitRaw()
	t.terminal.EnterAltScreen()
	defer t.terminal.ExitAltScreen()
	defer t.terminal.ShowCursor()

	t.mu.Lock()
	t.running = true
	t.mu.Unlock()
	defer t.Stop()

	t.keyReader = NewKeyReader(t.terminal)

	t.tickClock(t.opts.Now())
	t.Update()

	keyCh := make(chan KeyEvent, 10)
	keyErr := make(chan error, 1)

	go func() {
		for {
			ev, err := t.keyReader.ReadKey()
			if err != nil {
				keyErr <- err
				return
			}
			select {
			case keyCh <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	clock := time.NewTicker(t.opts.ClockInterval)
	defer clock.Stop()
	countdown := time.NewTicker(t.opts.CountdownInterval)
	defer countdown.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-keyErr:
			// Reader error is usually EOF, which is expected on exit
			if err == io.EOF {
				return nil
			}
			return err

		case now := <-clock.C:
			t.tickClock(now)
			t.Update()

		case now := <-countdown.C:
			t.tickCountdown(now)
			t.Update()

		case ev := <-keyCh:
			action := t.handleKeyEvent(ev)
			t.Update()
			if action.Action != ActionNone {
				t.emit(action)
				if action.Action == ActionQuit {
					return nil
				}
			}
		}
	}
}

func (t *TUI) emit(ev ActionEvent) {
	select {
	case t.actionCh <- ev:
	default:
		// Channel full, drop event
	}
}

// tickClock refreshes the live clock.
func (t *TUI) tickClock(now time.Time) {
	t.mu.Lock()
	t.timers.Clock = now.Format(t.opts.ClockLayout)
	t.mu.Unlock()
}

// tickCountdown refreshes the countdown from the current target and reports
// the moment it first reaches COMPLETE.
func (t *TUI) tickCountdown(now time.Time) {
	t.mu.Lock()
	reached := t.refreshCountdownLocked(now)
	t.mu.Unlock()

	if reached {
		t.emit(ActionEvent{Action: ActionCountdownComplete})
	}
}

// refreshCountdownLocked recomputes the countdown and reports a change from
// running to complete. Callers hold t.mu.
func (t *TUI) refreshCountdownLocked(now time.Time) bool {
	prev := t.timers.CountdownState
	t.timers.Countdown, t.timers.CountdownState = progress.Countdown(t.state.Target, now)
	return prev == progress.CountdownRunning && t.timers.CountdownState == progress.CountdownComplete
}

// handleKeyEvent processes a key event and returns any triggered action.
func (t *TUI) handleKeyEvent(ev KeyEvent) ActionEvent {
	if t.GetView() == ViewForm {
		return t.handleFormKey(ev)
	}

	switch ParseShortcut(ev) {
	case ShortcutStart:
		t.EditField(FieldStart)
	case ShortcutTotal:
		t.EditField(FieldTotal)
	case ShortcutProcessed:
		t.EditField(FieldProcessed)
	case ShortcutUpdate:
		return ActionEvent{Action: ActionUpdate}
	case ShortcutExport:
		return ActionEvent{Action: ActionExport}
	case ShortcutQuit:
		return ActionEvent{Action: ActionQuit}
	}

	return ActionEvent{Action: ActionNone}
}

// handleFormKey processes a key event in the form view.
func (t *TUI) handleFormKey(ev KeyEvent) ActionEvent {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch ev.Key {
	case KeyEscape:
		t.view = ViewDashboard
		t.form.Reset()
		return ActionEvent{Action: ActionNone}
	case KeyCtrlC, KeyCtrlD:
		return ActionEvent{Action: ActionQuit}
	}

	if !t.form.Editor().HandleKey(ev) {
		return ActionEvent{Action: ActionNone}
	}

	field := t.form.Field()
	value := t.form.Editor().Text()
	t.view = ViewDashboard
	t.form.Reset()
	return ActionEvent{Action: ActionSubmitField, Field: field, Input: value}
}

// Stop signals the TUI to stop running.
// This is a no-op if the TUI is not running.
func (t *TUI) Stop() {
	t.mu.Lock()
	t.running = false
	t.mu.Unlock()
}

// IsRunning returns whether the TUI is currently running.
func (t *TUI) IsRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Bell sounds the terminal bell.
func (t *TUI) Bell() {
	t.terminal.RingBell()
}
