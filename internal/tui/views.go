package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/thruflo/burndown/internal/progress"
)

// ViewState holds the data needed to render views.
type ViewState struct {
	RunID    string
	Input    progress.Input
	FeedPath string // Empty unless a counter file is watched

	// Display is nil until the first reading is applied.
	Display    *progress.Display
	DeltaClass progress.DeltaClass
	Target     *time.Time
	Points     progress.Series
	Total      int

	Message string
}

// Timers holds the text owned by the clock and countdown tickers.
type Timers struct {
	Clock          string
	Countdown      string
	CountdownState progress.CountdownState
}

// DashboardView renders the stats panel and text chart.
type DashboardView struct{}

// Render renders the dashboard to a slice of strings.
// chartRows caps the number of chart rows shown.
func (v *DashboardView) Render(state ViewState, timers Timers, width, chartRows int) []string {
	if width < 30 {
		width = 30
	}

	innerWidth := width - 4

	var content []string

	// Title line: "burndown <id>" with the clock right-aligned
	title := Style("burndown", Bold)
	if state.RunID != "" {
		title += " " + Style(state.RunID, Dim)
	}
	content = append(content, title+RightAlign(timers.Clock, innerWidth-VisualWidth(title)))

	content = append(content, fmt.Sprintf("start: %s | total: %s | processed: %s",
		fieldText(state.Input.Start),
		fieldText(state.Input.Total),
		fieldText(state.Input.Processed)))
	if state.FeedPath != "" {
		content = append(content, Style("feed: "+Truncate(state.FeedPath, innerWidth-6), Dim))
	}
	content = append(content, "")

	if state.Display == nil {
		content = append(content, Style("Waiting for the first reading...", Dim))
	} else {
		d := state.Display
		speed := fmt.Sprintf("speed: %s units/min", d.Speed)
		if d.Delta != "" {
			speed += "  " + Style(d.Delta, DeltaColor(state.DeltaClass))
		}
		content = append(content, speed)
		content = append(content, ProgressBar(d.Fill, d.Percentage, innerWidth))

		eta := fmt.Sprintf("remaining: %s | eta: %s", d.Remaining, d.ETA)
		if timers.Countdown != "" {
			eta += " | " + Style(timers.Countdown, Bold, CountdownColor(timers.CountdownState))
		}
		content = append(content, eta)
	}

	if chart := ChartLines(state.Points, state.Total, innerWidth, chartRows); len(chart) > 0 {
		content = append(content, "")
		content = append(content, chart...)
	}

	if state.Message != "" {
		content = append(content, "")
		content = append(content, Style(Truncate(state.Message, innerWidth), FgYellow))
	}

	content = append(content, "")
	content = append(content, Style("[s]tart [t]otal [p]rocessed [u]pdate [e]xport [q]uit", Dim))

	return BoxWithContent(width, content)
}

func fieldText(s string) string {
	if strings.TrimSpace(s) == "" {
		return Style("-", Dim)
	}
	return s
}

// ChartLines renders the most recent rows of the point sequence as
// horizontal bars scaled to total. Actual readings use full blocks; the
// trailing projection point is drawn dashed.
func ChartLines(points progress.Series, total, width, rows int) []string {
	if total <= 0 || rows <= 0 || len(points) == 0 {
		return nil
	}
	if len(points) > rows {
		points = points[len(points)-rows:]
	}

	labelWidth := 0
	for _, p := range points {
		labelWidth = max(labelWidth, VisualWidth(p.Label))
	}
	valueWidth := len(progress.FormatCount(total))
	for _, p := range points {
		if p.Actual != nil {
			valueWidth = max(valueWidth, len(progress.FormatCount(int(*p.Actual))))
		}
	}

	barWidth := width - labelWidth - valueWidth - 2
	if barWidth < 4 {
		return nil
	}

	lines := make([]string, 0, len(points))
	for _, p := range points {
		var bar string
		var value float64
		switch {
		case p.Actual != nil:
			value = *p.Actual
			n := Cells(value/float64(total), barWidth)
			bar = strings.Repeat(BarFull, n) + strings.Repeat(" ", barWidth-n)
		case p.Projected != nil:
			value = *p.Projected
			n := Cells(value/float64(total), barWidth)
			bar = Style(strings.Repeat(BarProjection, n), Dim) + strings.Repeat(" ", barWidth-n)
		default:
			continue
		}
		lines = append(lines, PadOrTruncate(p.Label, labelWidth)+" "+bar+" "+
			RightAlign(progress.FormatCount(int(value)), valueWidth))
	}
	return lines
}

// FormView renders the editor for one input field.
type FormView struct {
	editor *LineEditor
	field  Field
}

// NewFormView creates a FormView editing the start field.
func NewFormView() *FormView {
	return &FormView{
		editor: NewLineEditor(),
		field:  FieldStart,
	}
}

// Open starts editing field, pre-filled with its current value.
func (v *FormView) Open(field Field, value string) {
	v.field = field
	v.editor.SetText(value)
}

// Field returns the field being edited.
func (v *FormView) Field() Field {
	return v.field
}

// Editor returns the line editor for handling key events.
func (v *FormView) Editor() *LineEditor {
	return v.editor
}

// Reset clears the input buffer.
func (v *FormView) Reset() {
	v.editor.Clear()
}

// Render renders the field prompt and input line.
func (v *FormView) Render(width int) []string {
	if width < 20 {
		width = 20
	}

	innerWidth := width - 4

	var content []string

	content = append(content, Style(v.field.Label(), Bold, FgYellow))
	content = append(content, Style(v.field.Hint(), Dim))
	content = append(content, "")

	inputText := v.editor.Text()
	cursor := v.editor.Cursor()

	prompt := "> "
	maxInput := innerWidth - len(prompt)

	displayText := inputText
	cursorPos := cursor
	if len(inputText) > maxInput {
		// Scroll the input to keep cursor visible
		start := 0
		if cursor > maxInput-3 {
			start = cursor - maxInput + 3
		}
		end := min(start+maxInput, len(inputText))
		displayText = inputText[start:end]
		cursorPos = cursor - start
	}

	content = append(content, prompt+displayText)
	content = append(content, Style(strings.Repeat(" ", len(prompt)+cursorPos)+"^", FgCyan))

	content = append(content, "")
	content = append(content, Style("Press Enter to submit, Esc to cancel", Dim))

	return BoxWithContent(width, content)
}
