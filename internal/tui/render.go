package tui

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/thruflo/burndown/internal/progress"
)

// Box drawing characters (Unicode)
const (
	BoxTopLeft     = "┌"
	BoxTopRight    = "┐"
	BoxBottomLeft  = "└"
	BoxBottomRight = "┘"
	BoxHorizontal  = "─"
	BoxVertical    = "│"
)

// Bar glyphs for the progress bar and text chart.
const (
	BarFull       = "█"
	BarEmpty      = "░"
	BarProjection = "┄"
)

var ansiPattern = regexp.MustCompile("\033\\[[0-9;?]*[A-Za-z]")

// StripAnsi removes ANSI escape sequences from s.
func StripAnsi(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// VisualWidth returns the number of runes in s, ignoring ANSI escape sequences.
func VisualWidth(s string) int {
	return utf8.RuneCountInString(StripAnsi(s))
}

// BoxWithContent draws a box containing the given content lines.
// Each line is padded/truncated to fit within the box.
func BoxWithContent(width int, content []string) []string {
	if width < 4 {
		return nil
	}

	innerWidth := width - 4 // Account for borders and padding
	lines := make([]string, 0, len(content)+2)

	lines = append(lines, BoxTopLeft+strings.Repeat(BoxHorizontal, width-2)+BoxTopRight)
	for _, line := range content {
		lines = append(lines, BoxVertical+" "+PadOrTruncate(line, innerWidth)+" "+BoxVertical)
	}
	lines = append(lines, BoxBottomLeft+strings.Repeat(BoxHorizontal, width-2)+BoxBottomRight)

	return lines
}

// PadOrTruncate pads or truncates a string to exactly width visible characters.
// Styled strings are padded by their visible width; a styled string that is
// too long loses its styling when truncated.
func PadOrTruncate(s string, width int) string {
	if width <= 0 {
		return ""
	}

	visible := VisualWidth(s)
	if visible == width {
		return s
	}
	if visible < width {
		return s + strings.Repeat(" ", width-visible)
	}

	return Truncate(StripAnsi(s), width)
}

// Truncate truncates a string to max width, adding ellipsis if needed.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= width {
		return s
	}

	if width >= 3 {
		return string(runes[:width-3]) + "..."
	}
	return string(runes[:width])
}

// RightAlign right-aligns text within the given width.
func RightAlign(s string, width int) string {
	visible := VisualWidth(s)
	if visible >= width {
		return PadOrTruncate(s, width)
	}
	return strings.Repeat(" ", width-visible) + s
}

// ProgressBar renders a bar of the given total width, filled to fill
// (clamped to [0, 1]), followed by label.
// Returns a string like "[████░░░░░░░░] 33.3%".
func ProgressBar(fill float64, label string, width int) string {
	barWidth := width - 3 - VisualWidth(label) // "[", "]" and the space
	if barWidth < 4 {
		return label
	}

	filled := Cells(fill, barWidth)
	return "[" +
		strings.Repeat(BarFull, filled) +
		strings.Repeat(BarEmpty, barWidth-filled) +
		"] " + label
}

// Cells converts a fraction into a whole number of cells out of width.
func Cells(fraction float64, width int) int {
	if math.IsNaN(fraction) || fraction <= 0 || width <= 0 {
		return 0
	}
	if fraction >= 1 {
		return width
	}
	return int(fraction * float64(width))
}

// Style applies ANSI style codes to text.
func Style(s string, codes ...string) string {
	if len(codes) == 0 || s == "" {
		return s
	}
	return strings.Join(codes, "") + s + Reset
}

// DeltaColor returns the color code for a speed delta annotation.
func DeltaColor(c progress.DeltaClass) string {
	switch c {
	case progress.DeltaFaster:
		return FgGreen
	case progress.DeltaSlower:
		return FgRed
	case progress.DeltaStable:
		return FgBrightBlack
	default:
		return ""
	}
}

// CountdownColor returns the color code for the countdown display.
func CountdownColor(s progress.CountdownState) string {
	switch s {
	case progress.CountdownComplete:
		return FgBrightGreen
	case progress.CountdownRunning:
		return FgCyan
	default:
		return ""
	}
}
