package progress

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Display is a Result rendered to text for the dashboard.
type Display struct {
	Speed      string  // units/min, one decimal
	Percentage string  // one decimal with "%"
	Fill       float64 // progress bar fill in [0, 1]
	Remaining  string  // grouped thousands
	ETA        string  // clock time, UnknownLabel when not computable
	Delta      string  // empty before the second reading
}

var printer = message.NewPrinter(language.English)

// Format renders r for display, using layout for the ETA clock time.
func Format(r Result, layout string) Display {
	if layout == "" {
		layout = DefaultLabelLayout
	}

	d := Display{
		Speed:      fmt.Sprintf("%.1f", r.Speed),
		Percentage: fmt.Sprintf("%.1f%%", r.Percentage),
		Fill:       fill(r.Percentage),
		Remaining:  FormatCount(r.Remaining),
		ETA:        UnknownLabel,
		Delta:      FormatDelta(r.Delta),
	}
	if r.ETA != nil {
		d.ETA = r.ETA.Format(layout)
	}
	return d
}

// FormatDelta renders a speed delta annotation such as "↑ 2.50 faster".
func FormatDelta(d SpeedDelta) string {
	switch d.Class {
	case DeltaFaster:
		return fmt.Sprintf("↑ %.2f faster", d.Magnitude)
	case DeltaSlower:
		return fmt.Sprintf("↓ %.2f slower", math.Abs(d.Magnitude))
	case DeltaStable:
		return "Stable"
	default:
		return ""
	}
}

// FormatCount renders n with grouped thousands.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

func fill(pct float64) float64 {
	switch {
	case math.IsNaN(pct) || pct <= 0:
		return 0
	case pct >= 100:
		return 1
	default:
		return pct / 100
	}
}
