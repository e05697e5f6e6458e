package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thruflo/burndown/internal/chart"
	"github.com/thruflo/burndown/internal/logging"
	"github.com/thruflo/burndown/internal/loop"
	"github.com/thruflo/burndown/internal/progress"
	"github.com/thruflo/burndown/internal/replay"
)

var replayChart string

// rateWindow is how many trailing readings the recent rate averages over.
const rateWindow = 5

var replayCmd = &cobra.Command{
	Use:   "replay FILE",
	Short: "Replay recorded samples through the calculator",
	Long: `Reads a YAML file of timed processed counts and applies them in order,
printing the speed, progress, ETA and speed change after each one.

The file looks like:

  start: "09:00"
  total: 10000
  samples:
    - at: 2026-10-18T13:00:00Z
      processed: 4000
    - at: 2026-10-18T14:00:00Z
      processed: 6000

Samples that would be ignored by the dashboard are listed as skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&replayChart, "chart", "", "write the final chart to this PNG file")
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg := currentSettings()

	file, err := replay.Load(args[0])
	if err != nil {
		return err
	}

	calc := progress.NewCalculator(cfg.Display.TimeLayout)
	steps, state := replay.Run(calc, file)

	w := cmd.OutOrStdout()
	printSteps(w, steps, cfg.Display.TimeLayout)

	applied := 0
	for _, s := range steps {
		if s.Applied() {
			applied++
		}
	}

	fmt.Fprintln(w)
	printField(w, "Run", state.ShortID())
	printField(w, "Readings", fmt.Sprintf("%d applied, %d skipped", applied, len(steps)-applied))
	if applied > 1 {
		printField(w, "Recent rate", fmt.Sprintf("%.1f units/reading", loop.RecentRate(state.Points, rateWindow)))
	}
	if loop.DetectStalled(state.Points, cfg.Display.StallReadings) {
		logging.Warn("replayed run stalled", "run", state.ShortID(), "readings", cfg.Display.StallReadings)
		printField(w, "Warning", fmt.Sprintf("no progress in the last %d readings", cfg.Display.StallReadings))
	}

	if replayChart != "" {
		opts := chart.Options{
			Title:  "Burndown " + state.ShortID(),
			Width:  cfg.Chart.Width,
			Height: cfg.Chart.Height,
		}
		if err := chart.WriteFile(replayChart, state.Points, opts); err != nil {
			return fmt.Errorf("failed to write chart: %w", err)
		}
		printField(w, "Chart", replayChart)
	}

	return nil
}

func printSteps(w io.Writer, steps []replay.Step, layout string) {
	if layout == "" {
		layout = progress.DefaultLabelLayout
	}

	headers := []string{"TIME", "PROCESSED", "SPEED", "PROGRESS", "ETA", "CHANGE"}
	rows := make([][]string, 0, len(steps))
	for _, s := range steps {
		at := s.Sample.At.Format(layout)
		if !s.Applied() {
			rows = append(rows, []string{at, s.Sample.Processed, "skipped: " + string(s.Skipped)})
			continue
		}
		d := progress.Format(s.Result, layout)
		rows = append(rows, []string{at, progress.FormatCount(s.Result.Processed), d.Speed, d.Percentage, d.ETA, d.Delta})
	}

	// Calculate column widths; a skipped row's reason spans the rest
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		if len(row) < len(headers) {
			continue
		}
		for i, cell := range row {
			widths[i] = max(widths[i], len([]rune(cell)))
		}
	}

	printRow(w, headers, widths)
	dashes := make([]string, len(headers))
	for i := range headers {
		dashes[i] = strings.Repeat("-", widths[i])
	}
	printRow(w, dashes, widths)
	for _, row := range rows {
		printRow(w, row, widths)
	}
}

func printRow(w io.Writer, cells []string, widths []int) {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		if i == len(cells)-1 {
			parts[i] = cell
			continue
		}
		pad := widths[i] - len([]rune(cell))
		parts[i] = cell + strings.Repeat(" ", max(pad, 0))
	}
	fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
}
