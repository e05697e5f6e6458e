package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/thruflo/burndown/internal/progress"
)

var (
	calcStart     string
	calcTotal     string
	calcProcessed string
	calcNow       string
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Compute speed and ETA for a single reading",
	Long: `Computes speed, completion percentage, remaining units and ETA for one
processed count, exactly as the dashboard's update action does.

A start time later than now is taken to be yesterday. Use --now to evaluate
the reading at a fixed instant instead of the current time.`,
	Example: `  burndown calc --start 09:00 --total 10000 --processed 4000
  burndown calc --start 23:30 --total 500 --processed 100 --now 2026-10-18T00:30:00Z`,
	Args: cobra.NoArgs,
	RunE: runCalc,
}

func init() {
	calcCmd.Flags().StringVar(&calcStart, "start", "", "start time of the run (HH:MM)")
	calcCmd.Flags().StringVar(&calcTotal, "total", "", "total number of units")
	calcCmd.Flags().StringVar(&calcProcessed, "processed", "", "units processed so far")
	calcCmd.Flags().StringVar(&calcNow, "now", "", "evaluate at this RFC 3339 time instead of now")
	rootCmd.AddCommand(calcCmd)
}

func runCalc(cmd *cobra.Command, args []string) error {
	cfg := currentSettings()

	now := time.Now()
	if calcNow != "" {
		t, err := time.Parse(time.RFC3339, calcNow)
		if err != nil {
			return fmt.Errorf("invalid --now: %w", err)
		}
		now = t
	}

	in := resolveInput(cfg, calcStart, calcTotal, calcProcessed)
	calc := progress.NewCalculator(cfg.Display.TimeLayout)
	state := progress.NewRunState()

	res, reason := calc.Apply(state, in, now)
	if reason != progress.SkipNone {
		return fmt.Errorf("cannot compute: %s", reason)
	}

	d := progress.Format(res, cfg.Display.TimeLayout)
	countdown, _ := progress.Countdown(res.ETA, now)
	if countdown == "" {
		countdown = "-"
	}

	w := cmd.OutOrStdout()
	printField(w, "Speed", d.Speed+" units/min")
	printField(w, "Progress", fmt.Sprintf("%s (%s of %s)", d.Percentage, progress.FormatCount(res.Processed), progress.FormatCount(res.Total)))
	printField(w, "Remaining", d.Remaining)
	printField(w, "ETA", d.ETA)
	printField(w, "Countdown", countdown)
	return nil
}
