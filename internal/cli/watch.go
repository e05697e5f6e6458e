package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/thruflo/burndown/internal/chart"
	"github.com/thruflo/burndown/internal/feed"
	"github.com/thruflo/burndown/internal/logging"
	"github.com/thruflo/burndown/internal/loop"
	"github.com/thruflo/burndown/internal/progress"
	"github.com/thruflo/burndown/internal/tui"
)

var (
	watchStart     string
	watchTotal     string
	watchProcessed string
	watchFeed      string
	watchChart     string
	watchLogFile   string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the live burndown dashboard",
	Long: `Opens a full-screen dashboard showing speed, progress, ETA, a live clock,
a countdown to the ETA and a chart of actual against projected progress.

Keys:
  s, t, p   edit the start time, total or processed count
  u         recompute from the current fields
  e         export the chart as PNG
  q, esc    quit

With --feed, the processed count is also read from a plain-text file each
time it changes. With --chart, the PNG chart is rewritten after every
reading.`,
	Example: `  burndown watch --start 09:00 --total 10000
  burndown watch --start 09:00 --total 10000 --feed ./processed.txt --chart ./burndown.png`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchStart, "start", "", "start time of the run (HH:MM)")
	watchCmd.Flags().StringVar(&watchTotal, "total", "", "total number of units")
	watchCmd.Flags().StringVar(&watchProcessed, "processed", "", "initial processed count")
	watchCmd.Flags().StringVar(&watchFeed, "feed", "", "file holding the processed count, watched for changes")
	watchCmd.Flags().StringVar(&watchChart, "chart", "", "PNG file rewritten after every reading")
	watchCmd.Flags().StringVar(&watchLogFile, "log-file", "", "write logs to this file while the dashboard is open")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := currentSettings()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Log lines would tear the full-screen display
	logOut := io.Discard
	if watchLogFile != "" {
		f, err := os.OpenFile(watchLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logging.Default().SetWriter(logOut)
	defer logging.Default().SetWriter(cmd.ErrOrStderr())

	var samples <-chan feed.Sample
	if watchFeed != "" {
		w, err := feed.NewWatcher(watchFeed)
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			return err
		}
		samples = w.Samples()
	}

	ui := tui.NewTUI(os.Stdout, tui.Options{
		ClockLayout:       cfg.Display.ClockLayout,
		ClockInterval:     cfg.Timers.ClockInterval,
		CountdownInterval: cfg.Timers.CountdownInterval,
		ChartRows:         cfg.Display.ChartRows,
	})

	l := loop.NewLoopWithOptions(loop.LoopOptions{
		Calculator:    progress.NewCalculator(cfg.Display.TimeLayout),
		Input:         resolveInput(cfg, watchStart, watchTotal, watchProcessed),
		TUI:           ui,
		Notifier:      tui.NewNotifier(os.Stdout),
		Samples:       samples,
		FeedPath:      watchFeed,
		TimeLayout:    cfg.Display.TimeLayout,
		ChartPath:     watchChart,
		Chart:         chart.Options{Width: cfg.Chart.Width, Height: cfg.Chart.Height},
		StallReadings: cfg.Display.StallReadings,
	})

	// The loop stops with the TUI, whichever way the TUI exits
	loopCtx, cancelLoop := context.WithCancel(ctx)
	defer cancelLoop()

	tuiCtx, tuiCancel := context.WithCancel(ctx)
	defer tuiCancel()

	tuiErrCh := make(chan error, 1)
	go func() {
		err := ui.Run(tuiCtx)
		cancelLoop()
		tuiErrCh <- err
	}()

	result := l.Run(loopCtx)
	logging.Info("dashboard stopped", "reason", result.Reason, "readings", result.Readings)

	tuiCancel()
	if err := <-tuiErrCh; err != nil && !errors.Is(err, context.Canceled) {
		logging.Error("dashboard failed", "error", err)
		return err
	}

	printSummary(cmd.OutOrStdout(), result, cfg.Display.TimeLayout)
	return nil
}

func printSummary(w io.Writer, result loop.Result, layout string) {
	st := result.State
	if st == nil {
		return
	}

	fmt.Fprintf(w, "Run %s stopped (%s)\n", st.ShortID(), result.Reason)
	printField(w, "Readings", fmt.Sprintf("%d", result.Readings))
	if result.Readings == 0 {
		return
	}

	eta := progress.UnknownLabel
	if st.TargetDate != nil {
		eta = st.TargetDate.Format(layout)
	}
	readings := loop.Readings(st.Points)
	printField(w, "Processed", fmt.Sprintf("%s of %s", progress.FormatCount(int(readings[len(readings)-1])), progress.FormatCount(st.Total)))
	printField(w, "ETA", eta)
}
