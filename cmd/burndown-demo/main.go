// burndown-demo is a manual test program for the live dashboard.
// Run with: go run ./cmd/burndown-demo
//
// It starts a run 30 minutes in the past and feeds a simulated processed
// count every two seconds, with occasional bursts and pauses, so that the
// speed change annotation, the countdown and the stall warning can be
// checked by eye.
//
// All dashboard keys work as in "burndown watch".
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/thruflo/burndown/internal/feed"
	"github.com/thruflo/burndown/internal/loop"
	"github.com/thruflo/burndown/internal/progress"
	"github.com/thruflo/burndown/internal/tui"
)

const (
	demoTotal    = 5000
	demoInterval = 2 * time.Second
)

func main() {
	fmt.Println("Burndown Demo - Live Dashboard Test")
	fmt.Println("===================================")
	fmt.Println()
	fmt.Println("A simulated counter will advance every few seconds.")
	fmt.Println("Press 'e' to export the chart, 'q' to quit.")
	fmt.Println()
	fmt.Println("Press Enter to start...")
	fmt.Scanln()

	res, err := runDemo()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Demo error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Demo stopped (%s) after %d readings\n", res.Reason, res.Readings)
}

func runDemo() (loop.Result, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	start := time.Now().Add(-30 * time.Minute)

	ui := tui.NewTUI(os.Stdout, tui.Options{ChartRows: 12})
	samples := make(chan feed.Sample)

	l := loop.NewLoopWithOptions(loop.LoopOptions{
		Input: progress.Input{
			Start:     start.Format("15:04"),
			Total:     strconv.Itoa(demoTotal),
			Processed: "600",
		},
		TUI:           ui,
		Notifier:      tui.NewNotifier(os.Stdout),
		Samples:       samples,
		FeedPath:      "(simulated)",
		StallReadings: 3,
	})

	// Simulate a counter that mostly advances steadily
	go func() {
		defer close(samples)
		processed := 600
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		ticker := time.NewTicker(demoInterval)
		defer ticker.Stop()

		for processed < demoTotal {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				switch n := rng.Intn(10); {
				case n < 2:
					// Paused
				case n < 4:
					processed += 150 + rng.Intn(100)
				default:
					processed += 40 + rng.Intn(40)
				}
				processed = min(processed, demoTotal)

				select {
				case samples <- feed.Sample{Raw: strconv.Itoa(processed), At: now}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	tuiErrCh := make(chan error, 1)
	go func() {
		err := ui.Run(ctx)
		cancel()
		tuiErrCh <- err
	}()

	res := l.Run(ctx)
	cancel()

	if err := <-tuiErrCh; err != nil && err != context.Canceled {
		return res, err
	}
	return res, nil
}
