package progress

import (
	"fmt"
	"time"
)

// CountdownState describes what the countdown display should show.
type CountdownState int

const (
	CountdownNone     CountdownState = iota // no ETA yet, show nothing
	CountdownRunning                        // time remaining until ETA
	CountdownComplete                       // ETA reached
)

// CompleteText is shown once the ETA has passed.
const CompleteText = "COMPLETE"

// Countdown formats the time left until target as zero-padded HH:MM:SS.
// Hours are not wrapped into days.
func Countdown(target *time.Time, now time.Time) (string, CountdownState) {
	if target == nil {
		return "", CountdownNone
	}

	left := target.Sub(now)
	if left <= 0 {
		return CompleteText, CountdownComplete
	}

	secs := int64(left / time.Second)
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s), CountdownRunning
}
