package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCountdown(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	ptr := func(d time.Duration) *time.Time {
		ts := now.Add(d)
		return &ts
	}

	tests := []struct {
		name      string
		target    *time.Time
		wantText  string
		wantState CountdownState
	}{
		{"no target", nil, "", CountdownNone},
		{"reached", ptr(0), CompleteText, CountdownComplete},
		{"passed", ptr(-time.Minute), CompleteText, CountdownComplete},
		{"seconds", ptr(9 * time.Second), "00:00:09", CountdownRunning},
		{"sub-second floors", ptr(1500 * time.Millisecond), "00:00:01", CountdownRunning},
		{"mixed", ptr(4*time.Hour + 30*time.Minute + 5*time.Second), "04:30:05", CountdownRunning},
		{"beyond a day", ptr(27*time.Hour + 2*time.Minute), "27:02:00", CountdownRunning},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			text, state := Countdown(tt.target, now)
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.wantState, state)
		})
	}
}
