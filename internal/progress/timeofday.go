package progress

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is a date-less wall-clock time with minute precision.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses an "HH:MM" string such as "09:00" or "9:05".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TimeOfDay{}, fmt.Errorf("empty time of day")
	}

	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: expected HH:MM", s)
	}

	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return TimeOfDay{}, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid minute in %q", s)
	}

	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// String returns the zero-padded "HH:MM" form.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On returns the instant at this time of day on day's calendar date, in day's location.
func (t TimeOfDay) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour, t.Minute, 0, 0, day.Location())
}

// ResolveStart returns the most recent instant at this time of day that is
// not after now. A start later than now on the same date is taken to be from
// the previous day, exactly 24 hours earlier.
func (t TimeOfDay) ResolveStart(now time.Time) time.Time {
	start := t.On(now)
	if start.After(now) {
		start = start.Add(-24 * time.Hour)
	}
	return start
}
