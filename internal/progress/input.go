package progress

import (
	"strconv"
	"strings"
)

// Input holds the raw text of the three form fields.
type Input struct {
	Start     string
	Total     string
	Processed string
}

// Values holds parsed form fields.
type Values struct {
	Start     TimeOfDay
	Total     int
	Processed int
}

// SkipReason says why a reading was not applied.
type SkipReason string

// Skip reasons.
const (
	SkipNone             SkipReason = ""
	SkipMissingStart     SkipReason = "missing start time"
	SkipInvalidStart     SkipReason = "invalid start time"
	SkipInvalidTotal     SkipReason = "total is not a number"
	SkipNonPositiveTotal SkipReason = "total is not positive"
	SkipInvalidProcessed SkipReason = "processed is not a number"
	SkipNoElapsedTime    SkipReason = "no elapsed time since start"
)

// Parse converts the raw fields. It reports the first field that does not
// parse; callers treat any reason other than SkipNone as a no-op.
func (in Input) Parse() (Values, SkipReason) {
	var v Values

	if strings.TrimSpace(in.Start) == "" {
		return v, SkipMissingStart
	}
	start, err := ParseTimeOfDay(in.Start)
	if err != nil {
		return v, SkipInvalidStart
	}
	v.Start = start

	total, ok := parseCount(in.Total)
	if !ok {
		return v, SkipInvalidTotal
	}
	if total <= 0 {
		return v, SkipNonPositiveTotal
	}
	v.Total = total

	processed, ok := parseCount(in.Processed)
	if !ok {
		return v, SkipInvalidProcessed
	}
	v.Processed = processed

	return v, SkipNone
}

// parseCount accepts plain integers, optionally grouped with commas or underscores.
func parseCount(s string) (int, bool) {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer(",", "", "_", "").Replace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
