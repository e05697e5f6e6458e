package loop

import "github.com/thruflo/burndown/internal/progress"

// Readings returns the processed count of every recorded reading in points.
// The seed point and the trailing projection point are not readings.
func Readings(points progress.Series) []float64 {
	var out []float64
	for i, p := range points {
		if i == 0 && p.Label == progress.StartLabel {
			continue
		}
		if p.Actual != nil {
			out = append(out, *p.Actual)
		}
	}
	return out
}

// DetectStalled checks if the run has stopped making progress.
// A run is stalled if the processed count hasn't increased over the
// last N readings where N is the threshold.
func DetectStalled(points progress.Series, threshold int) bool {
	readings := Readings(points)
	if threshold <= 0 || len(readings) < threshold {
		return false
	}

	recent := readings[len(readings)-threshold:]
	first := recent[0]
	for _, v := range recent[1:] {
		if v > first {
			return false
		}
	}
	return true
}

// RecentRate returns the average number of units gained per reading over
// the last window readings.
func RecentRate(points progress.Series, window int) float64 {
	readings := Readings(points)
	if len(readings) < 2 || window < 2 {
		return 0
	}

	if window > len(readings) {
		window = len(readings)
	}
	recent := readings[len(readings)-window:]

	return (recent[len(recent)-1] - recent[0]) / float64(len(recent)-1)
}
