package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thruflo/burndown/internal/progress"
)

// AssertSeriesShape checks the invariants every chart series holds: a zero
// "Start" seed, actual values everywhere but an optional trailing projection
// point, and projections only on the last actual point and that trailing point.
func AssertSeriesShape(t *testing.T, points progress.Series) {
	t.Helper()

	require.NotEmpty(t, points, "series is empty")
	assert.Equal(t, progress.StartLabel, points[0].Label, "seed label")
	require.NotNil(t, points[0].Actual, "seed has no actual value")
	assert.Equal(t, 0.0, *points[0].Actual, "seed actual value")

	last := len(points) - 1
	if points[last].Actual != nil {
		// No reading applied yet
		for i, p := range points {
			assert.Nil(t, p.Projected, "point[%d] projected without a reading", i)
		}
		return
	}

	require.GreaterOrEqual(t, last, 1, "projection point without a reading")
	assert.NotNil(t, points[last].Projected, "trailing point has no projection")
	for i, p := range points[:last] {
		assert.NotNil(t, p.Actual, "point[%d] has no actual value", i)
		if i == last-1 {
			assert.NotNil(t, p.Projected, "last actual point has no projection")
			continue
		}
		assert.Nil(t, p.Projected, "point[%d] has a stale projection", i)
	}
}

// AssertActualValues compares the recorded readings, seed excluded.
func AssertActualValues(t *testing.T, points progress.Series, expected ...float64) {
	t.Helper()

	var actual []float64
	for _, p := range points[1:] {
		if p.Actual != nil {
			actual = append(actual, *p.Actual)
		}
	}
	assert.Equal(t, expected, actual, "actual readings mismatch")
}

// AssertProjectionTail checks the label and value of the trailing projection point.
func AssertProjectionTail(t *testing.T, points progress.Series, label string, total float64) {
	t.Helper()

	require.NotEmpty(t, points)
	tail := points[len(points)-1]
	require.Nil(t, tail.Actual, "series has no projection point")
	assert.Equal(t, label, tail.Label, "projection label")
	require.NotNil(t, tail.Projected)
	assert.Equal(t, total, *tail.Projected, "projection value")
}
