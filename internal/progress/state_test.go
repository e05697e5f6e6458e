package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRunState(t *testing.T) {
	t.Parallel()

	s := NewRunState()
	require.Len(t, s.Points, 1)
	assert.Equal(t, StartLabel, s.Points[0].Label)
	require.NotNil(t, s.Points[0].Actual)
	assert.Equal(t, 0.0, *s.Points[0].Actual)
	assert.Nil(t, s.Points[0].Projected)
	assert.Nil(t, s.LastSpeed)
	assert.Nil(t, s.TargetDate)

	assert.Len(t, s.ShortID(), 8)
	assert.NotEqual(t, s.ID, NewRunState().ID)
}

func TestRunState_ShortIDKeepsShortIDs(t *testing.T) {
	t.Parallel()

	s := &RunState{ID: "abc"}
	assert.Equal(t, "abc", s.ShortID())
}

func TestRunState_Clone(t *testing.T) {
	t.Parallel()

	eta := time.Date(2026, 10, 18, 19, 0, 0, 0, time.UTC)
	s := NewRunState()
	s.LastSpeed = floatPtr(16.7)
	s.TargetDate = &eta
	s.Points = append(s.Points, Point{Label: "13:00", Actual: floatPtr(4000), Projected: floatPtr(4000)})

	c := s.Clone()
	assert.Equal(t, s, c)

	*c.LastSpeed = 1
	*c.TargetDate = eta.Add(time.Hour)
	*c.Points[1].Actual = 1
	c.Points[1].Label = "x"

	assert.Equal(t, 16.7, *s.LastSpeed)
	assert.Equal(t, eta, *s.TargetDate)
	assert.Equal(t, 4000.0, *s.Points[1].Actual)
	assert.Equal(t, "13:00", s.Points[1].Label)
}

func TestSeries_Views(t *testing.T) {
	t.Parallel()

	s := Series{
		{Label: StartLabel, Actual: floatPtr(0)},
		{Label: "13:00", Actual: floatPtr(4000), Projected: floatPtr(4000)},
		{Label: "19:00", Projected: floatPtr(10000)},
	}

	assert.Equal(t, []string{StartLabel, "13:00", "19:00"}, s.Labels())
	assert.Equal(t, []*float64{floatPtr(0), floatPtr(4000), nil}, s.Actual())
	assert.Equal(t, []*float64{nil, floatPtr(4000), floatPtr(10000)}, s.Projection())
	assert.Equal(t, 2, s.ActualCount())
	assert.Nil(t, Series(nil).Clone())
}

func TestTimeOfDay_ResolveStart(t *testing.T) {
	t.Parallel()

	nine := TimeOfDay{Hour: 9}
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"earlier today", time.Date(2026, 10, 18, 13, 0, 0, 0, time.UTC), time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)},
		{"exactly now", time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC), time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)},
		{"later today means yesterday", time.Date(2026, 10, 18, 8, 59, 0, 0, time.UTC), time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, nine.ResolveStart(tt.now))
		})
	}
}
