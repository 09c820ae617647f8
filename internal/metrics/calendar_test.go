package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapsense/snapsense-server/internal/domain"
)

func TestIntensityLevel(t *testing.T) {
	in := []int{0, 1, 2, 3, 4, 5, 9, -1}
	want := []int{0, 1, 2, 3, 3, 4, 4, 0}
	for i := range in {
		assert.Equal(t, want[i], IntensityLevel(in[i]), "sessions=%d", in[i])
	}
}

func TestBuildCalendar_Shape(t *testing.T) {
	cal := BuildCalendar(nil, today)

	require.Len(t, cal.Weeks, 28)
	assert.Equal(t, "2026-04-06", cal.Start)
	assert.Equal(t, "2026-10-14", cal.End)

	for _, week := range cal.Weeks[:27] {
		require.Len(t, week, 7)
		for i, d := range week {
			assert.Equal(t, i, d.Weekday)
		}
	}
	last := cal.Weeks[27]
	require.Len(t, last, 3)
	assert.Equal(t, "2026-10-14", last[2].Date)
	assert.Equal(t, 2, last[2].Weekday)
}

func TestBuildCalendar_SundayHasFullWeeks(t *testing.T) {
	sunday := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	cal := BuildCalendar(nil, sunday)

	require.Len(t, cal.Weeks, 28)
	for _, week := range cal.Weeks {
		assert.Len(t, week, 7)
	}
	assert.Equal(t, 6, cal.Weeks[27][6].Weekday)
}

func TestBuildCalendar_EmptySeriesAllZero(t *testing.T) {
	cal := BuildCalendar(nil, today)
	for _, week := range cal.Weeks {
		for _, d := range week {
			assert.Zero(t, d.Sessions)
			assert.Zero(t, d.Level)
		}
	}
}

func TestBuildCalendar_Levels(t *testing.T) {
	series := []domain.DayActivity{day(0, 5), day(1, 3), day(2, 1), {Date: "garbage", Sessions: 4}}
	cal := BuildCalendar(series, today)

	last := cal.Weeks[len(cal.Weeks)-1]
	assert.Equal(t, []int{1, 3, 4}, []int{last[0].Level, last[1].Level, last[2].Level})
	assert.Equal(t, 5, last[2].Sessions)
}

func TestBuildCalendar_Deterministic(t *testing.T) {
	series := DefaultStreakSeries(today, 189, 9)
	assert.Equal(t, BuildCalendar(series, today), BuildCalendar(series, today))
}
