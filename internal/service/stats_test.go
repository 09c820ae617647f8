package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapsense/snapsense-server/internal/datasource"
	"github.com/snapsense/snapsense-server/internal/domain"
	domainerrors "github.com/snapsense/snapsense-server/internal/errors"
)

func newStatsService(src datasource.Source) *StatsService {
	svc := NewStatsService(src, slog.New(slog.DiscardHandler))
	svc.SetClock(func() time.Time { return testNow })
	return svc
}

func TestRange(t *testing.T) {
	svc := newStatsService(testSource())

	week, err := svc.Range(context.Background(), "aria", domain.RangeWeek)
	require.NoError(t, err)

	assert.Equal(t, domain.RangeWeek, week.Range)
	assert.Equal(t, 280, week.PlaytimeMinutes)
	assert.InDelta(t, 52.0/60.0, week.WinRate, 1e-9)
	assert.False(t, week.Fallback)
	require.Len(t, week.Categories, 3)
	assert.Equal(t, "First Aid", week.Categories[0].Name)
	assert.InDelta(t, 22.0/52.0, week.Categories[0].WinShare, 1e-9)
}

func TestRange_SwapsDatasetWholesale(t *testing.T) {
	svc := newStatsService(testSource())
	ctx := context.Background()

	day, err := svc.Range(ctx, "dev", domain.RangeDay)
	require.NoError(t, err)
	all, err := svc.Range(ctx, "dev", domain.RangeAll)
	require.NoError(t, err)

	assert.Equal(t, 45, day.PlaytimeMinutes)
	assert.Equal(t, 3840, all.PlaytimeMinutes)
	assert.Equal(t, 300, all.Categories[0].Wins)
}

func TestRange_FallbackForUnknownProfile(t *testing.T) {
	svc := newStatsService(testSource())

	got, err := svc.Range(context.Background(), "prf-new", domain.RangeMonth)
	require.NoError(t, err)

	assert.True(t, got.Fallback)
	assert.Zero(t, got.PlaytimeMinutes)
	assert.Zero(t, got.WinRate)
	require.Len(t, got.Categories, 3)
	for _, c := range got.Categories {
		assert.Zero(t, c.WinRate)
		assert.Zero(t, c.WinShare)
	}
}

func TestRange_Validation(t *testing.T) {
	svc := newStatsService(testSource())

	_, err := svc.Range(context.Background(), "aria", domain.StatsRange("year"))
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	def, err := svc.Range(context.Background(), "aria", "")
	require.NoError(t, err)
	assert.Equal(t, domain.RangeWeek, def.Range)
}

func TestGames_Single(t *testing.T) {
	svc := newStatsService(testSource())

	g, err := svc.Games(context.Background(), "aria", domain.GameNumbering)
	require.NoError(t, err)

	assert.Equal(t, "Numbering", g.Name)
	assert.False(t, g.Aggregate)
	assert.InDelta(t, 35.0/42.0, g.WinRate, 1e-9)
}

func TestGames_Aggregate(t *testing.T) {
	svc := newStatsService(seriesSource(t, []domain.DayActivity{
		{Date: "2026-10-13", Sessions: 1},
		{Date: "2026-10-14", Sessions: 2},
	}))
	// Fixtures only override dashboards; games come from the demo data.
	g, err := svc.Games(context.Background(), "aria", domain.GameAll)
	require.NoError(t, err)

	assert.True(t, g.Aggregate)
	assert.Equal(t, "All Games", g.Name)
	assert.Equal(t, 125, g.TotalSessions)
	assert.Equal(t, 103, g.Wins)
	assert.Equal(t, 22, g.Losses)
	assert.Equal(t, 82.0, g.AvgAccuracy)
	assert.Equal(t, 8.8, g.AvgSessionTime)
	assert.Equal(t, 2, g.StreakDays)
}

func TestGames_AggregateStreakFallback(t *testing.T) {
	svc := newStatsService(seriesSource(t, nil))

	g, err := svc.Games(context.Background(), "prf-new", domain.GameAll)
	require.NoError(t, err)

	assert.Equal(t, DefaultActiveDays, g.StreakDays)
	assert.Zero(t, g.TotalSessions)
	assert.Zero(t, g.WinRate)
}

func TestGames_Errors(t *testing.T) {
	svc := newStatsService(testSource())

	_, err := svc.Games(context.Background(), "aria", domain.GameID("chess"))
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	src := testSource()
	src.SetFixtures(&datasource.Fixtures{Games: map[string][]domain.GameStats{"aria": {}}})
	_, err = newStatsService(src).Games(context.Background(), "aria", domain.GameFirstAid)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestAllGames(t *testing.T) {
	svc := newStatsService(testSource())

	views, err := svc.AllGames(context.Background(), "mika")
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.InDelta(t, 38.0/45.0, views[2].WinRate, 1e-9)
}
