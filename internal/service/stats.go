package service

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/snapsense/snapsense-server/internal/datasource"
	"github.com/snapsense/snapsense-server/internal/domain"
	domainerrors "github.com/snapsense/snapsense-server/internal/errors"
	"github.com/snapsense/snapsense-server/internal/metrics"
)

// StatsService provides the summary tiles and per-game statistics.
type StatsService struct {
	source datasource.Source
	now    func() time.Time
	logger *slog.Logger
}

// NewStatsService creates a new stats service.
func NewStatsService(source datasource.Source, logger *slog.Logger) *StatsService {
	return &StatsService{
		source: source,
		now:    time.Now,
		logger: logger,
	}
}

// SetClock replaces the time source.
func (s *StatsService) SetClock(now func() time.Time) {
	s.now = now
}

// Range returns the tiles for one range. A range without a dataset shows
// zero tiles and is flagged as a fallback.
func (s *StatsService) Range(ctx context.Context, profileID string, r domain.StatsRange) (domain.RangeSummary, error) {
	if r == "" {
		r = domain.RangeWeek
	}
	if !r.Valid() {
		return domain.RangeSummary{}, domainerrors.Validationf("unknown range %q", r)
	}

	data, ok, err := s.source.Range(ctx, profileID, r)
	if err != nil {
		return domain.RangeSummary{}, domainerrors.Wrap(err, domainerrors.CodeUnavailable, "stats unavailable")
	}
	if !ok {
		s.logger.Debug("no dataset for range, using defaults", "profile_id", profileID, "range", r)
		summary := metrics.SummarizeRange(r, metrics.DefaultRangeData())
		summary.Fallback = true
		return summary, nil
	}
	return metrics.SummarizeRange(r, data), nil
}

// Games returns one game's view, or the aggregate for GameAll.
func (s *StatsService) Games(ctx context.Context, profileID string, game domain.GameID) (domain.GameView, error) {
	if game == "" {
		game = domain.GameAll
	}
	if !game.Valid() {
		return domain.GameView{}, domainerrors.Validationf("unknown game %q", game)
	}

	games, err := s.source.Games(ctx, profileID)
	if err != nil {
		return domain.GameView{}, domainerrors.Wrap(err, domainerrors.CodeUnavailable, "game data unavailable")
	}

	if game != domain.GameAll {
		i := slices.IndexFunc(games, func(g domain.GameStats) bool { return g.ID == game })
		if i < 0 {
			return domain.GameView{}, domainerrors.NotFoundf("no statistics for game %q", game)
		}
		return metrics.ViewGame(games[i]), nil
	}

	streak, err := s.overallStreak(ctx, profileID)
	if err != nil {
		return domain.GameView{}, err
	}
	return metrics.AggregateGames(games, streak), nil
}

// AllGames returns every per-game view.
func (s *StatsService) AllGames(ctx context.Context, profileID string) ([]domain.GameView, error) {
	games, err := s.source.Games(ctx, profileID)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeUnavailable, "game data unavailable")
	}
	views := make([]domain.GameView, len(games))
	for i, g := range games {
		views[i] = metrics.ViewGame(g)
	}
	return views, nil
}

// overallStreak is the child's current streak, or DefaultActiveDays when
// the series shows none.
func (s *StatsService) overallStreak(ctx context.Context, profileID string) (int, error) {
	d, err := s.source.Dashboard(ctx, profileID)
	if err != nil {
		return 0, domainerrors.Wrap(err, domainerrors.CodeUnavailable, "dashboard data unavailable")
	}
	if streak := metrics.CurrentStreak(d.Streak, s.now()); streak > 0 {
		return streak, nil
	}
	return DefaultActiveDays, nil
}
