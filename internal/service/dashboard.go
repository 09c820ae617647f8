package service

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/snapsense/snapsense-server/internal/datasource"
	"github.com/snapsense/snapsense-server/internal/domain"
	domainerrors "github.com/snapsense/snapsense-server/internal/errors"
	"github.com/snapsense/snapsense-server/internal/metrics"
	"github.com/snapsense/snapsense-server/internal/sse"
)

// LiveEventsKept is how many live events are remembered per profile.
const LiveEventsKept = 15

// DefaultActiveDays is the active tail of the placeholder streak series
// and the streak shown for "all games" when the child has none.
const DefaultActiveDays = 9

// ActivityJournal stores live activity events.
type ActivityJournal interface {
	AppendActivity(ctx context.Context, ev domain.ActivityEvent, keep int) error
	RecentActivity(ctx context.Context, profileID string, limit int) ([]domain.ActivityEvent, error)
}

// EventEmitter publishes events to live clients.
type EventEmitter interface {
	Emit(event sse.Event)
}

// NoopEmitter drops every event. Used by the CLI, which has no live clients.
type NoopEmitter struct{}

// Emit implements EventEmitter.
func (NoopEmitter) Emit(sse.Event) {}

// DashboardService assembles dashboard views from the data source and the
// activity journal.
type DashboardService struct {
	source  datasource.Source
	journal ActivityJournal
	emitter EventEmitter
	now     func() time.Time
	logger  *slog.Logger
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(source datasource.Source, journal ActivityJournal, emitter EventEmitter, logger *slog.Logger) *DashboardService {
	return &DashboardService{
		source:  source,
		journal: journal,
		emitter: emitter,
		now:     time.Now,
		logger:  logger,
	}
}

// SetClock replaces the time source.
func (s *DashboardService) SetClock(now func() time.Time) {
	s.now = now
}

// Payload fetches the raw dashboard payload.
func (s *DashboardService) Payload(ctx context.Context, profileID string) (*domain.Dashboard, error) {
	d, err := s.source.Dashboard(ctx, profileID)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeUnavailable, "dashboard data unavailable")
	}
	return d, nil
}

// View builds the full dashboard for a profile. game selects which streak
// series drives the calendar; "" means all games.
func (s *DashboardService) View(ctx context.Context, profileID string, game domain.GameID) (*domain.DashboardView, error) {
	if game == "" {
		game = domain.GameAll
	}
	if !game.Valid() {
		return nil, domainerrors.Validationf("unknown game %q", game)
	}

	d, err := s.Payload(ctx, profileID)
	if err != nil {
		return nil, err
	}

	today := s.now()
	series, err := s.calendarSeries(ctx, profileID, d, game, today)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardView{
		Dashboard:     *d,
		Game:          game,
		ExpPercent:    metrics.ExpPercent(d.TotalExp, d.NextLevelExp),
		CurrentStreak: metrics.CurrentStreak(series, today),
		LongestStreak: metrics.LongestStreak(series),
		Calendar:      metrics.BuildCalendar(series, today),
		Feed:          s.feed(ctx, profileID, d.Activity),
		GeneratedAt:   today.UTC(),
	}, nil
}

// Streak returns the calendar and streaks of the combined series.
func (s *DashboardService) Streak(ctx context.Context, profileID string) (*StreakView, error) {
	view, err := s.View(ctx, profileID, domain.GameAll)
	if err != nil {
		return nil, err
	}
	return &StreakView{
		ProfileID:     profileID,
		CurrentStreak: view.CurrentStreak,
		LongestStreak: view.LongestStreak,
		Calendar:      view.Calendar,
	}, nil
}

// StreakView is the streak calendar on its own.
type StreakView struct {
	ProfileID     string          `json:"profileId"`
	CurrentStreak int             `json:"currentStreak"`
	LongestStreak int             `json:"longestStreak"`
	Calendar      domain.Calendar `json:"calendar"`
}

// calendarSeries picks the series behind the calendar. The combined
// series is used for all games, falling back to a placeholder when empty.
// A single game gets a series synthesised from its streak length.
func (s *DashboardService) calendarSeries(ctx context.Context, profileID string, d *domain.Dashboard, game domain.GameID, today time.Time) ([]domain.DayActivity, error) {
	if game == domain.GameAll {
		if len(d.Streak) > 0 {
			return d.Streak, nil
		}
		return metrics.DefaultStreakSeries(today, metrics.CalendarLookbackDays, DefaultActiveDays), nil
	}

	games, err := s.source.Games(ctx, profileID)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeUnavailable, "game data unavailable")
	}
	streakDays := 0
	if i := slices.IndexFunc(games, func(g domain.GameStats) bool { return g.ID == game }); i >= 0 {
		streakDays = games[i].StreakDays
	}
	return metrics.DefaultStreakSeries(today, metrics.CalendarLookbackDays, streakDays), nil
}

// feed merges journalled live events with the payload's events, newest
// first. Journal failures only cost the live part of the feed.
func (s *DashboardService) feed(ctx context.Context, profileID string, base []domain.ActivityEvent) []domain.ActivityEvent {
	var live []domain.ActivityEvent
	if s.journal != nil {
		var err error
		live, err = s.journal.RecentActivity(ctx, profileID, LiveEventsKept)
		if err != nil {
			s.logger.Warn("failed to read activity journal", "profile_id", profileID, "error", err)
		}
	}

	events := make([]domain.ActivityEvent, 0, len(live)+len(base))
	events = append(events, live...)
	events = append(events, base...)
	slices.SortStableFunc(events, func(a, b domain.ActivityEvent) int {
		return cmp.Compare(b.Timestamp.UnixNano(), a.Timestamp.UnixNano())
	})
	return events
}

// RecordLiveEvent journals an event and pushes it to live clients.
func (s *DashboardService) RecordLiveEvent(ctx context.Context, ev domain.ActivityEvent) error {
	if s.journal != nil {
		if err := s.journal.AppendActivity(ctx, ev, LiveEventsKept); err != nil {
			return domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to record activity")
		}
	}
	s.emitter.Emit(sse.NewActivityEvent(ev))
	return nil
}

// NextLiveEvent asks the source for the profile's next live event and
// records it.
func (s *DashboardService) NextLiveEvent(ctx context.Context, profileID string) (domain.ActivityEvent, error) {
	ev := s.source.LiveEvent(profileID)
	if err := s.RecordLiveEvent(ctx, ev); err != nil {
		return domain.ActivityEvent{}, err
	}
	s.logger.Debug("live event", "profile_id", profileID, "module", ev.Module, "exp", ev.Exp)
	return ev, nil
}

// Refresh rebuilds the combined view and pushes it to live clients.
func (s *DashboardService) Refresh(ctx context.Context, profileID string) error {
	view, err := s.View(ctx, profileID, domain.GameAll)
	if err != nil {
		return err
	}
	s.emitter.Emit(sse.NewDashboardEvent(view))
	return nil
}
