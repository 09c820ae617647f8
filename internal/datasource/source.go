// Package datasource supplies dashboard payloads. MockSource stands in for
// the toy: it answers after an artificial delay with canned data for the
// demo children and a welcome payload for anyone else.
package datasource

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/snapsense/snapsense-server/internal/domain"
)

// Source provides dashboard data for a profile.
type Source interface {
	// Dashboard returns a renderable payload for any profile id.
	Dashboard(ctx context.Context, profileID string) (*domain.Dashboard, error)
	// Range returns the dataset for r; ok is false when none exists.
	Range(ctx context.Context, profileID string, r domain.StatsRange) (data domain.RangeData, ok bool, err error)
	// Games returns per-game statistics.
	Games(ctx context.Context, profileID string) ([]domain.GameStats, error)
	// LiveEvent produces the next live activity event for a profile.
	LiveEvent(profileID string) domain.ActivityEvent
}

// DefaultLatency is the simulated round trip to the toy.
const DefaultLatency = 350 * time.Millisecond

// StreakSeriesDays is the length of generated streak series.
const StreakSeriesDays = 35

// MockSource is an in-process Source with canned and random data.
type MockSource struct {
	latency time.Duration
	now     func() time.Time
	logger  *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand

	fixtures atomic.Pointer[Fixtures]
}

// Option configures a MockSource.
type Option func(*MockSource)

// WithLatency sets the simulated delay. Zero disables it.
func WithLatency(d time.Duration) Option {
	return func(m *MockSource) { m.latency = d }
}

// WithClock sets the time source used for timestamps and series.
func WithClock(now func() time.Time) Option {
	return func(m *MockSource) { m.now = now }
}

// WithSeed makes the random series and live events reproducible.
func WithSeed(seed uint64) Option {
	return func(m *MockSource) { m.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *MockSource) { m.logger = logger }
}

// NewMockSource creates a MockSource.
func NewMockSource(opts ...Option) *MockSource {
	m := &MockSource{
		latency: DefaultLatency,
		now:     time.Now,
		logger:  slog.New(slog.DiscardHandler),
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetFixtures replaces the active overrides. nil clears them.
func (m *MockSource) SetFixtures(f *Fixtures) {
	m.fixtures.Store(f)
}

// Dashboard implements Source. It only fails when ctx is done.
func (m *MockSource) Dashboard(ctx context.Context, profileID string) (*domain.Dashboard, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}

	if f := m.fixtures.Load(); f != nil {
		if d, ok := f.dashboard(profileID); ok {
			return d, nil
		}
	}

	now := m.now()
	d, ok := cannedDashboard(profileID, now)
	if !ok {
		d = welcomeDashboard(profileID, now)
	}
	d.Streak = m.randomSeries(now, StreakSeriesDays)
	return d, nil
}

// Range implements Source. Built-in datasets exist only for the demo children.
func (m *MockSource) Range(ctx context.Context, profileID string, r domain.StatsRange) (domain.RangeData, bool, error) {
	if err := m.wait(ctx); err != nil {
		return domain.RangeData{}, false, err
	}
	if f := m.fixtures.Load(); f != nil {
		if data, ok := f.rangeData(profileID, r); ok {
			return data, true, nil
		}
	}
	if !isDemoProfile(profileID) {
		return domain.RangeData{}, false, nil
	}
	data, ok := demoRanges()[r]
	return data, ok, nil
}

// Games implements Source.
func (m *MockSource) Games(ctx context.Context, profileID string) ([]domain.GameStats, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	if f := m.fixtures.Load(); f != nil {
		if games, ok := f.games(profileID); ok {
			return games, nil
		}
	}
	if isDemoProfile(profileID) {
		return demoGames(), nil
	}
	return emptyGames(), nil
}

// wait simulates the device round trip.
func (m *MockSource) wait(ctx context.Context) error {
	if m.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(m.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// randomSeries gives each of the last days a 75% chance of 1-3 sessions.
func (m *MockSource) randomSeries(now time.Time, days int) []domain.DayActivity {
	m.mu.Lock()
	defer m.mu.Unlock()

	series := make([]domain.DayActivity, days)
	for i := range days {
		sessions := 0
		if m.rng.Float64() > 0.25 {
			sessions = 1 + m.rng.IntN(3)
		}
		series[i] = domain.DayActivity{
			Date:     now.AddDate(0, 0, -(days - 1 - i)).Format(domain.DateLayout),
			Sessions: sessions,
		}
	}
	return series
}
