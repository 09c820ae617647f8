package datasource

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapsense/snapsense-server/internal/domain"
)

const fixturesJSON = `{
  "dashboards": {
    "aria": {"level": 9, "totalExp": 2100, "nextLevelExp": 2500, "streak": [{"date": "2026-10-14", "value": 2}]}
  },
  "ranges": {
    "*": {"day": {"playtimeMinutes": 5, "wins": 1, "losses": 1}},
    "dev": {"week": {"playtimeMinutes": 99}}
  },
  "games": {
    "*": [{"id": "numbering", "name": "Numbering", "wins": 1, "losses": 3}]
  }
}`

func writeFixtures(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixtures.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFixtures_Override(t *testing.T) {
	src := newTestSource()
	require.NoError(t, src.ReloadFixtures(writeFixtures(t, fixturesJSON)))
	ctx := context.Background()

	aria, err := src.Dashboard(ctx, "aria")
	require.NoError(t, err)
	assert.Equal(t, 9, aria.Level)
	assert.Equal(t, []domain.DayActivity{{Date: "2026-10-14", Sessions: 2}}, aria.Streak)

	// Profiles without an override keep the built-in data.
	dev, err := src.Dashboard(ctx, "dev")
	require.NoError(t, err)
	assert.Equal(t, 5, dev.Level)

	day, ok, err := src.Range(ctx, "prf-new", domain.RangeDay)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 5, day.PlaytimeMinutes)

	week, ok, err := src.Range(ctx, "dev", domain.RangeWeek)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 99, week.PlaytimeMinutes)

	games, err := src.Games(ctx, "mika")
	require.NoError(t, err)
	assert.Len(t, games, 1)
}

func TestFixtures_DashboardIsCopied(t *testing.T) {
	src := newTestSource()
	require.NoError(t, src.ReloadFixtures(writeFixtures(t, fixturesJSON)))

	first, err := src.Dashboard(context.Background(), "aria")
	require.NoError(t, err)
	first.Streak[0].Sessions = 100

	second, err := src.Dashboard(context.Background(), "aria")
	require.NoError(t, err)
	assert.Equal(t, 2, second.Streak[0].Sessions)
}

func TestLoadFixtures_Errors(t *testing.T) {
	_, err := LoadFixtures(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = LoadFixtures(writeFixtures(t, `{not json`))
	assert.Error(t, err)

	_, err = LoadFixtures(writeFixtures(t, `{"ranges": {"*": {"year": {}}}}`))
	assert.ErrorContains(t, err, "unknown range")
}

func TestReloadFixtures_KeepsPreviousOnError(t *testing.T) {
	src := newTestSource()
	path := writeFixtures(t, fixturesJSON)
	require.NoError(t, src.ReloadFixtures(path))

	require.NoError(t, os.WriteFile(path, []byte(`broken`), 0o600))
	assert.Error(t, src.ReloadFixtures(path))

	aria, err := src.Dashboard(context.Background(), "aria")
	require.NoError(t, err)
	assert.Equal(t, 9, aria.Level)
}

func TestWatchFixtures_ReloadsOnChange(t *testing.T) {
	src := newTestSource()
	path := writeFixtures(t, `{}`)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = src.WatchFixtures(ctx, path) }()

	// Give the watcher a moment to register before writing.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(fixturesJSON), 0o600))

	require.Eventually(t, func() bool {
		d, err := src.Dashboard(context.Background(), "aria")
		return err == nil && d.Level == 9
	}, 3*time.Second, 20*time.Millisecond)
}
