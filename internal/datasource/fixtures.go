package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/snapsense/snapsense-server/internal/domain"
	"github.com/snapsense/snapsense-server/internal/watcher"
)

// AnyProfile keys fixture entries that apply to every profile.
const AnyProfile = "*"

// Fixtures override the built-in mock data. Each map is keyed by profile id
// or AnyProfile; an exact id wins over AnyProfile.
//
//	{
//	  "dashboards": {"aria": {"level": 9, ...}},
//	  "ranges": {"*": {"week": {"playtimeMinutes": 30, ...}}},
//	  "games": {"dev": [{"id": "numbering", ...}]}
//	}
type Fixtures struct {
	Dashboards map[string]domain.Dashboard                       `json:"dashboards,omitempty"`
	Ranges     map[string]map[domain.StatsRange]domain.RangeData `json:"ranges,omitempty"`
	Games      map[string][]domain.GameStats                     `json:"games,omitempty"`
}

// LoadFixtures reads and validates a fixtures file.
func LoadFixtures(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- operator supplied path
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	var f Fixtures
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode fixtures %s: %w", path, err)
	}
	for profileID, ranges := range f.Ranges {
		for r := range ranges {
			if !r.Valid() {
				return nil, fmt.Errorf("fixtures: profile %q has unknown range %q", profileID, r)
			}
		}
	}
	return &f, nil
}

func lookup[V any](m map[string]V, profileID string) (V, bool) {
	if v, ok := m[profileID]; ok {
		return v, true
	}
	v, ok := m[AnyProfile]
	return v, ok
}

func (f *Fixtures) dashboard(profileID string) (*domain.Dashboard, bool) {
	d, ok := lookup(f.Dashboards, profileID)
	if !ok {
		return nil, false
	}
	d.ProfileID = profileID
	d.Modules = slices.Clone(d.Modules)
	d.Achievements = slices.Clone(d.Achievements)
	d.Badges = slices.Clone(d.Badges)
	d.Streak = slices.Clone(d.Streak)
	d.Activity = slices.Clone(d.Activity)
	d.ExpByModule = slices.Clone(d.ExpByModule)
	return &d, true
}

func (f *Fixtures) rangeData(profileID string, r domain.StatsRange) (domain.RangeData, bool) {
	if ranges, ok := f.Ranges[profileID]; ok {
		if data, ok := ranges[r]; ok {
			return data, true
		}
	}
	if ranges, ok := f.Ranges[AnyProfile]; ok {
		data, ok := ranges[r]
		return data, ok
	}
	return domain.RangeData{}, false
}

func (f *Fixtures) games(profileID string) ([]domain.GameStats, bool) {
	g, ok := lookup(f.Games, profileID)
	return slices.Clone(g), ok
}

// ReloadFixtures loads path and swaps the overrides in. On error the
// previous overrides stay active.
func (m *MockSource) ReloadFixtures(path string) error {
	f, err := LoadFixtures(path)
	if err != nil {
		return err
	}
	m.SetFixtures(f)
	m.logger.Info("dashboard fixtures loaded", "path", path,
		"dashboards", len(f.Dashboards), "ranges", len(f.Ranges), "games", len(f.Games))
	return nil
}

// WatchFixtures reloads path whenever it changes until ctx is done.
func (m *MockSource) WatchFixtures(ctx context.Context, path string) error {
	w, err := watcher.NewFile(path, 0, m.logger)
	if err != nil {
		return err
	}
	return w.Run(ctx, func() {
		if err := m.ReloadFixtures(path); err != nil {
			m.logger.Warn("fixtures reload failed, keeping previous data", slog.String("error", err.Error()))
		}
	})
}
