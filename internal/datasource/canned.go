package datasource

import (
	"math"
	"time"

	"github.com/snapsense/snapsense-server/internal/domain"
)

// demoProfileIDs have canned dashboards, ranges and game stats.
var demoProfileIDs = map[string]bool{"aria": true, "dev": true, "mika": true}

func isDemoProfile(profileID string) bool {
	return demoProfileIDs[profileID]
}

func baseModules() []domain.ModuleProgress {
	return []domain.ModuleProgress{
		{ID: "first-aid", Name: "First Aid Sequencing", Completed: 7, Total: 10, Accuracy: 0.92, Exp: 540, Color: "#3b82f6"},
		{ID: "color-mix", Name: "Color Mixing", Completed: 6, Total: 9, Accuracy: 0.88, Exp: 480, Color: "#f59e0b"},
		{ID: "story-order", Name: "Story Ordering", Completed: 5, Total: 8, Accuracy: 0.9, Exp: 430, Color: "#a855f7"},
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// expSlices derives the EXP chart segments from module progress.
func expSlices(modules []domain.ModuleProgress, value func(domain.ModuleProgress) int) []domain.ExpSlice {
	out := make([]domain.ExpSlice, len(modules))
	for i, m := range modules {
		out[i] = domain.ExpSlice{Name: m.Name, Value: value(m), Color: m.Color}
	}
	return out
}

// cannedDashboard returns the demo payload for aria, dev or mika. Streak is
// left empty for the caller to fill.
func cannedDashboard(profileID string, now time.Time) (*domain.Dashboard, bool) {
	daysAgo := func(n int) time.Time { return now.Add(-time.Duration(n) * 24 * time.Hour).UTC() }
	minutesAgo := func(n int) time.Time { return now.Add(-time.Duration(n) * time.Minute).UTC() }

	switch profileID {
	case "aria":
		modules := baseModules()
		return &domain.Dashboard{
			ProfileID:    "aria",
			Level:        8,
			TotalExp:     1780,
			NextLevelExp: 2000,
			Modules:      modules,
			ExpByModule:  expSlices(modules, func(m domain.ModuleProgress) int { return m.Exp }),
			Achievements: []domain.Achievement{
				{ID: "a1", Title: "First Aid Hero", Description: "Sequenced all first-aid steps without hints", Icon: "❤️", UnlockedAt: daysAgo(2), Rarity: domain.RarityGold},
				{ID: "a2", Title: "Color Master", Description: "Mixed secondary colors in under 60s", Icon: "🎨", UnlockedAt: daysAgo(4), Rarity: domain.RaritySilver},
				{ID: "a3", Title: "Story Weaver", Description: "Ordered 3-part story flawlessly", Icon: "📖", UnlockedAt: daysAgo(7), Rarity: domain.RarityBronze},
			},
			Badges: []domain.Badge{
				{ID: "b1", Title: "Lightning Learner", Description: "Finishes steps quickly", Icon: "⚡", Rarity: domain.RarityGold},
				{ID: "b2", Title: "Curious Thinker", Description: "Asks for new levels often", Icon: "🧠", Rarity: domain.RaritySilver},
				{ID: "b3", Title: "Kind Teammate", Description: "Shares turns nicely", Icon: "🤝", Rarity: domain.RarityBronze},
			},
			Activity: []domain.ActivityEvent{
				{ID: "ev1", Message: "Completed Color Mixing Level 2 with 95% accuracy", Module: "color-mix", Timestamp: minutesAgo(45), Accuracy: 0.95, Exp: 50},
				{ID: "ev2", Message: "Finished First Aid Sequence in 68s", Module: "first-aid", Timestamp: minutesAgo(120), Accuracy: 0.91, Exp: 65},
				{ID: "ev3", Message: "Story Ordering Level 3 replayed with hints", Module: "story-order", Timestamp: minutesAgo(300), Accuracy: 0.82, Exp: 40},
			},
			Stats:       domain.SessionStats{PlaytimeMinutes: 124, AverageSessionMinutes: 18, WinRate: 0.86},
			StreakCount: 9,
		}, true

	case "dev":
		modules := baseModules()
		for i := range modules {
			modules[i].Completed -= i + 1
			modules[i].Accuracy = round2(modules[i].Accuracy - 0.03)
		}
		return &domain.Dashboard{
			ProfileID:    "dev",
			Level:        5,
			TotalExp:     940,
			NextLevelExp: 1200,
			Modules:      modules,
			ExpByModule:  expSlices(baseModules(), func(m domain.ModuleProgress) int { return m.Exp - 120 }),
			Achievements: []domain.Achievement{
				{ID: "a4", Title: "Safety Scout", Description: "Knows when to ask for help", Icon: "🛡️", UnlockedAt: daysAgo(1), Rarity: domain.RaritySilver},
			},
			Badges: []domain.Badge{
				{ID: "b4", Title: "Gentle Hands", Description: "Careful with the board", Icon: "👐", Rarity: domain.RarityBronze},
			},
			Activity: []domain.ActivityEvent{
				{ID: "ev4", Message: "Color Mixing Level 1 cleared", Module: "color-mix", Timestamp: minutesAgo(90), Accuracy: 0.89, Exp: 30},
			},
			Stats:       domain.SessionStats{PlaytimeMinutes: 72, AverageSessionMinutes: 12, WinRate: 0.78},
			StreakCount: 4,
		}, true

	case "mika":
		modules := baseModules()
		for i := range modules {
			if i > 0 {
				modules[i].Completed -= 2
			}
			modules[i].Accuracy = round2(modules[i].Accuracy + 0.02)
		}
		return &domain.Dashboard{
			ProfileID:    "mika",
			Level:        6,
			TotalExp:     1220,
			NextLevelExp: 1500,
			Modules:      modules,
			ExpByModule:  expSlices(baseModules(), func(m domain.ModuleProgress) int { return m.Exp - 60 }),
			Achievements: []domain.Achievement{
				{ID: "a5", Title: "Calm Solver", Description: "Handles retries without frustration", Icon: "🌿", UnlockedAt: daysAgo(6), Rarity: domain.RarityBronze},
			},
			Badges: []domain.Badge{
				{ID: "b5", Title: "Bright Listener", Description: "Listens to OLED prompts", Icon: "👂", Rarity: domain.RaritySilver},
			},
			Activity: []domain.ActivityEvent{
				{ID: "ev5", Message: "Story Ordering Level 2 complete", Module: "story-order", Timestamp: minutesAgo(300), Accuracy: 0.93, Exp: 55},
			},
			Stats:       domain.SessionStats{PlaytimeMinutes: 93, AverageSessionMinutes: 15, WinRate: 0.82},
			StreakCount: 6,
		}, true
	}
	return nil, false
}

// welcomeDashboard is the starting payload for a child the toy has not seen yet.
func welcomeDashboard(profileID string, now time.Time) *domain.Dashboard {
	modules := baseModules()
	return &domain.Dashboard{
		ProfileID:    profileID,
		Level:        1,
		TotalExp:     0,
		NextLevelExp: 100,
		Modules:      modules,
		ExpByModule:  expSlices(modules, func(domain.ModuleProgress) int { return 0 }),
		Achievements: []domain.Achievement{
			{ID: "welcome", Title: "Welcome Explorer!", Description: "Started your learning journey", Icon: "🎉", UnlockedAt: now.UTC(), Rarity: domain.RarityBronze},
		},
		Badges: []domain.Badge{
			{ID: "starter", Title: "Fresh Start", Description: "Begin your adventure", Icon: "🌟", Rarity: domain.RarityBronze},
		},
		Activity: []domain.ActivityEvent{
			{ID: "welcome-event", Message: "Profile created! Start playing to earn XP", Module: "color-mix", Timestamp: now.UTC(), Accuracy: 1.0, Exp: 0},
		},
		Stats:       domain.SessionStats{},
		StreakCount: 0,
	}
}
