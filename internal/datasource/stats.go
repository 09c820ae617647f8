package datasource

import "github.com/snapsense/snapsense-server/internal/domain"

func tallies(firstAid, colorMixing, storyOrdering [2]int) []domain.CategoryTally {
	return []domain.CategoryTally{
		{Name: "First Aid", Wins: firstAid[0], Losses: firstAid[1]},
		{Name: "Color Mixing", Wins: colorMixing[0], Losses: colorMixing[1]},
		{Name: "Story Ordering", Wins: storyOrdering[0], Losses: storyOrdering[1]},
	}
}

// demoRanges are the summary datasets shown for the demo children.
func demoRanges() map[domain.StatsRange]domain.RangeData {
	return map[domain.StatsRange]domain.RangeData{
		domain.RangeDay: {
			PlaytimeMinutes: 45, AvgSessionMinutes: 15, Wins: 8, Losses: 2,
			Categories: tallies([2]int{4, 0}, [2]int{2, 1}, [2]int{2, 1}),
		},
		domain.RangeWeek: {
			PlaytimeMinutes: 280, AvgSessionMinutes: 16, Wins: 52, Losses: 8,
			Categories: tallies([2]int{22, 2}, [2]int{18, 3}, [2]int{12, 3}),
		},
		domain.RangeMonth: {
			PlaytimeMinutes: 1240, AvgSessionMinutes: 17, Wins: 195, Losses: 35,
			Categories: tallies([2]int{85, 10}, [2]int{72, 15}, [2]int{38, 10}),
		},
		domain.RangeAll: {
			PlaytimeMinutes: 3840, AvgSessionMinutes: 18, Wins: 670, Losses: 95,
			Categories: tallies([2]int{300, 30}, [2]int{250, 45}, [2]int{120, 20}),
		},
	}
}

func attempts(rows ...[4]int) []domain.GameAttempt {
	dates := []string{"2025-12-27", "2025-12-26", "2025-12-25", "2025-12-24", "2025-12-23"}
	out := make([]domain.GameAttempt, len(rows))
	for i, r := range rows {
		out[i] = domain.GameAttempt{Date: dates[i], Attempts: r[0], Correct: r[1], Accuracy: r[2]}
	}
	return out
}

func trend(values ...int) []domain.TrendPoint {
	out := make([]domain.TrendPoint, len(values))
	for i, v := range values {
		out[i] = domain.TrendPoint{Session: i + 1, Accuracy: v}
	}
	return out
}

// demoGames are the per-game statistics for the demo children.
func demoGames() []domain.GameStats {
	return []domain.GameStats{
		{
			ID: domain.GameNumbering, Name: "Numbering",
			Description:   "Number sequencing and ordering system",
			TotalSessions: 42, AvgAccuracy: 82.5, AvgSessionTime: 8.5,
			Wins: 35, Losses: 7, StreakDays: 5,
			RecentActivity: attempts([4]int{5, 4, 80}, [4]int{6, 5, 83}, [4]int{4, 3, 75}, [4]int{5, 4, 80}, [4]int{6, 5, 83}),
			AccuracyTrend:  trend(65, 72, 68, 75, 78, 80, 82, 85),
		},
		{
			ID: domain.GameFirstAid, Name: "First Aid",
			Description:   "First Aid sequencing and emergency response",
			TotalSessions: 38, AvgAccuracy: 78.3, AvgSessionTime: 10.2,
			Wins: 30, Losses: 8, StreakDays: 3,
			RecentActivity: attempts([4]int{6, 5, 83}, [4]int{5, 4, 80}, [4]int{7, 5, 71}, [4]int{5, 4, 80}, [4]int{6, 5, 83}),
			AccuracyTrend:  trend(60, 68, 65, 72, 75, 78, 80, 78),
		},
		{
			ID: domain.GameStoryOrdering, Name: "Story Ordering",
			Description:   "Story sequencing and narrative comprehension",
			TotalSessions: 45, AvgAccuracy: 85.2, AvgSessionTime: 7.8,
			Wins: 38, Losses: 7, StreakDays: 7,
			RecentActivity: attempts([4]int{4, 4, 100}, [4]int{5, 4, 80}, [4]int{5, 4, 80}, [4]int{4, 4, 100}, [4]int{5, 4, 80}),
			AccuracyTrend:  trend(70, 78, 82, 80, 85, 88, 85, 90),
		},
	}
}

// emptyGames lists every game with no play yet.
func emptyGames() []domain.GameStats {
	games := demoGames()
	for i := range games {
		games[i] = domain.GameStats{ID: games[i].ID, Name: games[i].Name, Description: games[i].Description}
	}
	return games
}
