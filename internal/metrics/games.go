package metrics

import "github.com/snapsense/snapsense-server/internal/domain"

// ViewGame attaches the win rate to a game's statistics.
func ViewGame(g domain.GameStats) domain.GameView {
	return domain.GameView{GameStats: g, WinRate: WinRate(g.Wins, g.Losses)}
}

// AggregateGames combines per-game statistics into the "all games" view.
// Counts are summed, averages are the mean of the per-game averages rounded
// to one decimal, and the streak is the child's overall streak.
func AggregateGames(games []domain.GameStats, overallStreak int) domain.GameView {
	agg := domain.GameStats{
		ID:          domain.GameAll,
		Name:        "All Games",
		Description: "Combined statistics across all games",
		StreakDays:  overallStreak,
	}
	if len(games) > 0 {
		var accuracy, sessionTime float64
		for _, g := range games {
			agg.TotalSessions += g.TotalSessions
			agg.Wins += g.Wins
			agg.Losses += g.Losses
			accuracy += g.AvgAccuracy
			sessionTime += g.AvgSessionTime
		}
		agg.AvgAccuracy = round1(accuracy / float64(len(games)))
		agg.AvgSessionTime = round1(sessionTime / float64(len(games)))
	}

	view := ViewGame(agg)
	view.Aggregate = true
	return view
}
