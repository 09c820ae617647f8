package metrics

import "math"

// ExpPercent is progress toward the next level as a whole percentage in
// [0, 100]. A non-positive threshold yields 0.
func ExpPercent(exp, nextLevelExp int) int {
	if nextLevelExp <= 0 {
		return 0
	}
	pct := int(math.Round(float64(exp) / float64(nextLevelExp) * 100))
	return min(max(pct, 0), 100)
}

// WinRate is wins / (wins + losses), or 0 when no games were played.
func WinRate(wins, losses int) float64 {
	total := wins + losses
	if total <= 0 {
		return 0
	}
	return float64(wins) / float64(total)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
