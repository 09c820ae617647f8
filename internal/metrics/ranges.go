package metrics

import "github.com/snapsense/snapsense-server/internal/domain"

// DefaultRangeData is shown when no dataset exists for a range: zero tiles
// with the standard categories still listed.
func DefaultRangeData() domain.RangeData {
	return domain.RangeData{
		Categories: []domain.CategoryTally{
			{Name: "First Aid"},
			{Name: "Color Mixing"},
			{Name: "Story Ordering"},
		},
	}
}

// SummarizeRange turns a range dataset into its tiles. Category win share
// is the category's fraction of all category wins.
func SummarizeRange(r domain.StatsRange, data domain.RangeData) domain.RangeSummary {
	totalCategoryWins := 0
	for _, c := range data.Categories {
		totalCategoryWins += c.Wins
	}

	categories := make([]domain.CategoryShare, 0, len(data.Categories))
	for _, c := range data.Categories {
		share := 0.0
		if totalCategoryWins > 0 {
			share = float64(c.Wins) / float64(totalCategoryWins)
		}
		categories = append(categories, domain.CategoryShare{
			CategoryTally: c,
			WinRate:       WinRate(c.Wins, c.Losses),
			WinShare:      share,
		})
	}

	return domain.RangeSummary{
		Range:             r,
		PlaytimeMinutes:   data.PlaytimeMinutes,
		AvgSessionMinutes: data.AvgSessionMinutes,
		Wins:              data.Wins,
		Losses:            data.Losses,
		WinRate:           WinRate(data.Wins, data.Losses),
		Categories:        categories,
	}
}
