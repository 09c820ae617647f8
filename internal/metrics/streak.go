package metrics

import (
	"slices"
	"time"

	"github.com/snapsense/snapsense-server/internal/domain"
)

// MaxStreakLookback bounds how far back CurrentStreak walks.
const MaxStreakLookback = 365

// civilDay returns t's calendar date as midnight UTC so day arithmetic is
// immune to DST shifts in t's location.
func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// indexSeries maps date keys to session counts. Later records for the same
// date replace earlier ones; unparseable dates are skipped.
func indexSeries(series []domain.DayActivity) map[string]int {
	byDate := make(map[string]int, len(series))
	for _, day := range series {
		key, ok := day.Day()
		if !ok {
			continue
		}
		byDate[key] = max(day.Sessions, 0)
	}
	return byDate
}

// CurrentStreak counts consecutive days with at least one session, ending
// today. A day missing from the series counts as zero sessions, so a quiet
// today means a streak of 0.
func CurrentStreak(series []domain.DayActivity, today time.Time) int {
	if len(series) == 0 {
		return 0
	}
	byDate := indexSeries(series)

	day := civilDay(today)
	streak := 0
	for range MaxStreakLookback {
		if byDate[day.Format(domain.DateLayout)] <= 0 {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// LongestStreak returns the longest run of consecutive active days anywhere
// in the series.
func LongestStreak(series []domain.DayActivity) int {
	byDate := indexSeries(series)

	active := make([]time.Time, 0, len(byDate))
	for key, sessions := range byDate {
		if sessions <= 0 {
			continue
		}
		d, err := time.Parse(domain.DateLayout, key)
		if err != nil {
			continue
		}
		active = append(active, d)
	}
	if len(active) == 0 {
		return 0
	}
	slices.SortFunc(active, func(a, b time.Time) int { return a.Compare(b) })

	longest, run := 1, 1
	for i := 1; i < len(active); i++ {
		if active[i-1].AddDate(0, 0, 1).Equal(active[i]) {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}
	return longest
}

// DefaultStreakSeries builds a deterministic series of days ending today
// in which only the last activeTail days have one session each. It stands
// in when a data source supplies no series.
func DefaultStreakSeries(today time.Time, days, activeTail int) []domain.DayActivity {
	if days <= 0 {
		return nil
	}
	end := civilDay(today)
	series := make([]domain.DayActivity, days)
	for i := range days {
		offset := days - 1 - i
		sessions := 0
		if offset < activeTail {
			sessions = 1
		}
		series[i] = domain.DayActivity{
			Date:     end.AddDate(0, 0, -offset).Format(domain.DateLayout),
			Sessions: sessions,
		}
	}
	return series
}
