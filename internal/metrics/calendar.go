package metrics

import (
	"time"

	"github.com/snapsense/snapsense-server/internal/domain"
)

// CalendarWeeks is how many whole weeks before the current one the
// calendar shows.
const CalendarWeeks = 27

// CalendarLookbackDays is the nominal window of the calendar.
const CalendarLookbackDays = CalendarWeeks * 7

// IntensityLevel buckets a session count into the calendar's five shades.
func IntensityLevel(sessions int) int {
	switch {
	case sessions <= 0:
		return 0
	case sessions == 1:
		return 1
	case sessions == 2:
		return 2
	case sessions <= 4:
		return 3
	default:
		return 4
	}
}

// mondayIndex maps time.Weekday to 0 = Monday .. 6 = Sunday.
func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// BuildCalendar lays the series out as Monday-first weeks. It starts on the
// Monday of the week containing today minus CalendarLookbackDays and runs
// through today, so the final week holds only the days elapsed so far.
func BuildCalendar(series []domain.DayActivity, today time.Time) domain.Calendar {
	byDate := indexSeries(series)

	end := civilDay(today)
	start := end.AddDate(0, 0, -CalendarLookbackDays)
	start = start.AddDate(0, 0, -mondayIndex(start.Weekday()))

	cal := domain.Calendar{
		Start: start.Format(domain.DateLayout),
		End:   end.Format(domain.DateLayout),
		Weeks: make([][]domain.CalendarDay, 0, CalendarWeeks+1),
	}

	week := make([]domain.CalendarDay, 0, 7)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := day.Format(domain.DateLayout)
		sessions := byDate[key]
		week = append(week, domain.CalendarDay{
			Date:     key,
			Sessions: sessions,
			Weekday:  mondayIndex(day.Weekday()),
			Level:    IntensityLevel(sessions),
		})
		if len(week) == 7 {
			cal.Weeks = append(cal.Weeks, week)
			week = make([]domain.CalendarDay, 0, 7)
		}
	}
	if len(week) > 0 {
		cal.Weeks = append(cal.Weeks, week)
	}
	return cal
}
