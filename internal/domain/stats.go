package domain

// StatsRange selects which dataset the summary tiles show.
type StatsRange string

// StatsRange values.
const (
	RangeDay   StatsRange = "day"
	RangeWeek  StatsRange = "week"
	RangeMonth StatsRange = "month"
	RangeAll   StatsRange = "all"
)

// StatsRanges lists the ranges in display order.
var StatsRanges = []StatsRange{RangeDay, RangeWeek, RangeMonth, RangeAll}

// Valid reports whether r is a known range.
func (r StatsRange) Valid() bool {
	switch r {
	case RangeDay, RangeWeek, RangeMonth, RangeAll:
		return true
	default:
		return false
	}
}

// CategoryTally is a win/loss count for one game category.
type CategoryTally struct {
	Name   string `json:"name"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
}

// RangeData is the raw dataset behind one range's tiles.
type RangeData struct {
	PlaytimeMinutes   int             `json:"playtimeMinutes"`
	AvgSessionMinutes int             `json:"avgSessionMinutes"`
	Wins              int             `json:"wins"`
	Losses            int             `json:"losses"`
	Categories        []CategoryTally `json:"categories"`
}

// CategoryShare is a category tally with derived rates.
type CategoryShare struct {
	CategoryTally
	WinRate  float64 `json:"winRate"`
	WinShare float64 `json:"winShare"`
}

// RangeSummary holds the tiles for one range.
type RangeSummary struct {
	Range             StatsRange      `json:"range"`
	PlaytimeMinutes   int             `json:"playtimeMinutes"`
	AvgSessionMinutes int             `json:"avgSessionMinutes"`
	Wins              int             `json:"wins"`
	Losses            int             `json:"losses"`
	WinRate           float64         `json:"winRate"`
	Categories        []CategoryShare `json:"categories"`
	Fallback          bool            `json:"fallback,omitempty"`
}

// GameID identifies a game in the per-game filter.
type GameID string

// GameID values. GameAll aggregates every game.
const (
	GameAll           GameID = "all"
	GameNumbering     GameID = "numbering"
	GameFirstAid      GameID = "firstAid"
	GameStoryOrdering GameID = "storyOrdering"
)

// Valid reports whether g is a known game filter.
func (g GameID) Valid() bool {
	switch g {
	case GameAll, GameNumbering, GameFirstAid, GameStoryOrdering:
		return true
	default:
		return false
	}
}

// GameAttempt is one day of attempts in a game.
type GameAttempt struct {
	Date     string `json:"date"`
	Attempts int    `json:"attempts"`
	Correct  int    `json:"correct"`
	Accuracy int    `json:"accuracy"`
}

// TrendPoint is the accuracy of the n-th recent session.
type TrendPoint struct {
	Session  int `json:"session"`
	Accuracy int `json:"accuracy"`
}

// GameStats are the lifetime statistics of one game.
type GameStats struct {
	ID             GameID        `json:"id"`
	Name           string        `json:"name"`
	Description    string        `json:"description"`
	TotalSessions  int           `json:"totalSessions"`
	AvgAccuracy    float64       `json:"avgAccuracy"`
	AvgSessionTime float64       `json:"avgSessionTime"`
	Wins           int           `json:"wins"`
	Losses         int           `json:"losses"`
	StreakDays     int           `json:"streakDays"`
	RecentActivity []GameAttempt `json:"recentActivity,omitempty"`
	AccuracyTrend  []TrendPoint  `json:"accuracyTrend,omitempty"`
}

// GameView is a game's statistics with its win rate.
type GameView struct {
	GameStats
	WinRate   float64 `json:"winRate"`
	Aggregate bool    `json:"aggregate"`
}

// CalendarDay is one cell of the streak calendar.
type CalendarDay struct {
	Date     string `json:"date"`
	Sessions int    `json:"sessions"`
	Weekday  int    `json:"weekday"` // 0 = Monday
	Level    int    `json:"level"`   // 0-4
}

// Calendar is a Monday-first grid of weeks ending today.
type Calendar struct {
	Start string          `json:"start"`
	End   string          `json:"end"`
	Weeks [][]CalendarDay `json:"weeks"`
}
