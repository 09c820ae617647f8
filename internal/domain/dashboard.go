package domain

import "time"

// Rarity grades achievements and badges.
type Rarity string

// Rarity values.
const (
	RarityBronze Rarity = "bronze"
	RaritySilver Rarity = "silver"
	RarityGold   Rarity = "gold"
)

// ModuleProgress is a child's progress through one learning module.
type ModuleProgress struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Accuracy  float64 `json:"accuracy"`
	Exp       int     `json:"exp"`
	Color     string  `json:"color"`
}

// Achievement is an unlocked milestone.
type Achievement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	UnlockedAt  time.Time `json:"unlockedAt"`
	Rarity      Rarity    `json:"rarity"`
}

// Badge is a collectible trait badge.
type Badge struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Rarity      Rarity `json:"rarity"`
}

// ExpSlice is one segment of the EXP-by-module chart.
type ExpSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// SessionStats are the headline play statistics.
type SessionStats struct {
	PlaytimeMinutes       int     `json:"playtimeMinutes"`
	AverageSessionMinutes int     `json:"averageSessionMinutes"`
	WinRate               float64 `json:"winRate"`
}

// Dashboard is the payload the data source returns for a profile.
type Dashboard struct {
	ProfileID    string           `json:"profileId"`
	Level        int              `json:"level"`
	TotalExp     int              `json:"totalExp"`
	NextLevelExp int              `json:"nextLevelExp"`
	Modules      []ModuleProgress `json:"modules"`
	Achievements []Achievement    `json:"achievements"`
	Badges       []Badge          `json:"badges"`
	Streak       []DayActivity    `json:"streak"`
	Activity     []ActivityEvent  `json:"activity"`
	ExpByModule  []ExpSlice       `json:"expByModule"`
	Stats        SessionStats     `json:"stats"`
	StreakCount  int              `json:"streakCount"`
}

// ModulesCleared sums completed levels across modules.
func (d *Dashboard) ModulesCleared() int {
	n := 0
	for _, m := range d.Modules {
		n += m.Completed
	}
	return n
}

// DashboardView is a dashboard payload plus everything derived from it for display.
type DashboardView struct {
	Dashboard
	Game          GameID          `json:"game"`
	ExpPercent    int             `json:"expPercent"`
	CurrentStreak int             `json:"currentStreak"`
	LongestStreak int             `json:"longestStreak"`
	Calendar      Calendar        `json:"calendar"`
	Feed          []ActivityEvent `json:"feed"`
	GeneratedAt   time.Time       `json:"generatedAt"`
}
