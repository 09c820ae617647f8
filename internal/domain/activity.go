package domain

import (
	"encoding/json"
	"time"
)

// DateLayout is the calendar-day format used for activity keys.
const DateLayout = time.DateOnly

// DayActivity is the number of play sessions on one calendar day.
type DayActivity struct {
	Date     string `json:"date"`
	Sessions int    `json:"sessions"`
}

// UnmarshalJSON accepts "value" as an alias for "sessions", the name the
// device payload uses for streak series.
func (d *DayActivity) UnmarshalJSON(data []byte) error {
	var raw struct {
		Date     string `json:"date"`
		Sessions *int   `json:"sessions"`
		Value    *int   `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.Date = raw.Date
	d.Sessions = 0
	switch {
	case raw.Sessions != nil:
		d.Sessions = *raw.Sessions
	case raw.Value != nil:
		d.Sessions = *raw.Value
	}
	return nil
}

// Day returns the calendar day of the record. Both YYYY-MM-DD and RFC 3339
// timestamps are accepted; timestamps resolve to the date in their own offset.
func (d DayActivity) Day() (string, bool) {
	return DateKey(d.Date)
}

// DateKey normalizes a date or timestamp string to YYYY-MM-DD.
func DateKey(s string) (string, bool) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t.Format(DateLayout), true
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.Format(DateLayout), true
	}
	return "", false
}

// ActivityEvent is one entry of the activity feed.
type ActivityEvent struct {
	ID        string    `json:"id"`
	ProfileID string    `json:"profileId,omitempty"`
	Message   string    `json:"message"`
	Module    string    `json:"module"`
	Timestamp time.Time `json:"timestamp"`
	Accuracy  float64   `json:"accuracy"`
	Exp       int       `json:"exp"`
	Live      bool      `json:"live,omitempty"`
}
