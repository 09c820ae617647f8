package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayActivity_UnmarshalAliases(t *testing.T) {
	var days []DayActivity
	data := `[
		{"date":"2026-10-01","sessions":2},
		{"date":"2026-10-02","value":3},
		{"date":"2026-10-03","sessions":1,"value":9},
		{"date":"2026-10-04"}
	]`
	require.NoError(t, json.Unmarshal([]byte(data), &days))

	assert.Equal(t, []DayActivity{
		{Date: "2026-10-01", Sessions: 2},
		{Date: "2026-10-02", Sessions: 3},
		{Date: "2026-10-03", Sessions: 1},
		{Date: "2026-10-04", Sessions: 0},
	}, days)
}

func TestDateKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2026-10-16", "2026-10-16", true},
		{"2026-10-16T23:30:00Z", "2026-10-16", true},
		{"2026-10-16T23:30:00-07:00", "2026-10-16", true},
		{"2026-10-16T01:00:00.123+09:00", "2026-10-16", true},
		{"16/10/2026", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := DateKey(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestDashboard_ModulesCleared(t *testing.T) {
	d := Dashboard{Modules: []ModuleProgress{{Completed: 7}, {Completed: 6}, {Completed: 5}}}
	assert.Equal(t, 18, d.ModulesCleared())
}

func TestStatsRangeAndGameValid(t *testing.T) {
	for _, r := range StatsRanges {
		assert.True(t, r.Valid())
	}
	assert.False(t, StatsRange("year").Valid())
	assert.True(t, GameFirstAid.Valid())
	assert.False(t, GameID("chess").Valid())
}
