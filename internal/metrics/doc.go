// Package metrics derives dashboard presentation values from raw activity
// data: the current and longest play streak, the Monday-first streak
// calendar with its intensity levels, EXP progress, win rates and the
// summary tiles for a selected time range.
//
// Every function is pure. Callers pass "today" explicitly so results are
// deterministic; calendar days are compared as civil dates in the location
// of the supplied time.
package metrics
