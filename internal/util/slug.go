// Package util holds small string helpers.
package util

import (
	"regexp"
	"strings"
)

var (
	wordSeparatorRe   = regexp.MustCompile(`[\s_/\\]+`)
	nonAlphanumericRe = regexp.MustCompile(`[^a-z0-9-]`)
	multipleDashRe    = regexp.MustCompile(`-+`)
)

// Slugify turns a display name into a lowercase, dash-separated token that
// is safe in file names and headers. Characters outside a-z and 0-9 are
// dropped, so the result may be empty.
//
//	"Aria"        -> "aria"
//	"Ari/a"       -> "ari-a"
//	"🐼 Mika!"    -> "mika"
func Slugify(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = wordSeparatorRe.ReplaceAllString(s, "-")
	s = nonAlphanumericRe.ReplaceAllString(s, "")
	s = multipleDashRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
