package normalize

import (
	"regexp"
	"strings"
)

var multiSpace = regexp.MustCompile(`\s+`)

// NormalizeName uppercases, collapses whitespace, and trims a passenger
// name field. Returns "" for a blank name.
func NormalizeName(v string) string {
	s := strings.TrimSpace(v)
	if s == "" {
		return ""
	}
	s = strings.ToUpper(s)
	return multiSpace.ReplaceAllString(s, " ")
}
