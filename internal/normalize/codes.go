package normalize

import (
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[^A-Za-z0-9]`)

// TrimDesignator trims padding, uppercases, and strips non-alphanumeric
// characters from an airline or airport designator.
// Returns nil if the result is empty.
func TrimDesignator(v string) *string {
	s := strings.TrimSpace(v)
	if s == "" {
		return nil
	}
	s = strings.ToUpper(s)
	s = nonAlphanumeric.ReplaceAllString(s, "")
	if s == "" {
		return nil
	}
	return &s
}

// OptString trims padding and returns nil for an empty field.
func OptString(v string) *string {
	s := strings.TrimSpace(v)
	if s == "" {
		return nil
	}
	return &s
}

// OptCode returns nil for an empty registry value, so UNKNOWN lands as NULL.
func OptCode(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
