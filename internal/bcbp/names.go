package bcbp

import "regexp"

// BCBP names are "LAST/FIRST", where the slash and first name are optional.
var passengerNamePattern = regexp.MustCompile(`^([^/]+)/?(.*)$`)

func splitPassengerName(name string) (last, first string, ok bool) {
	m := passengerNamePattern.FindStringSubmatch(name)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}
