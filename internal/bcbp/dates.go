package bcbp

import (
	"strconv"
	"time"
)

// ResolveDayOfYear picks the calendar date with the given day of year from
// the previous, current or next year, whichever is closest to now. The
// result is midnight UTC.
func ResolveDayOfYear(day int, now time.Time) (time.Time, bool) {
	if day < 1 || day > 366 {
		return time.Time{}, false
	}
	now = now.UTC()

	var best time.Time
	var bestDiff time.Duration
	found := false
	for _, y := range []int{now.Year(), now.Year() - 1, now.Year() + 1} {
		if day == 366 && !isLeap(y) {
			continue
		}
		t := time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day-1)
		diff := t.Sub(now)
		if diff < 0 {
			diff = -diff
		}
		if !found || diff < bestDiff {
			best, bestDiff, found = t, diff, true
		}
	}
	return best, found
}

// ResolveIssuanceDate decodes a "YDDD" issuance date (last digit of year,
// day of year) to the latest matching date that is not after now.
func ResolveIssuanceDate(s string, now time.Time) (time.Time, bool) {
	if len(s) != 4 {
		return time.Time{}, false
	}
	digit, err := strconv.Atoi(s[:1])
	if err != nil {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(s[1:])
	if err != nil || day < 1 || day > 366 {
		return time.Time{}, false
	}
	now = now.UTC()

	year := now.Year() - ((now.Year()-digit)%10+10)%10
	for i := 0; i < 3; i++ {
		if day == 366 && !isLeap(year) {
			year -= 10
			continue
		}
		t := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day-1)
		if !t.After(now) {
			return t, true
		}
		year -= 10
	}
	return time.Time{}, false
}

func isLeap(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}
