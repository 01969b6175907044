package domain

import (
	"fmt"
	"time"
)

// DateLayout is the ISO calendar date format used for every stored date key.
const DateLayout = "2006-01-02"

// FormatDate renders t as an ISO calendar date in t's own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses an ISO calendar date, rejecting anything else.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}

// DaysBefore returns the ISO date n calendar days before now, in now's location.
func DaysBefore(now time.Time, n int) string {
	return FormatDate(now.AddDate(0, 0, -n))
}

// Tomorrow returns the ISO date of the calendar day after now in loc.
func Tomorrow(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return FormatDate(now.In(loc).AddDate(0, 0, 1))
}

// Today returns the ISO date of now in loc.
func Today(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return FormatDate(now.In(loc))
}
