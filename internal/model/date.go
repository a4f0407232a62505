package model

import "time"

// DayFormat is the canonical calendar-day layout used throughout.
const DayFormat = "2006-01-02"

// Day constructs a calendar day. All engine dates are normalized to
// midnight UTC so day arithmetic is exact (no DST drift).
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a "2006-01-02" string into a calendar day.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(DayFormat, s)
}

// Normalize truncates a timestamp to its calendar day.
func Normalize(t time.Time) time.Time {
	return Day(t.Year(), t.Month(), t.Day())
}

// DaysBetween returns the whole number of days from a to b (negative
// if b precedes a). Both inputs are assumed normalized.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return Day(year, month+1, 0).Day()
}

// ClampDayOfMonth returns the given day-of-month, pulled back to the
// month's last day when the month is shorter (e.g. day 31 in February).
func ClampDayOfMonth(year int, month time.Month, day int) time.Time {
	if last := DaysInMonth(year, month); day > last {
		day = last
	}
	return Day(year, month, day)
}
