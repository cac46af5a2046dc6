package model

import "time"

// DateKeyLayout is the canonical calendar-day key used for grouping and
// caching. A plain date string avoids timezone drift when iterating ranges.
const DateKeyLayout = "2006-01-02"

// DateOnly truncates a moment to midnight of its calendar day, keeping the
// location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DateKey renders a moment as its calendar-day key.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// SameDay reports whether two moments fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// DaysBetween returns the number of whole calendar days from a to b,
// negative when b is earlier. The comparison is done on UTC-reconstructed
// dates so DST transitions cannot produce fractional days.
func DaysBetween(a, b time.Time) int {
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au) / (24 * time.Hour))
}
