package recurrence

import (
	"sort"
	"time"

	"main/model"
)

// IsExpired reports whether a pattern has stopped producing occurrences as of
// the given date: either the end date has passed or the occurrence cap has
// been reached. The two conditions are independent.
func IsExpired(p model.RecurrencePattern, asOf time.Time, completedOccurrences int) bool {
	if p.Occurrences > 0 && completedOccurrences >= p.Occurrences {
		return true
	}
	if p.HasEndDate() && model.DateOnly(asOf).After(model.DateOnly(*p.EndDate)) {
		return true
	}
	return false
}

// NextOccurrence computes the next occurrence of a pattern strictly after
// from, preserving from's time of day. The second return is false when the
// series has ended, either expired already or because the candidate would
// land past the end date. That is a normal terminal state, not an error.
func NextOccurrence(p model.RecurrencePattern, from time.Time, completedOccurrences int) (time.Time, bool) {
	if IsExpired(p, from, completedOccurrences) {
		return time.Time{}, false
	}

	interval := p.Interval
	if interval < 1 {
		interval = 1
	}

	var next time.Time
	switch p.Type {
	case model.RecurrenceDaily:
		next = from.AddDate(0, 0, interval)
	case model.RecurrenceWeekly, model.RecurrenceCustom:
		next = nextByWeekday(from, p.DaysOfWeek, interval)
	case model.RecurrenceMonthly:
		next = nextMonthly(from, p.DayOfMonth, interval)
	case model.RecurrenceYearly:
		next = nextYearly(from, p.MonthOfYear, p.DayOfMonth, interval)
	default:
		// Unknown types are rejected by pattern validation before reaching
		// the engine.
		return time.Time{}, false
	}

	if p.HasEndDate() && model.DateOnly(next).After(model.DateOnly(*p.EndDate)) {
		return time.Time{}, false
	}
	return next, true
}

// NextNotificationTime computes the next occurrence and stamps the pattern's
// notification clock time onto it, zeroing seconds. False when the pattern
// carries no notification time or the series has ended. The occurrence cap is
// ignored here: notifications follow the calendar, completion counting is the
// caller's concern.
func NextNotificationTime(p model.RecurrencePattern, from time.Time) (time.Time, bool) {
	if p.NotifyAt == "" {
		return time.Time{}, false
	}
	clock, err := time.Parse("15:04", p.NotifyAt)
	if err != nil {
		return time.Time{}, false
	}

	next, ok := NextOccurrence(p, from, 0)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(next.Year(), next.Month(), next.Day(),
		clock.Hour(), clock.Minute(), 0, 0, next.Location()), true
}

// MatchesDate reports whether an arbitrary calendar date is a valid
// occurrence of the pattern. anchor is the date interval counting starts
// from, typically the todo's original due date; without it, intervals
// greater than one cannot be honored and the field check alone decides.
func MatchesDate(p model.RecurrencePattern, date time.Time, anchor *time.Time) bool {
	if p.HasEndDate() && model.DateOnly(date).After(model.DateOnly(*p.EndDate)) {
		return false
	}

	switch p.Type {
	case model.RecurrenceDaily:
	case model.RecurrenceWeekly, model.RecurrenceCustom:
		if len(p.DaysOfWeek) > 0 && !containsDay(p.DaysOfWeek, int(date.Weekday())) {
			return false
		}
	case model.RecurrenceMonthly:
		if p.DayOfMonth > 0 && date.Day() != p.DayOfMonth {
			return false
		}
	case model.RecurrenceYearly:
		if p.MonthOfYear > 0 && int(date.Month()) != p.MonthOfYear {
			return false
		}
		if p.DayOfMonth > 0 && date.Day() != p.DayOfMonth {
			return false
		}
	default:
		return false
	}

	if p.Interval <= 1 || anchor == nil {
		return true
	}

	days := model.DaysBetween(*anchor, date)
	if days < 0 {
		return false
	}

	var elapsed int
	switch p.Type {
	case model.RecurrenceDaily:
		elapsed = days
	case model.RecurrenceWeekly, model.RecurrenceCustom:
		elapsed = days / 7
	case model.RecurrenceMonthly:
		elapsed = (date.Year()-anchor.Year())*12 + int(date.Month()) - int(anchor.Month())
	case model.RecurrenceYearly:
		elapsed = date.Year() - anchor.Year()
	}
	return elapsed%p.Interval == 0
}

// OccurrencesBetween lists every calendar day in [start, end] that matches
// the pattern. Dates come back at midnight in start's location.
func OccurrencesBetween(p model.RecurrencePattern, anchor *time.Time, start, end time.Time) []time.Time {
	var out []time.Time
	for day := model.DateOnly(start); !day.After(model.DateOnly(end)); day = day.AddDate(0, 0, 1) {
		if MatchesDate(p, day, anchor) {
			out = append(out, day)
		}
	}
	return out
}

// nextByWeekday finds the next matching weekday: first a later weekday within
// the current week, otherwise the earliest weekday of the week interval weeks
// ahead. With no weekday set the pattern simply repeats every interval weeks.
func nextByWeekday(from time.Time, daysOfWeek []int, interval int) time.Time {
	if len(daysOfWeek) == 0 {
		return from.AddDate(0, 0, 7*interval)
	}

	days := append([]int(nil), daysOfWeek...)
	sort.Ints(days)

	weekday := int(from.Weekday())
	for _, d := range days {
		if d > weekday {
			return from.AddDate(0, 0, d-weekday)
		}
	}
	return from.AddDate(0, 0, 7-weekday+days[0]+(interval-1)*7)
}

// nextMonthly advances interval months from the first of from's month, then
// clamps the target day to the resulting month's length, so Jan 31 rolls to
// Feb 28/29 instead of spilling into March.
func nextMonthly(from time.Time, dayOfMonth, interval int) time.Time {
	target := dayOfMonth
	if target == 0 {
		target = from.Day()
	}

	first := time.Date(from.Year(), from.Month(), 1,
		from.Hour(), from.Minute(), from.Second(), 0, from.Location())
	adv := first.AddDate(0, interval, 0)

	day := target
	if last := daysInMonth(adv.Year(), adv.Month()); day > last {
		day = last
	}
	return time.Date(adv.Year(), adv.Month(), day,
		from.Hour(), from.Minute(), from.Second(), 0, from.Location())
}

// nextYearly lands on the target month/day interval years ahead, clamping
// Feb 29 to Feb 28 in non-leap years. When the target falls on or before
// from within that year it advances another interval.
func nextYearly(from time.Time, monthOfYear, dayOfMonth, interval int) time.Time {
	month := from.Month()
	if monthOfYear > 0 {
		month = time.Month(monthOfYear)
	}
	day := from.Day()
	if dayOfMonth > 0 {
		day = dayOfMonth
	}

	next := clampedDate(from.Year()+interval, month, day, from)
	if !next.After(from) {
		next = clampedDate(next.Year()+interval, month, day, from)
	}
	return next
}

func clampedDate(year int, month time.Month, day int, ref time.Time) time.Time {
	if last := daysInMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day,
		ref.Hour(), ref.Minute(), ref.Second(), 0, ref.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func containsDay(days []int, day int) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
