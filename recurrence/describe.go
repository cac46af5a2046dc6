package recurrence

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"main/model"
)

// The codec recognizes the phrases users actually type: plain "daily",
// "every 3 weeks", weekday lists like "every mon, wed and fri", and
// "every month on the 15th". Anything else is simply not a recurrence
// description and parses to nil so the caller can fall back to structured
// input.

var (
	everyNUnitsRe = regexp.MustCompile(`^every (\d+) (day|week|month|year)s?$`)
	monthOnDayRe  = regexp.MustCompile(`^every month on the (\d+)(?:st|nd|rd|th)?$`)
)

var weekdayNames = map[string]int{
	"sunday": 0, "sun": 0,
	"monday": 1, "mon": 1,
	"tuesday": 2, "tue": 2,
	"wednesday": 3, "wed": 3,
	"thursday": 4, "thu": 4,
	"friday": 5, "fri": 5,
	"saturday": 6, "sat": 6,
}

// ParseDescription turns a natural-language phrase into a pattern. Matching
// is case-insensitive and whitespace-tolerant. Returns nil for anything
// unrecognized, including a day of month outside 1-31.
func ParseDescription(text string) *model.RecurrencePattern {
	phrase := strings.ToLower(strings.TrimSpace(text))
	phrase = strings.Join(strings.Fields(phrase), " ")
	if phrase == "" {
		return nil
	}

	switch phrase {
	case "daily", "every day":
		return newPattern(model.RecurrenceDaily, 1)
	case "weekly", "every week":
		return newPattern(model.RecurrenceWeekly, 1)
	case "monthly", "every month":
		return newPattern(model.RecurrenceMonthly, 1)
	case "yearly", "every year":
		return newPattern(model.RecurrenceYearly, 1)
	}

	if m := monthOnDayRe.FindStringSubmatch(phrase); m != nil {
		day, _ := strconv.Atoi(m[1])
		if day < 1 || day > 31 {
			return nil
		}
		p := newPattern(model.RecurrenceMonthly, 1)
		p.DayOfMonth = day
		return p
	}

	if m := everyNUnitsRe.FindStringSubmatch(phrase); m != nil {
		n, _ := strconv.Atoi(m[1])
		if n < 1 {
			return nil
		}
		switch m[2] {
		case "day":
			return newPattern(model.RecurrenceDaily, n)
		case "week":
			return newPattern(model.RecurrenceWeekly, n)
		case "month":
			return newPattern(model.RecurrenceMonthly, n)
		case "year":
			return newPattern(model.RecurrenceYearly, n)
		}
	}

	if days, ok := parseWeekdayList(phrase); ok {
		p := newPattern(model.RecurrenceWeekly, 1)
		p.DaysOfWeek = days
		return p
	}

	return nil
}

// FormatPattern renders a pattern back to prose, the inverse of
// ParseDescription. An interval of one drops the "Every N" prefix.
func FormatPattern(p model.RecurrencePattern) string {
	interval := p.Interval
	if interval < 1 {
		interval = 1
	}

	switch p.Type {
	case model.RecurrenceDaily:
		if interval == 1 {
			return "Daily"
		}
		return fmt.Sprintf("Every %d days", interval)

	case model.RecurrenceWeekly:
		days := weekdayAbbrevs(p.DaysOfWeek)
		switch {
		case days != "" && interval == 1:
			return "Weekly on " + days
		case days != "":
			return fmt.Sprintf("Every %d weeks on %s", interval, days)
		case interval == 1:
			return "Weekly"
		default:
			return fmt.Sprintf("Every %d weeks", interval)
		}

	case model.RecurrenceMonthly:
		base := "Monthly"
		if interval > 1 {
			base = fmt.Sprintf("Every %d months", interval)
		}
		if p.DayOfMonth > 0 {
			return fmt.Sprintf("%s on the %s", base, ordinal(p.DayOfMonth))
		}
		return base

	case model.RecurrenceYearly:
		base := "Yearly"
		if interval > 1 {
			base = fmt.Sprintf("Every %d years", interval)
		}
		if p.MonthOfYear > 0 && p.DayOfMonth > 0 {
			return fmt.Sprintf("%s on %s %d", base,
				time.Month(p.MonthOfYear).String()[:3], p.DayOfMonth)
		}
		return base

	case model.RecurrenceCustom:
		out := "Custom"
		if days := weekdayAbbrevs(p.DaysOfWeek); days != "" {
			out += ": " + days
		}
		if interval > 1 {
			out += fmt.Sprintf(" every %d weeks", interval)
		}
		return out
	}

	return string(p.Type)
}

func newPattern(t model.RecurrenceType, interval int) *model.RecurrencePattern {
	return &model.RecurrencePattern{
		Type:     t,
		Interval: interval,
		NotifyAt: model.DefaultNotifyAt,
	}
}

// parseWeekdayList handles "every mon, wed and fri" style phrases. Every
// token after "every" must name a weekday, full or 3-letter; the result is
// de-duplicated and sorted ascending.
func parseWeekdayList(phrase string) ([]int, bool) {
	rest, found := strings.CutPrefix(phrase, "every ")
	if !found {
		return nil, false
	}

	rest = strings.ReplaceAll(rest, ",", " ")
	rest = strings.ReplaceAll(rest, " and ", " ")

	seen := make(map[int]bool)
	var days []int
	for _, token := range strings.Fields(rest) {
		day, ok := weekdayNames[token]
		if !ok {
			return nil, false
		}
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	if len(days) == 0 {
		return nil, false
	}
	sort.Ints(days)
	return days, true
}

func weekdayAbbrevs(days []int) string {
	if len(days) == 0 {
		return ""
	}
	names := make([]string, 0, len(days))
	for _, d := range days {
		if d < 0 || d > 6 {
			continue
		}
		names = append(names, time.Weekday(d).String()[:3])
	}
	return strings.Join(names, ", ")
}

// ordinal renders 1 -> "1st", 22 -> "22nd", 13 -> "13th". The teens always
// take "th" regardless of their last digit.
func ordinal(n int) string {
	suffix := "th"
	if (n/10)%10 != 1 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
