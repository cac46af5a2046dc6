package model

import (
	"errors"
	"fmt"
	"time"
)

type RecurrenceType string

const (
	RecurrenceDaily   RecurrenceType = "DAILY"
	RecurrenceWeekly  RecurrenceType = "WEEKLY"
	RecurrenceMonthly RecurrenceType = "MONTHLY"
	RecurrenceYearly  RecurrenceType = "YEARLY"
	RecurrenceCustom  RecurrenceType = "CUSTOM"
)

// DefaultNotifyAt is the notification time used when a pattern does not set one.
const DefaultNotifyAt = "09:00"

// RecurrencePattern describes how a todo repeats. It is a value type: the
// recurrence engine never mutates it, callers construct a new one to edit.
type RecurrencePattern struct {
	Type        RecurrenceType `bson:"type" json:"type" binding:"required"`
	Interval    int            `bson:"interval,omitempty" json:"interval,omitempty"`
	DaysOfWeek  []int          `bson:"days_of_week,omitempty" json:"days_of_week,omitempty"`
	DayOfMonth  int            `bson:"day_of_month,omitempty" json:"day_of_month,omitempty"`
	MonthOfYear int            `bson:"month_of_year,omitempty" json:"month_of_year,omitempty"`
	EndDate     *time.Time     `bson:"end_date,omitempty" json:"end_date,omitempty"`
	Occurrences int            `bson:"occurrences,omitempty" json:"occurrences,omitempty"`
	NotifyAt    string         `bson:"notify_at,omitempty" json:"notify_at,omitempty"`
}

// Validate checks the structural constraints on a pattern. It does not apply
// defaults; use Normalized for that.
func (p RecurrencePattern) Validate() error {
	switch p.Type {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly, RecurrenceCustom:
	default:
		return fmt.Errorf("invalid recurrence type %q", p.Type)
	}

	// Zero means unset; Normalized turns it into the default of 1.
	if p.Interval < 0 {
		return errors.New("recurrence interval cannot be negative")
	}

	seen := make(map[int]bool)
	for _, day := range p.DaysOfWeek {
		if day < 0 || day > 6 {
			return fmt.Errorf("day of week %d out of range 0-6", day)
		}
		if seen[day] {
			return fmt.Errorf("duplicate day of week %d", day)
		}
		seen[day] = true
	}

	if p.DayOfMonth != 0 && (p.DayOfMonth < 1 || p.DayOfMonth > 31) {
		return fmt.Errorf("day of month %d out of range 1-31", p.DayOfMonth)
	}

	if p.MonthOfYear != 0 && (p.MonthOfYear < 1 || p.MonthOfYear > 12) {
		return fmt.Errorf("month of year %d out of range 1-12", p.MonthOfYear)
	}

	if p.Occurrences < 0 {
		return errors.New("occurrence cap must be positive")
	}

	if p.NotifyAt != "" {
		if _, err := time.Parse("15:04", p.NotifyAt); err != nil {
			return fmt.Errorf("notify time %q is not HH:mm", p.NotifyAt)
		}
	}

	return nil
}

// Normalized returns a copy with defaults applied: interval 1 and the
// default notification time.
func (p RecurrencePattern) Normalized() RecurrencePattern {
	out := p
	if out.Interval < 1 {
		out.Interval = 1
	}
	if out.NotifyAt == "" {
		out.NotifyAt = DefaultNotifyAt
	}
	return out
}

// HasEndDate reports whether the pattern stops producing occurrences after a
// fixed calendar date.
func (p RecurrencePattern) HasEndDate() bool {
	return p.EndDate != nil && !p.EndDate.IsZero()
}
