package usecase

import (
	"context"
	"math"
	"sort"
	"time"

	"main/model"
	"main/utils"
)

// StatsCache stores computed analytics between completion writes. Optional.
type StatsCache interface {
	Get(ctx context.Context, userID string, start, end time.Time) (*model.RecurringStats, bool)
	Set(ctx context.Context, userID string, start, end time.Time, stats *model.RecurringStats) error
	Invalidate(ctx context.Context, userID string) error
}

type AnalyticsService struct {
	todos       TodoStore
	completions CompletionStore
	cache       StatsCache
}

func NewAnalyticsService(todos TodoStore, completions CompletionStore, cache StatsCache) *AnalyticsService {
	return &AnalyticsService{todos: todos, completions: completions, cache: cache}
}

// streakLookback bounds how far back the streak query reaches. A streak
// longer than a year is still reported correctly up to this window.
const streakLookback = 366

// RecurringStats aggregates a user's recurring history over [start, end]:
// totals, completion rate, current streak, and a dense per-day breakdown.
func (svc *AnalyticsService) RecurringStats(ctx context.Context, userID string, start, end, now time.Time) (*model.RecurringStats, error) {
	if svc.cache != nil {
		if cached, ok := svc.cache.Get(ctx, userID, start, end); ok {
			return cached, nil
		}
	}

	records, err := svc.completions.ListInRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	recurringDone := make(map[string]int)
	recurringMissed := make(map[string]int)
	stats := &model.RecurringStats{}

	for _, rec := range records {
		day := model.DateKey(rec.ScheduledDate)
		switch rec.Status(now) {
		case model.OccurrenceCompleted:
			stats.TotalCompleted++
			recurringDone[day]++
		case model.OccurrenceMissed:
			stats.TotalMissed++
			recurringMissed[day]++
		case model.OccurrencePending:
			stats.Pending++
		}
	}

	regular := make(map[string]int)
	regularTodos, err := svc.todos.ListCompletedRegular(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	for _, todo := range regularTodos {
		regular[model.DateKey(todo.UpdatedAt)]++
	}

	stats.CompletionRate = CompletionRate(stats.TotalCompleted, stats.TotalMissed)
	stats.Breakdown = DailyBreakdown(start, end, regular, recurringDone, recurringMissed)

	streak, err := svc.CurrentStreak(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	stats.CurrentStreak = streak

	if svc.cache != nil {
		if err := svc.cache.Set(ctx, userID, start, end, stats); err != nil {
			utils.TrackError("cache", "stats_set_failed")
		}
	}
	return stats, nil
}

// CurrentStreak computes the user's consecutive-completion-day streak from
// their recent completion records.
func (svc *AnalyticsService) CurrentStreak(ctx context.Context, userID string, now time.Time) (int, error) {
	records, err := svc.completions.ListInRange(ctx, userID, now.AddDate(0, 0, -streakLookback), now)
	if err != nil {
		return 0, err
	}

	var days []time.Time
	for _, rec := range records {
		if rec.CompletedAt != nil && !rec.CompletedAt.IsZero() {
			days = append(days, rec.ScheduledDate)
		}
	}
	return Streak(days, now), nil
}

// MissedOccurrences returns a user's occurrences that were scheduled before
// today and never completed.
func (svc *AnalyticsService) MissedOccurrences(ctx context.Context, userID, todoID string, now time.Time) ([]*model.CompletionRecord, error) {
	records, err := svc.completions.ListByTodo(ctx, userID, todoID)
	if err != nil {
		return nil, err
	}

	var missed []*model.CompletionRecord
	for _, rec := range records {
		if rec.Status(now) == model.OccurrenceMissed {
			missed = append(missed, rec)
		}
	}
	return missed, nil
}

// Streak counts consecutive calendar days with at least one completion,
// walking backward one day at a time. The walk starts at today when the most
// recent completion is today, at yesterday when it is yesterday, and nowhere
// otherwise, since a gap of more than one day breaks the streak. Duplicate
// dates count once.
func Streak(completionDays []time.Time, today time.Time) int {
	if len(completionDays) == 0 {
		return 0
	}

	seen := make(map[string]bool)
	var unique []time.Time
	for _, d := range completionDays {
		day := model.DateOnly(d)
		key := model.DateKey(day)
		if !seen[key] {
			seen[key] = true
			unique = append(unique, day)
		}
	}
	sort.Slice(unique, func(i, j int) bool { return unique[i].After(unique[j]) })

	todayDay := model.DateOnly(today)
	yesterday := todayDay.AddDate(0, 0, -1)

	var checkpoint time.Time
	switch {
	case model.SameDay(unique[0], todayDay):
		checkpoint = todayDay
	case model.SameDay(unique[0], yesterday):
		checkpoint = yesterday
	default:
		return 0
	}

	streak := 0
	for _, day := range unique {
		if !model.SameDay(day, checkpoint) {
			break
		}
		streak++
		checkpoint = checkpoint.AddDate(0, 0, -1)
	}
	return streak
}

// CompletionRate is the whole-number percentage of expected occurrences that
// were completed. With nothing expected the rate is vacuously 100.
func CompletionRate(completed, missed int) int {
	expected := completed + missed
	if expected == 0 {
		return 100
	}
	return int(math.Round(100 * float64(completed) / float64(expected)))
}

// DailyBreakdown builds one DailyStat per day in [start, end] inclusive,
// zero-seeded and then overlaid with the three per-day groupings. Days with
// no data keep zero counts rather than going missing.
func DailyBreakdown(start, end time.Time, regular, recurringDone, recurringMissed map[string]int) []model.DailyStat {
	var out []model.DailyStat
	for day := model.DateOnly(start); !day.After(model.DateOnly(end)); day = day.AddDate(0, 0, 1) {
		key := model.DateKey(day)
		out = append(out, model.DailyStat{
			Date:               key,
			RegularCompleted:   regular[key],
			RecurringCompleted: recurringDone[key],
			RecurringMissed:    recurringMissed[key],
		})
	}
	return out
}
