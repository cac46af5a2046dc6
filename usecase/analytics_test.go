package usecase

import (
	"context"
	"testing"
	"time"

	"main/model"
)

var analyticsToday = time.Date(2026, time.January, 15, 13, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return model.DateOnly(analyticsToday).AddDate(0, 0, offset)
}

func TestStreak(t *testing.T) {
	tests := []struct {
		name string
		days []time.Time
		want int
	}{
		{"empty", nil, 0},
		{"three days ending today", []time.Time{day(0), day(-1), day(-2)}, 3},
		{"single stale day", []time.Time{day(-2)}, 0},
		{"ending yesterday still counts", []time.Time{day(-1), day(-2), day(-3)}, 3},
		{"today only", []time.Time{day(0)}, 1},
		{"gap stops the walk", []time.Time{day(0), day(-2), day(-3)}, 1},
		{"duplicates count once", []time.Time{day(0), day(0), day(-1)}, 2},
		{"unordered input", []time.Time{day(-2), day(0), day(-1)}, 3},
		{"future-proof: time of day ignored", []time.Time{analyticsToday, day(-1)}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Streak(tt.days, analyticsToday); got != tt.want {
				t.Fatalf("Streak = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCompletionRate(t *testing.T) {
	tests := []struct {
		completed, missed, want int
	}{
		{0, 0, 100},
		{3, 1, 75},
		{1, 2, 33},
		{2, 1, 67},
		{0, 5, 0},
		{10, 0, 100},
	}

	for _, tt := range tests {
		if got := CompletionRate(tt.completed, tt.missed); got != tt.want {
			t.Errorf("CompletionRate(%d, %d) = %d, want %d", tt.completed, tt.missed, got, tt.want)
		}
	}
}

func TestDailyBreakdownIsDense(t *testing.T) {
	start := day(-2)
	end := day(0)

	breakdown := DailyBreakdown(start, end,
		map[string]int{model.DateKey(day(-1)): 2},
		map[string]int{model.DateKey(day(0)): 1},
		map[string]int{model.DateKey(day(-2)): 1},
	)

	if len(breakdown) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(breakdown))
	}

	if breakdown[0].Date != model.DateKey(day(-2)) || breakdown[0].RecurringMissed != 1 {
		t.Fatalf("unexpected first entry: %+v", breakdown[0])
	}
	if breakdown[1].RegularCompleted != 2 || breakdown[1].RecurringCompleted != 0 {
		t.Fatalf("unexpected middle entry: %+v", breakdown[1])
	}
	if breakdown[2].RecurringCompleted != 1 || breakdown[2].RecurringMissed != 0 {
		t.Fatalf("unexpected last entry: %+v", breakdown[2])
	}
}

func TestDailyBreakdownSingleDay(t *testing.T) {
	breakdown := DailyBreakdown(day(0), day(0), nil, nil, nil)
	if len(breakdown) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(breakdown))
	}
	if breakdown[0].RegularCompleted != 0 || breakdown[0].RecurringCompleted != 0 || breakdown[0].RecurringMissed != 0 {
		t.Fatalf("expected zero counts, got %+v", breakdown[0])
	}
}

func TestRecurringStatsAggregation(t *testing.T) {
	completions := newFakeCompletionStore()
	todos := newFakeTodoStore()
	svc := NewAnalyticsService(todos, completions, nil)
	ctx := context.Background()

	completedAt := day(-1).Add(20 * time.Hour)
	seed := []*model.CompletionRecord{
		{UserID: "user-1", TodoID: "todo-1", ScheduledDate: day(-1), CompletedAt: &completedAt},
		{UserID: "user-1", TodoID: "todo-1", ScheduledDate: day(-2)},            // missed
		{UserID: "user-1", TodoID: "todo-2", ScheduledDate: day(0)},             // pending
		{UserID: "user-2", TodoID: "todo-9", ScheduledDate: day(-1)},            // other user
		{UserID: "user-1", TodoID: "todo-1", ScheduledDate: day(0).AddDate(0, 0, 1)}, // pending, tomorrow
	}
	for _, rec := range seed {
		if _, err := completions.UpsertByKey(ctx, rec, analyticsToday); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	stats, err := svc.RecurringStats(ctx, "user-1", day(-3), day(1), analyticsToday)
	if err != nil {
		t.Fatalf("RecurringStats failed: %v", err)
	}

	if stats.TotalCompleted != 1 {
		t.Errorf("TotalCompleted = %d, want 1", stats.TotalCompleted)
	}
	if stats.TotalMissed != 1 {
		t.Errorf("TotalMissed = %d, want 1", stats.TotalMissed)
	}
	if stats.Pending != 2 {
		t.Errorf("Pending = %d, want 2", stats.Pending)
	}
	if stats.CompletionRate != 50 {
		t.Errorf("CompletionRate = %d, want 50", stats.CompletionRate)
	}
	if stats.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", stats.CurrentStreak)
	}
	if len(stats.Breakdown) != 5 {
		t.Fatalf("expected dense 5-day breakdown, got %d entries", len(stats.Breakdown))
	}
}

func TestMissedOccurrences(t *testing.T) {
	completions := newFakeCompletionStore()
	svc := NewAnalyticsService(newFakeTodoStore(), completions, nil)
	ctx := context.Background()

	completedAt := day(-3).Add(9 * time.Hour)
	seed := []*model.CompletionRecord{
		{UserID: "user-1", TodoID: "todo-1", ScheduledDate: day(-3), CompletedAt: &completedAt},
		{UserID: "user-1", TodoID: "todo-1", ScheduledDate: day(-2)},
		{UserID: "user-1", TodoID: "todo-1", ScheduledDate: day(-1)},
		{UserID: "user-1", TodoID: "todo-1", ScheduledDate: day(0)},
	}
	for _, rec := range seed {
		if _, err := completions.UpsertByKey(ctx, rec, analyticsToday); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	missed, err := svc.MissedOccurrences(ctx, "user-1", "todo-1", analyticsToday)
	if err != nil {
		t.Fatalf("MissedOccurrences failed: %v", err)
	}
	if len(missed) != 2 {
		t.Fatalf("expected 2 missed occurrences, got %d", len(missed))
	}
}
