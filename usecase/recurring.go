package usecase

import (
	"context"
	"errors"
	"time"

	"main/model"
	"main/recurrence"
	"main/repository"
	"main/utils"
)

// TodoStore is the slice of the todos repository the recurrence flows need.
type TodoStore interface {
	GetTodoByID(ctx context.Context, userID, todoID string) (*model.Todo, error)
	UpdateSchedule(ctx context.Context, userID, todoID string, due, reminder time.Time, completedOccurrences int) error
	MarkSeriesEnded(ctx context.Context, userID, todoID string, completedOccurrences int) error
	ListCompletedRegular(ctx context.Context, userID string, start, end time.Time) ([]*model.Todo, error)
}

// CompletionStore persists completion records keyed by
// (user, todo, scheduled date).
type CompletionStore interface {
	UpsertByKey(ctx context.Context, rec *model.CompletionRecord, now time.Time) (repository.UpsertOutcome, error)
	ListByTodo(ctx context.Context, userID, todoID string) ([]*model.CompletionRecord, error)
	ListInRange(ctx context.Context, userID string, start, end time.Time) ([]*model.CompletionRecord, error)
	CountCompleted(ctx context.Context, userID, todoID string) (int, error)
}

// StatsInvalidator drops cached analytics after completion writes. Optional.
type StatsInvalidator interface {
	Invalidate(ctx context.Context, userID string) error
}

type RecurringService struct {
	todos       TodoStore
	completions CompletionStore
	cache       StatsInvalidator
}

func NewRecurringService(todos TodoStore, completions CompletionStore, cache StatsInvalidator) *RecurringService {
	return &RecurringService{todos: todos, completions: completions, cache: cache}
}

// CompletionResult reports what completing one occurrence did. SeriesEnded
// true with a nil NextDue is the normal terminal state of a recurring todo,
// not a failure.
type CompletionResult struct {
	Outcome      repository.UpsertOutcome `json:"outcome"`
	SeriesEnded  bool                     `json:"series_ended"`
	NextDue      *time.Time               `json:"next_due,omitempty"`
	NextReminder *time.Time               `json:"next_reminder,omitempty"`
}

// CompleteOccurrence marks the current occurrence of a recurring todo done
// and advances the schedule: a completion record is written for the prior
// due date, stamped with now, and the todo moves to the next computed due
// date. The reminder keeps its original offset from the due date. When the
// pattern has no next occurrence the series is closed out instead.
func (svc *RecurringService) CompleteOccurrence(ctx context.Context, userID, todoID string, now time.Time) (*CompletionResult, error) {
	todo, err := svc.todos.GetTodoByID(ctx, userID, todoID)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, errors.New("todo not found")
	}
	if !todo.IsRecurring || todo.Recurrence == nil {
		return nil, errors.New("todo is not recurring")
	}
	if todo.DueDate.IsZero() {
		return nil, errors.New("recurring todo has no due date")
	}

	completed := todo.CompletedOccurrences + 1

	record := &model.CompletionRecord{
		UserID:        userID,
		TodoID:        todoID,
		ScheduledDate: model.DateOnly(todo.DueDate),
		CompletedAt:   &now,
	}
	outcome, err := svc.completions.UpsertByKey(ctx, record, now)
	if err != nil {
		return nil, err
	}

	// Retroactive corrections can record completions the counter never saw;
	// the records are the source of truth when they disagree.
	if n, err := svc.completions.CountCompleted(ctx, userID, todoID); err != nil {
		return nil, err
	} else if n > completed {
		completed = n
	}

	result := &CompletionResult{Outcome: outcome}

	next, ok := recurrence.NextOccurrence(*todo.Recurrence, todo.DueDate, completed)
	if !ok {
		if err := svc.todos.MarkSeriesEnded(ctx, userID, todoID, completed); err != nil {
			return nil, err
		}
		result.SeriesEnded = true
		utils.TrackSeriesEnded()
	} else {
		var reminder time.Time
		if !todo.ReminderAt.IsZero() {
			// Keep the due-to-reminder offset the user chose originally.
			reminder = next.Add(-todo.DueDate.Sub(todo.ReminderAt))
		}
		if err := svc.todos.UpdateSchedule(ctx, userID, todoID, next, reminder, completed); err != nil {
			return nil, err
		}
		result.NextDue = &next
		if !reminder.IsZero() {
			result.NextReminder = &reminder
		}
	}

	utils.TrackRecurringCompletion()
	svc.invalidate(ctx, userID)
	return result, nil
}

// SetCompletion retroactively corrects one occurrence's completion state,
// upserting on the natural key. Repeated identical calls leave exactly one
// record; the outcome tells which branch was taken.
func (svc *RecurringService) SetCompletion(ctx context.Context, userID, todoID string, scheduledDate time.Time, completed bool, now time.Time) (repository.UpsertOutcome, error) {
	record := &model.CompletionRecord{
		UserID:        userID,
		TodoID:        todoID,
		ScheduledDate: model.DateOnly(scheduledDate),
	}
	if completed {
		record.CompletedAt = &now
	}

	outcome, err := svc.completions.UpsertByKey(ctx, record, now)
	if err != nil {
		return "", err
	}

	svc.invalidate(ctx, userID)
	return outcome, nil
}

// NextNotification computes when the todo's next reminder notification should
// fire, based on the pattern's notify time.
func (svc *RecurringService) NextNotification(ctx context.Context, userID, todoID string, from time.Time) (*time.Time, error) {
	todo, err := svc.todos.GetTodoByID(ctx, userID, todoID)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, errors.New("todo not found")
	}
	if !todo.IsRecurring || todo.Recurrence == nil {
		return nil, errors.New("todo is not recurring")
	}

	at, ok := recurrence.NextNotificationTime(todo.Recurrence.Normalized(), from)
	if !ok {
		return nil, nil
	}
	return &at, nil
}

func (svc *RecurringService) invalidate(ctx context.Context, userID string) {
	if svc.cache == nil {
		return
	}
	if err := svc.cache.Invalidate(ctx, userID); err != nil {
		utils.TrackError("cache", "invalidate_failed")
	}
}
