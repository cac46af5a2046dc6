package model

import "time"

type Todo struct {
	TodoID      string    `bson:"_id,omitempty" json:"id"`
	UserID      string    `bson:"user_id" json:"user_id"`
	TodoName    string    `bson:"todo_name" json:"todo_name" binding:"required"`
	Description string    `bson:"todo_description" json:"description"`
	Complete    bool      `bson:"complete" json:"complete"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
	DueDate     time.Time `bson:"due_date,omitempty" json:"due_date,omitempty"`
	ReminderAt  time.Time `bson:"reminder_at,omitempty" json:"reminder_at,omitempty"`

	IsRecurring bool               `bson:"is_recurring,omitempty" json:"is_recurring,omitempty"`
	Recurrence  *RecurrencePattern `bson:"recurrence,omitempty" json:"recurrence,omitempty"`

	// CompletedOccurrences counts finished occurrences of a recurring todo,
	// checked against the pattern's occurrence cap.
	CompletedOccurrences int `bson:"completed_occurrences,omitempty" json:"completed_occurrences,omitempty"`

	// SeriesEnded marks a recurring todo whose pattern has expired.
	SeriesEnded bool `bson:"series_ended,omitempty" json:"series_ended,omitempty"`
}
