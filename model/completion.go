package model

import "time"

type OccurrenceStatus string

const (
	OccurrenceCompleted OccurrenceStatus = "COMPLETED"
	OccurrenceMissed    OccurrenceStatus = "MISSED"
	OccurrencePending   OccurrenceStatus = "PENDING"
)

// CompletionRecord ties one scheduled occurrence of a recurring todo to the
// moment it was completed. CompletedAt nil means the occurrence was scheduled
// but never finished. There is at most one record per
// (user, todo, scheduled date); the repository upserts on that key.
type CompletionRecord struct {
	RecordID      string     `bson:"_id,omitempty" json:"id"`
	UserID        string     `bson:"user_id" json:"user_id"`
	TodoID        string     `bson:"todo_id" json:"todo_id"`
	ScheduledDate time.Time  `bson:"scheduled_date" json:"scheduled_date"`
	CompletedAt   *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	CreatedAt     time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `bson:"updated_at" json:"updated_at"`
}

// Status classifies the occurrence relative to the given "today" reference.
// An uncompleted occurrence is missed only once its day is fully in the past;
// today's or a future occurrence is still pending.
func (r *CompletionRecord) Status(today time.Time) OccurrenceStatus {
	if r.CompletedAt != nil && !r.CompletedAt.IsZero() {
		return OccurrenceCompleted
	}
	if DateOnly(r.ScheduledDate).Before(DateOnly(today)) {
		return OccurrenceMissed
	}
	return OccurrencePending
}
