package dto

import (
	"main/model"
	"time"
)

type ParseDescriptionRequest struct {
	Text string `json:"text" binding:"required"`
}

type PatternResponse struct {
	Pattern     *model.RecurrencePattern `json:"pattern"`
	Description string                   `json:"description"`
}

type DescribePatternRequest struct {
	Pattern model.RecurrencePattern `json:"pattern" binding:"required"`
}

type PreviewRequest struct {
	Pattern              model.RecurrencePattern `json:"pattern" binding:"required"`
	From                 time.Time               `json:"from" binding:"required"`
	CompletedOccurrences int                     `json:"completed_occurrences"`
}

type PreviewResponse struct {
	SeriesEnded    bool       `json:"series_ended"`
	NextDue        *time.Time `json:"next_due,omitempty"`
	NextNotifyTime *time.Time `json:"next_notify_time,omitempty"`
}

type OccurrencesRequest struct {
	Pattern model.RecurrencePattern `json:"pattern" binding:"required"`
	Anchor  *time.Time              `json:"anchor,omitempty"`
	Start   string                  `json:"start" binding:"required"` // YYYY-MM-DD
	End     string                  `json:"end" binding:"required"`   // YYYY-MM-DD
}

type OccurrencesResponse struct {
	Dates []string `json:"dates"` // YYYY-MM-DD
}

type CorrectionRequest struct {
	ScheduledDate string `json:"scheduled_date" binding:"required"` // YYYY-MM-DD
	Completed     bool   `json:"completed"`
}

type CorrectionResponse struct {
	Outcome string `json:"outcome"` // created or updated
}
