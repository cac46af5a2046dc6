package services

import (
	"context"
	"log"
	"time"

	"main/utils"
)

// MissedCounter is the repository slice the sweep needs.
type MissedCounter interface {
	CountMissedBefore(ctx context.Context, today time.Time) (int, error)
}

// MissedSweep refreshes the missed-occurrence gauge from storage. Runs
// nightly via the scheduler; classification itself stays in the analytics
// service, this only keeps the operational metric current.
type MissedSweep struct {
	completions MissedCounter
}

func NewMissedSweep(completions MissedCounter) *MissedSweep {
	return &MissedSweep{completions: completions}
}

func (s *MissedSweep) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := s.completions.CountMissedBefore(ctx, time.Now())
	if err != nil {
		log.Printf("Missed sweep failed: %v", err)
		utils.TrackError("sweep", "missed_count_failed")
		return
	}

	utils.UpdateMissedOccurrences(count)
	log.Printf("Missed sweep complete: %d uncompleted past occurrences", count)
}
