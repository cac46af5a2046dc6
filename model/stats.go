package model

// DailyStat is one calendar day's completion counts. Ranges are dense: a day
// with no activity still gets an entry with zero counts.
type DailyStat struct {
	Date               string `json:"date"` // YYYY-MM-DD
	RegularCompleted   int    `json:"regular_completed"`
	RecurringCompleted int    `json:"recurring_completed"`
	RecurringMissed    int    `json:"recurring_missed"`
}

// RecurringStats aggregates a user's recurring-todo history over a range.
type RecurringStats struct {
	TotalCompleted int `json:"total_completed"`
	TotalMissed    int `json:"total_missed"`
	Pending        int `json:"pending"`

	// CompletionRate is a whole percentage; 100 when nothing was expected.
	CompletionRate int `json:"completion_rate"`

	// CurrentStreak counts consecutive days with at least one completion,
	// walking back from today or yesterday.
	CurrentStreak int `json:"current_streak"`

	Breakdown []DailyStat `json:"breakdown,omitempty"`
}
