package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_operation_duration_seconds",
			Help:    "Duration of database operations",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation", "collection"},
	)

	// Recurrence Metrics
	RecurringCompletionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recurring_completions_total",
			Help: "Total number of recurring occurrences completed",
		},
	)

	SeriesEndedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recurring_series_ended_total",
			Help: "Total number of recurring series that reached their end",
		},
	)

	PatternParseFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recurrence_parse_failures_total",
			Help: "Total number of unrecognized recurrence descriptions",
		},
	)

	MissedOccurrences = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recurring_missed_occurrences",
			Help: "Scheduled occurrences in the past with no completion, as of the last sweep",
		},
	)

	// Error Metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total number of errors by component and reason",
		},
		[]string{"component", "reason"},
	)
)

// TrackDBOperation times a database operation; stop it with ObserveDuration.
func TrackDBOperation(operation, collection string) *prometheus.Timer {
	return prometheus.NewTimer(DBOperationDuration.WithLabelValues(operation, collection))
}

// TrackError increments the error counter for a component/reason pair.
func TrackError(component, reason string) {
	ErrorsTotal.WithLabelValues(component, reason).Inc()
}

// TrackRecurringCompletion records one completed recurring occurrence.
func TrackRecurringCompletion() {
	RecurringCompletionsTotal.Inc()
}

// TrackSeriesEnded records a recurring series reaching its terminal state.
func TrackSeriesEnded() {
	SeriesEndedTotal.Inc()
}

// TrackParseFailure records an unrecognized recurrence description.
func TrackParseFailure() {
	PatternParseFailures.Inc()
}

// UpdateMissedOccurrences sets the missed-occurrence gauge after a sweep.
func UpdateMissedOccurrences(count int) {
	MissedOccurrences.Set(float64(count))
}
