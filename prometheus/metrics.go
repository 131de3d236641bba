package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const prefix = "tappy"

var (
	// GuardDenialsCounter counts requests rejected by the tenant guard, by reason
	GuardDenialsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_guard_denials_total",
			Help: "Total number of tenant-scoped requests rejected by the guard",
		},
		[]string{"resource", "reason"},
	)

	// ResourceOperationsCounter counts tenant-scoped resource operations
	ResourceOperationsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_resource_operations_total",
			Help: "Total number of tenant-scoped resource operations",
		},
		[]string{"resource", "operation"},
	)

	// SkippedValidationsCounter counts sub-field updates silently ignored
	SkippedValidationsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_skipped_validations_total",
			Help: "Total number of partial updates whose sub-field was ignored",
		},
		[]string{"resource", "field"},
	)

	// IntegracaoTransitionsCounter counts integration status changes by target status
	IntegracaoTransitionsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_integracao_transitions_total",
			Help: "Total number of integration status transitions",
		},
		[]string{"status"},
	)

	// LoginCounter counts login attempts by outcome
	LoginCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_login_total",
			Help: "Total number of login attempts",
		},
		[]string{"outcome"},
	)

	// DbOperationDuration records database operation durations
	DbOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)
)

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		DbOperationDuration.WithLabelValues(operationType).Observe(time.Since(startTime).Seconds())
	}
}

// RecordGuardDenial increments the guard denial counter
func RecordGuardDenial(resource, reason string) {
	GuardDenialsCounter.WithLabelValues(resource, reason).Inc()
}

// RecordResourceOperation increments the counter for resource operations
func RecordResourceOperation(resource, operation string) {
	ResourceOperationsCounter.WithLabelValues(resource, operation).Inc()
}

// RecordSkippedValidation increments the counter for ignored sub-field updates
func RecordSkippedValidation(resource, field string) {
	SkippedValidationsCounter.WithLabelValues(resource, field).Inc()
}

// RecordIntegracaoTransition increments the transition counter for the target status
func RecordIntegracaoTransition(status string) {
	IntegracaoTransitionsCounter.WithLabelValues(status).Inc()
}

// RecordLogin increments the login counter for an outcome
func RecordLogin(outcome string) {
	LoginCounter.WithLabelValues(outcome).Inc()
}
