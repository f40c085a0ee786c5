package postgresengine

import (
	"github.com/staybook/reservation-engine/reservation"
)

// Option defines a functional option for configuring Store.
type Option func(*Store) error

// WithTableName sets the reservations table name for the Store.
func WithTableName(tableName string) Option {
	return func(s *Store) error {
		if tableName == "" {
			return reservation.ErrEmptyTableNameSupplied
		}

		s.reservationTableName = tableName

		return nil
	}
}

// WithResourceTableName sets the resources table name for the Store.
// The resources table holds the owner and the version of every resource.
func WithResourceTableName(tableName string) Option {
	return func(s *Store) error {
		if tableName == "" {
			return reservation.ErrEmptyTableNameSupplied
		}

		s.resourceTableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the Store.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL queries with execution timing (development use)
// Info level: Reservation counts, durations, concurrency conflicts (production-safe)
// Warn level: Non-critical issues like cleanup failures
// Error level: Critical failures that cause operation failures.
func WithLogger(logger reservation.Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Store.
// It receives query/commit durations, reservation counts, concurrency conflicts and database errors.
func WithMetrics(collector reservation.MetricsCollector) Option {
	return func(s *Store) error {
		s.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Store.
// Spans are created for query and commit operations.
func WithTracing(collector reservation.TracingCollector) Option {
	return func(s *Store) error {
		s.tracingCollector = collector
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Store.
// Log records carry the context so trace and span ids can be correlated when tracing is enabled.
func WithContextualLogger(logger reservation.ContextualLogger) Option {
	return func(s *Store) error {
		s.contextualLogger = logger
		return nil
	}
}
