package postgresengine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/staybook/reservation-engine/reservation"
)

const (
	metricQueryDuration          = "reservationstore_query_duration_seconds"
	metricCommitDuration         = "reservationstore_commit_duration_seconds"
	metricConcurrencyConflicts   = "reservationstore_concurrency_conflicts_total"
	metricDatabaseErrors         = "reservationstore_database_errors_total"
	metricReservationsQueried    = "reservationstore_reservations_queried"
	metricChangesCommitted       = "reservationstore_changes_committed"
	spanNameQuery                = "reservationstore.query"
	spanNameList                 = "reservationstore.list"
	spanNameCommit               = "reservationstore.commit"
	spanAttrOperation            = "operation"
	spanAttrResourceID           = "resource_id"
	spanAttrReservationCount     = "reservation_count"
	spanAttrChangeCount          = "change_count"
	spanAttrVersion              = "version"
	spanAttrExpectedVersion      = "expected_version"
	spanAttrErrorType            = "error_type"
	spanAttrDurationMS           = "duration_ms"
	labelStatus                  = "status"
	labelConflictType            = "conflict_type"
	operationQuery               = "query"
	operationList                = "list"
	operationCommit              = "commit"
	statusSuccess                = "success"
	statusError                  = "error"
	errorTypeBuildQuery          = "build_query"
	errorTypeDatabaseQuery       = "database_query"
	errorTypeRowScan             = "row_scan"
	errorTypeDatabaseCommit      = "database_commit"
	errorTypeRowsAffected        = "rows_affected"
	errorTypeConcurrencyConflict = "concurrency_conflict"
	errorTypeCanceled            = "canceled"
	errorTypeTimeout             = "timeout"
	errorTypeOther               = "other"
)

// errorTypeFor maps a store error to a low cardinality label.
func errorTypeFor(ctx context.Context, err error) string {
	switch {
	case errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled):
		return errorTypeCanceled
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return errorTypeTimeout
	case errors.Is(err, reservation.ErrConcurrencyConflict):
		return errorTypeConcurrencyConflict
	case errors.Is(err, reservation.ErrBuildingQueryFailed):
		return errorTypeBuildQuery
	case errors.Is(err, reservation.ErrScanningDBRowFailed):
		return errorTypeRowScan
	case errors.Is(err, reservation.ErrGettingRowsAffectedFailed):
		return errorTypeRowsAffected
	case errors.Is(err, reservation.ErrCommittingChangesFailed):
		return errorTypeDatabaseCommit
	case errors.Is(err, reservation.ErrQueryingFailed):
		return errorTypeDatabaseQuery
	default:
		return errorTypeOther
	}
}

// logQueryWithDuration logs SQL queries with execution time at debug level if a logger is configured.
func (s *Store) logQueryWithDuration(ctx context.Context, sqlQuery string, action string, duration time.Duration) {
	if s.logger != nil {
		s.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, s.toMilliseconds(duration), logAttrQuery, sqlQuery)
	}

	if s.contextualLogger != nil {
		s.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action, logAttrDurationMS, s.toMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

// logOperation logs operational information at info level if a logger is configured.
func (s *Store) logOperation(ctx context.Context, action string, args ...any) {
	if s.logger != nil {
		s.logger.Info(logMsgOperation+action, args...)
	}

	if s.contextualLogger != nil {
		s.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
	}
}

// logWarn logs non-critical failures at warn level if a logger is configured.
func (s *Store) logWarn(ctx context.Context, message string, err error) {
	if s.logger != nil {
		s.logger.Warn(message, logAttrError, err.Error())
	}

	if s.contextualLogger != nil {
		s.contextualLogger.WarnContext(ctx, message, logAttrError, err.Error())
	}
}

// logError logs error information at the error level if a logger is configured.
func (s *Store) logError(ctx context.Context, message string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if s.logger != nil {
		s.logger.Error(message, allArgs...)
	}

	if s.contextualLogger != nil {
		s.contextualLogger.ErrorContext(ctx, message, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func (s *Store) toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.2f", float64(d.Nanoseconds())/1e6)
}

// recordDurationMetricsContext records duration metrics with context if the collector supports it.
func (s *Store) recordDurationMetricsContext(
	ctx context.Context,
	metricName string,
	duration time.Duration,
	operation, status string,
) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{spanAttrOperation: operation, labelStatus: status}

	if contextualCollector, ok := s.metricsCollector.(reservation.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metricName, duration, labels)
		return
	}

	s.metricsCollector.RecordDuration(metricName, duration, labels)
}

// recordValueMetricsContext records value metrics with context if the collector supports it.
func (s *Store) recordValueMetricsContext(
	ctx context.Context,
	metricName string,
	value float64,
	operation, status string,
) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{spanAttrOperation: operation, labelStatus: status}

	if contextualCollector, ok := s.metricsCollector.(reservation.ContextualMetricsCollector); ok {
		contextualCollector.RecordValueContext(ctx, metricName, value, labels)
		return
	}

	s.metricsCollector.RecordValue(metricName, value, labels)
}

// incrementCounterContext increments a counter with context if the collector supports it.
func (s *Store) incrementCounterContext(ctx context.Context, metricName string, labels map[string]string) {
	if s.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := s.metricsCollector.(reservation.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricName, labels)
		return
	}

	s.metricsCollector.IncrementCounter(metricName, labels)
}

// recordErrorMetricsContext counts a failed database operation.
func (s *Store) recordErrorMetricsContext(ctx context.Context, operation, errorType string) {
	s.incrementCounterContext(ctx, metricDatabaseErrors, map[string]string{
		spanAttrOperation: operation,
		labelStatus:       statusError,
		spanAttrErrorType: errorType,
	})
}

// startTraceSpan starts a tracing span if the tracing collector is configured.
func (s *Store) startTraceSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, reservation.SpanContext) {
	if s.tracingCollector != nil {
		return s.tracingCollector.StartSpan(ctx, name, attrs)
	}

	return ctx, nil
}

// finishTraceSpan finishes a tracing span if the tracing collector is configured.
func (s *Store) finishTraceSpan(span reservation.SpanContext, status string, attrs map[string]string) {
	if s.tracingCollector != nil && span != nil {
		s.tracingCollector.FinishSpan(span, status, attrs)
	}
}

// === Tracing Observer Pattern ===

// queryTracingObserver encapsulates tracing span lifecycle management for read operations.
type queryTracingObserver struct {
	s    *Store
	span reservation.SpanContext
}

// commitTracingObserver encapsulates tracing span lifecycle management for commit operations.
type commitTracingObserver struct {
	s    *Store
	span reservation.SpanContext
}

// startQueryTracing creates a new tracing observer for read operations.
func (s *Store) startQueryTracing(ctx context.Context, operation string, resourceID uuid.UUID) (*queryTracingObserver, context.Context) {
	spanName := spanNameQuery
	if operation == operationList {
		spanName = spanNameList
	}

	attrs := map[string]string{spanAttrOperation: operation}
	if resourceID != uuid.Nil {
		attrs[spanAttrResourceID] = resourceID.String()
	}

	newCtx, span := s.startTraceSpan(ctx, spanName, attrs)

	return &queryTracingObserver{s: s, span: span}, newCtx
}

// finishSuccess completes the span of a successful read.
func (qto *queryTracingObserver) finishSuccess(reservationCount int, version reservation.VersionInt64, duration time.Duration) {
	if qto.span == nil {
		return
	}

	qto.span.SetStatus(statusSuccess)
	qto.span.AddAttribute(spanAttrReservationCount, fmt.Sprintf("%d", reservationCount))
	qto.span.AddAttribute(spanAttrVersion, fmt.Sprintf("%d", version))
	qto.span.AddAttribute(spanAttrDurationMS, formatDuration(duration))

	qto.s.finishTraceSpan(qto.span, statusSuccess, map[string]string{
		spanAttrReservationCount: fmt.Sprintf("%d", reservationCount),
	})
}

// finishError completes the span of a failed read.
func (qto *queryTracingObserver) finishError(errorType string, duration time.Duration) {
	if qto.span == nil {
		return
	}

	qto.span.SetStatus(statusError)
	qto.span.AddAttribute(spanAttrErrorType, errorType)

	if duration > 0 {
		qto.span.AddAttribute(spanAttrDurationMS, formatDuration(duration))
	}

	qto.s.finishTraceSpan(qto.span, statusError, map[string]string{spanAttrErrorType: errorType})
}

// startCommitTracing creates a new tracing observer for commit operations.
func (s *Store) startCommitTracing(
	ctx context.Context,
	resourceID uuid.UUID,
	expectedVersion reservation.VersionInt64,
	changes reservation.Changes,
) (*commitTracingObserver, context.Context) {

	newCtx, span := s.startTraceSpan(ctx, spanNameCommit, map[string]string{
		spanAttrOperation:       operationCommit,
		spanAttrResourceID:      resourceID.String(),
		spanAttrExpectedVersion: fmt.Sprintf("%d", expectedVersion),
		spanAttrChangeCount:     fmt.Sprintf("%d", changes.Count()),
	})

	return &commitTracingObserver{s: s, span: span}, newCtx
}

// finishSuccess completes the span of a successful commit.
func (cto *commitTracingObserver) finishSuccess(changeCount int, duration time.Duration) {
	if cto.span == nil {
		return
	}

	cto.span.SetStatus(statusSuccess)
	cto.span.AddAttribute(spanAttrDurationMS, formatDuration(duration))

	cto.s.finishTraceSpan(cto.span, statusSuccess, map[string]string{
		spanAttrChangeCount: fmt.Sprintf("%d", changeCount),
	})
}

// finishError completes the span of a failed commit.
func (cto *commitTracingObserver) finishError(errorType string, duration time.Duration) {
	var attrs map[string]string
	if duration > 0 {
		attrs = map[string]string{spanAttrDurationMS: formatDuration(duration)}
	}

	cto.finishErrorWithAttrs(errorType, attrs)
}

// finishErrorWithAttrs completes the span of a failed commit with additional attributes.
func (cto *commitTracingObserver) finishErrorWithAttrs(errorType string, additionalAttrs map[string]string) {
	if cto.span == nil {
		return
	}

	cto.span.SetStatus(statusError)
	cto.span.AddAttribute(spanAttrErrorType, errorType)

	attrs := map[string]string{spanAttrErrorType: errorType}
	for key, value := range additionalAttrs {
		cto.span.AddAttribute(key, value)
		attrs[key] = value
	}

	cto.s.finishTraceSpan(cto.span, statusError, attrs)
}

// === Metrics Observer Pattern ===

// queryMetricsObserver encapsulates the metrics collection for read operations.
type queryMetricsObserver struct {
	s         *Store
	ctx       context.Context
	operation string
}

// commitMetricsObserver encapsulates the metrics collection for commit operations.
type commitMetricsObserver struct {
	s   *Store
	ctx context.Context
}

func (s *Store) startQueryMetrics(ctx context.Context, operation string) *queryMetricsObserver {
	return &queryMetricsObserver{s: s, ctx: ctx, operation: operation}
}

func (s *Store) startCommitMetrics(ctx context.Context) *commitMetricsObserver {
	return &commitMetricsObserver{s: s, ctx: ctx}
}

func (qmo *queryMetricsObserver) recordSuccess(reservationCount int, duration time.Duration) {
	qmo.s.recordDurationMetricsContext(qmo.ctx, metricQueryDuration, duration, qmo.operation, statusSuccess)
	qmo.s.recordValueMetricsContext(qmo.ctx, metricReservationsQueried, float64(reservationCount), qmo.operation, statusSuccess)
}

func (qmo *queryMetricsObserver) recordError(errorType string, duration time.Duration) {
	qmo.s.recordDurationMetricsContext(qmo.ctx, metricQueryDuration, duration, qmo.operation, statusError)
	qmo.s.recordErrorMetricsContext(qmo.ctx, qmo.operation, errorType)
}

func (cmo *commitMetricsObserver) recordSuccess(changeCount int, duration time.Duration) {
	cmo.s.recordDurationMetricsContext(cmo.ctx, metricCommitDuration, duration, operationCommit, statusSuccess)
	cmo.s.recordValueMetricsContext(cmo.ctx, metricChangesCommitted, float64(changeCount), operationCommit, statusSuccess)
}

func (cmo *commitMetricsObserver) recordError(errorType string, duration time.Duration) {
	cmo.s.recordDurationMetricsContext(cmo.ctx, metricCommitDuration, duration, operationCommit, statusError)
	cmo.s.recordErrorMetricsContext(cmo.ctx, operationCommit, errorType)
}

// recordConcurrencyConflict counts a lost version check. It is not a database error.
func (cmo *commitMetricsObserver) recordConcurrencyConflict(duration time.Duration) {
	cmo.s.recordDurationMetricsContext(cmo.ctx, metricCommitDuration, duration, operationCommit, statusError)
	cmo.s.incrementCounterContext(cmo.ctx, metricConcurrencyConflicts, map[string]string{
		spanAttrOperation: operationCommit,
		labelConflictType: "concurrency",
	})
}
