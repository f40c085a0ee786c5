package observable_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staybook/reservation-engine/booking/shared/shell"
	"github.com/staybook/reservation-engine/booking/shared/shell/observable"
	. "github.com/staybook/reservation-engine/testutil/observability/testdoubles" //nolint:revive
)

func Test_QueryWrapper_Handle_Success(t *testing.T) {
	// arrange
	metricsCollector := NewMetricsCollectorSpy(true)
	tracingCollector := NewTracingCollectorSpy(true)
	logger := NewLoggerSpy(true)

	wrapper, err := observable.NewQueryWrapper[mockQuery, int](
		mockQueryHandler{result: 3},
		observable.WithQueryMetrics[mockQuery, int](metricsCollector),
		observable.WithQueryTracing[mockQuery, int](tracingCollector),
		observable.WithQueryContextualLogging[mockQuery, int](logger),
	)
	require.NoError(t, err)

	// act
	result, err := wrapper.Handle(context.Background(), mockQuery{})

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 3, result)
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.QueryHandlerCallsMetric).
		WithLabel(shell.LogAttrQueryType, mockQueryType).
		WithStatus(shell.StatusSuccess).
		Assert())
	assert.True(t, metricsCollector.HasDurationRecordForMetric(shell.QueryHandlerDurationMetric).Assert())
	assert.True(t, tracingCollector.HasFinishedSpan(shell.SpanNameQueryHandle, shell.StatusSuccess))
	assert.True(t, logger.HasContextualLog(LevelInfo, shell.LogMsgQueryCompleted))
}

func Test_QueryWrapper_Handle_Error(t *testing.T) {
	// arrange
	metricsCollector := NewMetricsCollectorSpy(true)
	logger := NewLoggerSpy(true)
	queryErr := errors.New("database down")

	wrapper, err := observable.NewQueryWrapper[mockQuery, int](
		mockQueryHandler{err: queryErr},
		observable.WithQueryMetrics[mockQuery, int](metricsCollector),
		observable.WithQueryLogging[mockQuery, int](logger),
	)
	require.NoError(t, err)

	// act
	_, err = wrapper.Handle(context.Background(), mockQuery{})

	// assert
	assert.ErrorIs(t, err, queryErr)
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.QueryHandlerCallsMetric).
		WithStatus(shell.StatusError).
		Assert())
	assert.True(t, logger.HasErrorLog(shell.LogMsgQueryFailed))
}

func Test_QueryWrapper_Handle_Canceled(t *testing.T) {
	// arrange
	metricsCollector := NewMetricsCollectorSpy(true)

	wrapper, err := observable.NewQueryWrapper[mockQuery, int](
		mockQueryHandler{err: context.Canceled},
		observable.WithQueryMetrics[mockQuery, int](metricsCollector),
	)
	require.NoError(t, err)

	// act
	_, err = wrapper.Handle(context.Background(), mockQuery{})

	// assert
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, metricsCollector.CountCounterRecordsForMetric(shell.QueryHandlerCanceledMetric))
}

const mockQueryType = "MockQuery"

type mockQuery struct{}

func (mockQuery) QueryType() string { return mockQueryType }

type mockQueryHandler struct {
	result int
	err    error
}

func (h mockQueryHandler) Handle(_ context.Context, _ mockQuery) (int, error) {
	return h.result, h.err
}
