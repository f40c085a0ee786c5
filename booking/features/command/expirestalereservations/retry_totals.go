package expirestalereservations

import (
	"sync"

	"github.com/staybook/reservation-engine/booking/shared/shell"
)

// retryTotals sums the retry metadata of the per resource loops.
type retryTotals struct {
	mu      sync.Mutex
	metrics shell.RetryMetrics
}

func (t *retryTotals) add(m shell.RetryMetrics) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.metrics.Attempts += m.Attempts
	t.metrics.TotalDelay += m.TotalDelay
	t.metrics.RetriesExhausted = t.metrics.RetriesExhausted || m.RetriesExhausted

	if m.LastErrorType != "" && m.LastErrorType != "none" {
		t.metrics.LastErrorType = m.LastErrorType
	}
}

func (t *retryTotals) summary() shell.RetryMetrics {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := t.metrics
	if out.LastErrorType == "" {
		out.LastErrorType = "none"
	}

	return out
}
