package core

import (
	"github.com/google/uuid"

	"github.com/staybook/reservation-engine/reservation"
)

// DecisionResult represents the outcome of a business decision in a Decide function.
//
// IMPORTANT: DecisionResult should only be constructed using the provided factory methods:
// IdempotentDecision(), SuccessDecision() or ErrorDecision().
type DecisionResult struct {
	Outcome string // "idempotent", "success", or "error"

	// Changes is what the imperative shell has to commit. Empty for idempotent and error decisions.
	Changes reservation.Changes

	// Reservation is the reservation the decision is about, as it looks after the changes are committed.
	Reservation reservation.Reservation

	// CascadeRejected lists the Pending reservations an approval rejects alongside.
	CascadeRejected []uuid.UUID

	Err error
}

const (
	idempotentOutcome = "idempotent"
	successOutcome    = "success"
	errorOutcome      = "error"
)

// IdempotentDecision creates a DecisionResult indicating no state change is needed.
func IdempotentDecision(current reservation.Reservation) DecisionResult {
	return DecisionResult{
		Outcome:     idempotentOutcome,
		Reservation: current,
	}
}

// SuccessDecision creates a DecisionResult with changes to commit.
func SuccessDecision(changes reservation.Changes, result reservation.Reservation) DecisionResult {
	return DecisionResult{
		Outcome:     successOutcome,
		Changes:     changes,
		Reservation: result,
	}
}

// ErrorDecision creates a DecisionResult for a violated business rule. Nothing is committed.
func ErrorDecision(err error) DecisionResult {
	return DecisionResult{
		Outcome: errorOutcome,
		Err:     err,
	}
}

// WithCascadeRejected records the reservations rejected by an approval.
func (r DecisionResult) WithCascadeRejected(ids []uuid.UUID) DecisionResult {
	r.CascadeRejected = ids
	return r
}

// HasChangesToCommit returns true if the shell has to write something.
func (r DecisionResult) HasChangesToCommit() bool {
	return r.Outcome == successOutcome
}

// IsIdempotent returns true if the decision requires no state change.
func (r DecisionResult) IsIdempotent() bool {
	return r.Outcome == idempotentOutcome
}

// HasError returns the error if there is one, otherwise nil.
func (r DecisionResult) HasError() error {
	if r.Outcome == errorOutcome {
		return r.Err
	}

	return nil
}
