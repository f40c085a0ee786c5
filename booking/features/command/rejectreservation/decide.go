package rejectreservation

import (
	"errors"
	"fmt"

	"github.com/staybook/reservation-engine/booking/shared/core"
	"github.com/staybook/reservation-engine/reservation"
)

const (
	failureReasonNotOwner = "only the owner of the resource may reject"
	failureReasonApproved = "an approved reservation cannot be rejected"
)

// Decide determines whether a reservation can be rejected.
//
// Business Rules:
//
//	GIVEN: a Pending reservation
//	WHEN: the owner of the resource rejects it
//	THEN: it becomes Rejected
//	ERROR: not found, forbidden for anybody but the owner, invalid state if it is Approved
//	IDEMPOTENCY: rejecting a Rejected reservation is a no-op
func Decide(state reservation.ResourceState, command Command) core.DecisionResult {
	target, found := state.Find(command.ReservationID)
	if !found {
		return core.ErrorDecision(errors.Join(
			reservation.ErrNotFound,
			fmt.Errorf("reservation %s", command.ReservationID),
		))
	}

	if !command.Actor.Controls(state.Resource) {
		return core.ErrorDecision(errors.Join(reservation.ErrForbidden, errors.New(failureReasonNotOwner)))
	}

	switch target.Status {
	case reservation.StatusRejected:
		return core.IdempotentDecision(target)
	case reservation.StatusApproved:
		return core.ErrorDecision(errors.Join(reservation.ErrInvalidState, errors.New(failureReasonApproved)))
	}

	return core.SuccessDecision(
		reservation.Transition(reservation.StatusRejected, target),
		target.WithStatus(reservation.StatusRejected),
	)
}
