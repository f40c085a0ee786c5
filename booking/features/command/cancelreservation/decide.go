package cancelreservation

import (
	"errors"
	"fmt"

	"github.com/staybook/reservation-engine/booking/shared/core"
	"github.com/staybook/reservation-engine/reservation"
)

const (
	failureReasonNotRequester = "only the requester may cancel a reservation"
	failureReasonNotPending   = "only pending reservations can be cancelled"
)

// Decide determines whether a reservation can be cancelled. A cancelled reservation is removed, not kept with a status.
//
// Business Rules:
//
//	GIVEN: a Pending reservation
//	WHEN: its requester cancels it
//	THEN: it is removed
//	ERROR: not found, forbidden for anybody but the requester
//	ERROR: invalid state if it is Approved or Rejected
func Decide(state reservation.ResourceState, command Command) core.DecisionResult {
	target, found := state.Find(command.ReservationID)
	if !found {
		return core.ErrorDecision(errors.Join(
			reservation.ErrNotFound,
			fmt.Errorf("reservation %s", command.ReservationID),
		))
	}

	if target.RequesterID != command.Actor.ID {
		return core.ErrorDecision(errors.Join(reservation.ErrForbidden, errors.New(failureReasonNotRequester)))
	}

	if target.Status != reservation.StatusPending {
		return core.ErrorDecision(errors.Join(
			reservation.ErrInvalidState,
			fmt.Errorf("%s: reservation is %s", failureReasonNotPending, target.Status),
		))
	}

	return core.SuccessDecision(reservation.Delete(target.ID), target)
}
