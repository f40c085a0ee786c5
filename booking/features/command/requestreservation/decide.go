package requestreservation

import (
	"errors"
	"fmt"

	"github.com/staybook/reservation-engine/booking/shared/core"
	"github.com/staybook/reservation-engine/reservation"
)

const (
	failureReasonAlreadyBooked = "the interval is already booked"
	failureReasonIDInUse       = "reservation id is already used for different terms"
)

// Decide determines whether a reservation request is accepted as Pending.
//
// Business Rules:
//
//	GIVEN: a registered resource
//	WHEN: a requester asks for an interval
//	THEN: a Pending reservation is created
//	ERROR: validation if check-out is not after check-in or check-in is before the request time
//	ERROR: not found if the resource is unknown
//	ERROR: conflict if an Approved reservation overlaps the interval (Pending ones do not block)
//	IDEMPOTENCY: repeating the same request with the same reservation id is a no-op
func Decide(state reservation.ResourceState, command Command) core.DecisionResult {
	if err := command.Interval.Validate(command.RequestedAt); err != nil {
		return core.ErrorDecision(err)
	}

	if !state.Exists() {
		return core.ErrorDecision(errors.Join(
			reservation.ErrNotFound,
			fmt.Errorf("resource %s", command.ResourceID),
		))
	}

	if existing, found := state.Find(command.ReservationID); found {
		if sameTerms(existing, command) {
			return core.IdempotentDecision(existing)
		}

		return core.ErrorDecision(errors.Join(reservation.ErrValidation, errors.New(failureReasonIDInUse)))
	}

	if conflicts := state.ConflictsWith(command.Interval, command.ReservationID); len(conflicts) > 0 {
		return core.ErrorDecision(reservation.NewConflictError(command.ResourceID, failureReasonAlreadyBooked, conflicts))
	}

	created := reservation.BuildPendingReservation(
		command.ReservationID,
		command.ResourceID,
		command.RequesterID,
		command.Interval,
		command.RequestedAt,
	)

	return core.SuccessDecision(reservation.Insert(created), created)
}

func sameTerms(existing reservation.Reservation, command Command) bool {
	return existing.RequesterID == command.RequesterID &&
		existing.Interval.CheckIn.Equal(command.Interval.CheckIn) &&
		existing.Interval.CheckOut.Equal(command.Interval.CheckOut)
}
