package approvereservation

import (
	"errors"
	"fmt"

	"github.com/staybook/reservation-engine/booking/shared/core"
	"github.com/staybook/reservation-engine/reservation"
)

const (
	failureReasonNotOwner      = "only the owner of the resource may approve"
	failureReasonRejected      = "a rejected reservation cannot be approved"
	failureReasonAlreadyBooked = "the interval is already booked"
)

// Decide implements the approval cascade. It is a pure function: it takes everything known about the
// resource and returns the changes that have to be committed as one unit.
//
// Business Rules:
//
//	GIVEN: a Pending reservation on a resource
//	WHEN: the owner of the resource approves it
//	THEN: it becomes Approved and every other Pending reservation on the resource whose interval
//	      overlaps it becomes Rejected, in the same commit
//	ERROR: not found if the reservation does not exist on the resource
//	ERROR: forbidden if the actor does not own the resource
//	ERROR: invalid state if the reservation is Rejected
//	ERROR: conflict if another Approved reservation overlaps it (nothing changes)
//	IDEMPOTENCY: approving an Approved reservation is a no-op
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
	case reservation.StatusApproved:
		return core.IdempotentDecision(target)
	case reservation.StatusRejected:
		return core.ErrorDecision(errors.Join(reservation.ErrInvalidState, errors.New(failureReasonRejected)))
	}

	if conflicts := state.ConflictsWith(target.Interval, target.ID); len(conflicts) > 0 {
		return core.ErrorDecision(reservation.NewConflictError(state.Resource.ID, failureReasonAlreadyBooked, conflicts))
	}

	cascade := state.OverlappingPending(target.Interval, target.ID)

	changes := reservation.Transition(reservation.StatusApproved, target).
		And(reservation.Transition(reservation.StatusRejected, cascade...))

	return core.SuccessDecision(changes, target.WithStatus(reservation.StatusApproved)).
		WithCascadeRejected(cascade.IDs())
}
