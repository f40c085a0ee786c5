package registerresource

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/staybook/reservation-engine/booking/shared/core"
	"github.com/staybook/reservation-engine/reservation"
)

const (
	failureReasonIDsMissing     = "resource id and owner id are required"
	failureReasonNotOwner       = "only the owner or an administrator may register a resource"
	failureReasonOwnedByAnother = "resource is registered to another owner"
)

// Decide determines whether a resource may be registered.
//
// Business Rules:
//
//	GIVEN: an unknown resource
//	WHEN: its owner (or an administrator) registers it
//	THEN: the resource is stored with the owner
//	ERROR: forbidden if the actor is neither the owner nor an administrator
//	ERROR: forbidden if the resource is already registered to another owner
//	IDEMPOTENCY: registering again with the same owner is a no-op
//
// A successful decision carries no reservation changes. The shell registers command.Resource().
func Decide(state reservation.ResourceState, command Command) core.DecisionResult {
	if command.ResourceID == uuid.Nil || command.OwnerID == uuid.Nil {
		return core.ErrorDecision(errors.Join(reservation.ErrValidation, errors.New(failureReasonIDsMissing)))
	}

	if command.Actor.ID != command.OwnerID && !command.Actor.IsAdmin() {
		return core.ErrorDecision(errors.Join(reservation.ErrForbidden, errors.New(failureReasonNotOwner)))
	}

	if state.Exists() {
		if state.Resource.IsOwnedBy(command.OwnerID) {
			return core.IdempotentDecision(reservation.Reservation{})
		}

		return core.ErrorDecision(errors.Join(
			reservation.ErrForbidden,
			fmt.Errorf("%s: %s", failureReasonOwnedByAnother, command.ResourceID),
		))
	}

	return core.SuccessDecision(reservation.Changes{}, reservation.Reservation{})
}
