package deletereservation

import (
	"errors"
	"fmt"

	"github.com/staybook/reservation-engine/booking/shared/core"
	"github.com/staybook/reservation-engine/reservation"
)

const (
	failureReasonNotAdmin = "only administrators may delete reservations"
)

// Decide removes a reservation in any status. Only admins may do so.
func Decide(state reservation.ResourceState, command Command) core.DecisionResult {
	if !command.Actor.IsAdmin() {
		return core.ErrorDecision(errors.Join(reservation.ErrForbidden, errors.New(failureReasonNotAdmin)))
	}

	target, found := state.Find(command.ReservationID)
	if !found {
		return core.ErrorDecision(errors.Join(
			reservation.ErrNotFound,
			fmt.Errorf("reservation %s", command.ReservationID),
		))
	}

	return core.SuccessDecision(reservation.Delete(target.ID), target)
}
