package expirestalereservations

import (
	"github.com/staybook/reservation-engine/reservation"
)

// Decide returns the changes that reject the stale Pending reservations of one resource.
//
// Business Rules:
//
//	GIVEN: Pending reservations of a resource
//	WHEN: their check-in lies before now
//	THEN: they are Rejected, nobody can approve them anymore
//	IDEMPOTENCY: a resource without stale reservations yields empty changes
//
// Approved and Rejected reservations are never touched.
func Decide(state reservation.ResourceState, command Command) reservation.Changes {
	stale := make(reservation.Reservations, 0)

	for _, r := range state.Reservations.WithStatus(reservation.StatusPending) {
		if r.Interval.CheckIn.Before(command.Now) {
			stale = append(stale, r)
		}
	}

	if len(stale) == 0 {
		return reservation.Changes{}
	}

	return reservation.Transition(reservation.StatusRejected, stale...)
}
