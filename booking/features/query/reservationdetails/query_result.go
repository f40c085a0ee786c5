package reservationdetails

import (
	"github.com/staybook/reservation-engine/reservation"
)

// ReservationDetails is one reservation together with its resource.
type ReservationDetails struct {
	Reservation reservation.Reservation
	Resource    reservation.Resource
	Nights      int

	// ActorIsOwner tells a client whether to offer approve and reject.
	ActorIsOwner bool
}
