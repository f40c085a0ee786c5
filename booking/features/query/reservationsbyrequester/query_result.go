package reservationsbyrequester

import (
	"github.com/google/uuid"

	"github.com/staybook/reservation-engine/reservation"
)

// ReservationsByRequester is the query result, newest request first.
type ReservationsByRequester struct {
	RequesterID  uuid.UUID
	Reservations reservation.Reservations
	Count        int
}
