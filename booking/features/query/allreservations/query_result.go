package allreservations

import (
	"github.com/staybook/reservation-engine/reservation"
)

// AllReservations is the query result, newest request first.
type AllReservations struct {
	Reservations reservation.Reservations
	Count        int
}
