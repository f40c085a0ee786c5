package reservationsforresource

import (
	"github.com/google/uuid"

	"github.com/staybook/reservation-engine/reservation"
)

// ReservationsForResource is the query result, newest request first.
type ReservationsForResource struct {
	ResourceID   uuid.UUID
	Status       reservation.Status
	Reservations reservation.Reservations
	Count        int
}
