package reservationsbyowner

import (
	"github.com/google/uuid"

	"github.com/staybook/reservation-engine/reservation"
)

// ReservationsByOwner is the query result, newest request first.
type ReservationsByOwner struct {
	OwnerID      uuid.UUID
	Reservations reservation.Reservations
	Count        int

	// PendingCount is what the owner still has to decide on.
	PendingCount int
}
