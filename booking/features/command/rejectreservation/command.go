package rejectreservation

import (
	"github.com/google/uuid"

	"github.com/staybook/reservation-engine/booking/shared/core"
)

const (
	commandType = "RejectReservation"
)

// Command represents the intent of a resource owner to reject a Pending reservation.
type Command struct {
	ReservationID uuid.UUID
	Actor         core.Actor
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(reservationID uuid.UUID, actor core.Actor) Command {
	return Command{
		ReservationID: reservationID,
		Actor:         actor,
	}
}
