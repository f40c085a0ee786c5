package requestreservation

import (
	"time"

	"github.com/google/uuid"

	"github.com/staybook/reservation-engine/reservation"
)

const (
	commandType = "RequestReservation"
)

// Command represents the intent of a requester to reserve a resource for an interval.
// ReservationID is chosen by the caller, so a repeated submission is recognized.
type Command struct {
	ReservationID uuid.UUID
	ResourceID    uuid.UUID
	RequesterID   uuid.UUID
	Interval      reservation.Interval
	RequestedAt   time.Time
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	reservationID uuid.UUID,
	resourceID uuid.UUID,
	requesterID uuid.UUID,
	checkIn time.Time,
	checkOut time.Time,
	requestedAt time.Time,
) Command {

	return Command{
		ReservationID: reservationID,
		ResourceID:    resourceID,
		RequesterID:   requesterID,
		Interval:      reservation.BuildInterval(checkIn, checkOut),
		RequestedAt:   reservation.ToTimestamp(requestedAt),
	}
}
