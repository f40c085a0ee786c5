package expirestalereservations

import (
	"time"

	"github.com/staybook/reservation-engine/reservation"
)

const (
	commandType = "ExpireStaleReservations"
)

// Command rejects every Pending reservation whose check-in lies before Now.
type Command struct {
	Now time.Time
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(now time.Time) Command {
	return Command{
		Now: reservation.ToTimestamp(now),
	}
}
