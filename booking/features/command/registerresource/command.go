package registerresource

import (
	"github.com/google/uuid"

	"github.com/staybook/reservation-engine/booking/shared/core"
	"github.com/staybook/reservation-engine/reservation"
)

const (
	commandType = "RegisterResource"
)

// Command records which user owns a rentable resource.
type Command struct {
	ResourceID uuid.UUID
	OwnerID    uuid.UUID
	Actor      core.Actor
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// Resource returns the resource this command registers.
func (c Command) Resource() reservation.Resource {
	return reservation.Resource{ID: c.ResourceID, OwnerID: c.OwnerID}
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(resourceID uuid.UUID, ownerID uuid.UUID, actor core.Actor) Command {
	return Command{
		ResourceID: resourceID,
		OwnerID:    ownerID,
		Actor:      actor,
	}
}
