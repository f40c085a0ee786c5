package reservationsbyowner

import (
	"errors"

	"github.com/google/uuid"

	"github.com/staybook/reservation-engine/booking/shared/core"
	"github.com/staybook/reservation-engine/reservation"
)

const (
	queryType = "ReservationsByOwner"

	failureReasonOtherOwner = "only the owner or an administrator may list these reservations"
)

// Query represents the intent to list the reservations on all resources of one owner.
type Query struct {
	OwnerID uuid.UUID
	Status  reservation.Status
	Actor   core.Actor
}

// BuildQuery creates a new Query. An empty status lists all statuses.
func BuildQuery(ownerID uuid.UUID, status reservation.Status, actor core.Actor) Query {
	return Query{
		OwnerID: ownerID,
		Status:  status,
		Actor:   actor,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}

// Authorize allows the owner and administrators.
func (q Query) Authorize() error {
	if q.Actor.ID == q.OwnerID || q.Actor.IsAdmin() {
		return nil
	}

	return errors.Join(reservation.ErrForbidden, errors.New(failureReasonOtherOwner))
}
