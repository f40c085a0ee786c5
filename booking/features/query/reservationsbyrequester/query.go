package reservationsbyrequester

import (
	"errors"

	"github.com/google/uuid"

	"github.com/staybook/reservation-engine/booking/shared/core"
	"github.com/staybook/reservation-engine/reservation"
)

const (
	queryType = "ReservationsByRequester"

	failureReasonOtherRequester = "only the requester or an administrator may list these reservations"
)

// Query represents the intent to list all reservations one requester made.
type Query struct {
	RequesterID uuid.UUID
	Actor       core.Actor
}

// BuildQuery creates a new Query.
func BuildQuery(requesterID uuid.UUID, actor core.Actor) Query {
	return Query{
		RequesterID: requesterID,
		Actor:       actor,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}

// Authorize allows the requester and administrators.
func (q Query) Authorize() error {
	if q.Actor.ID == q.RequesterID || q.Actor.IsAdmin() {
		return nil
	}

	return errors.Join(reservation.ErrForbidden, errors.New(failureReasonOtherRequester))
}
