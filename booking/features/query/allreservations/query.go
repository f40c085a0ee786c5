package allreservations

import (
	"errors"

	"github.com/staybook/reservation-engine/booking/shared/core"
	"github.com/staybook/reservation-engine/reservation"
)

const (
	queryType = "AllReservations"

	failureReasonNotAdmin = "only administrators may list all reservations"
)

// Query represents the intent of an administrator to list every reservation.
type Query struct {
	Status reservation.Status
	Actor  core.Actor
}

// BuildQuery creates a new Query. An empty status lists all statuses.
func BuildQuery(status reservation.Status, actor core.Actor) Query {
	return Query{
		Status: status,
		Actor:  actor,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}

// Authorize allows administrators only.
func (q Query) Authorize() error {
	if q.Actor.IsAdmin() {
		return nil
	}

	return errors.Join(reservation.ErrForbidden, errors.New(failureReasonNotAdmin))
}
