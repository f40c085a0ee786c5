package reservationdetails

import (
	"github.com/google/uuid"

	"github.com/staybook/reservation-engine/booking/shared/core"
)

const (
	queryType = "ReservationDetails"
)

// Query represents the intent to look at one reservation.
type Query struct {
	ReservationID uuid.UUID
	Actor         core.Actor
}

// BuildQuery creates a new Query.
func BuildQuery(reservationID uuid.UUID, actor core.Actor) Query {
	return Query{
		ReservationID: reservationID,
		Actor:         actor,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
