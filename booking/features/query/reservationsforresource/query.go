package reservationsforresource

import (
	"github.com/google/uuid"

	"github.com/staybook/reservation-engine/reservation"
)

const (
	queryType = "ReservationsForResource"
)

// Query represents the intent to list the reservations of one resource, optionally with one status only.
type Query struct {
	ResourceID uuid.UUID
	Status     reservation.Status
}

// BuildQuery creates a new Query. An empty status lists all statuses.
func BuildQuery(resourceID uuid.UUID, status reservation.Status) Query {
	return Query{
		ResourceID: resourceID,
		Status:     status,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}

// Filter returns the store filter for this query.
func (q Query) Filter() reservation.ListFilter {
	return reservation.ForResource(q.ResourceID).WithStatus(q.Status)
}
