package reservationsforresource

import (
	"context"

	"github.com/staybook/reservation-engine/reservation"
)

// Store defines the interface needed by the QueryHandler.
type Store interface {
	List(ctx context.Context, filter reservation.ListFilter) (reservation.Reservations, error)
}

// QueryHandler lists the reservations of a resource. Listings may be served by a read replica.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle executes the listing. An unknown resource yields an empty result.
func (h QueryHandler) Handle(ctx context.Context, query Query) (ReservationsForResource, error) {
	reservations, err := h.store.List(reservation.WithEventualConsistency(ctx), query.Filter())
	if err != nil {
		return ReservationsForResource{}, err
	}

	return ReservationsForResource{
		ResourceID:   query.ResourceID,
		Status:       query.Status,
		Reservations: reservations,
		Count:        len(reservations),
	}, nil
}
