package allreservations

import (
	"context"

	"github.com/staybook/reservation-engine/reservation"
)

// Store defines the interface needed by the QueryHandler.
type Store interface {
	List(ctx context.Context, filter reservation.ListFilter) (reservation.Reservations, error)
}

// QueryHandler lists all reservations.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle authorizes the actor and executes the listing.
func (h QueryHandler) Handle(ctx context.Context, query Query) (AllReservations, error) {
	if err := query.Authorize(); err != nil {
		return AllReservations{}, err
	}

	reservations, err := h.store.List(
		reservation.WithEventualConsistency(ctx),
		reservation.AllReservations().WithStatus(query.Status),
	)
	if err != nil {
		return AllReservations{}, err
	}

	return AllReservations{
		Reservations: reservations,
		Count:        len(reservations),
	}, nil
}
