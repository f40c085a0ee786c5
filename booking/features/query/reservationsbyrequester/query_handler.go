package reservationsbyrequester

import (
	"context"

	"github.com/staybook/reservation-engine/reservation"
)

// Store defines the interface needed by the QueryHandler.
type Store interface {
	List(ctx context.Context, filter reservation.ListFilter) (reservation.Reservations, error)
}

// QueryHandler lists the reservations of one requester across all resources.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle authorizes the actor and executes the listing.
func (h QueryHandler) Handle(ctx context.Context, query Query) (ReservationsByRequester, error) {
	if err := query.Authorize(); err != nil {
		return ReservationsByRequester{}, err
	}

	reservations, err := h.store.List(
		reservation.WithEventualConsistency(ctx),
		reservation.ForRequester(query.RequesterID),
	)
	if err != nil {
		return ReservationsByRequester{}, err
	}

	return ReservationsByRequester{
		RequesterID:  query.RequesterID,
		Reservations: reservations,
		Count:        len(reservations),
	}, nil
}
