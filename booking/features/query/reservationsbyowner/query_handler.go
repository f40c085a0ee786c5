package reservationsbyowner

import (
	"context"

	"github.com/staybook/reservation-engine/reservation"
)

// Store defines the interface needed by the QueryHandler.
type Store interface {
	List(ctx context.Context, filter reservation.ListFilter) (reservation.Reservations, error)
}

// QueryHandler lists the reservations on an owner's resources.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle authorizes the actor and executes the listing.
func (h QueryHandler) Handle(ctx context.Context, query Query) (ReservationsByOwner, error) {
	if err := query.Authorize(); err != nil {
		return ReservationsByOwner{}, err
	}

	reservations, err := h.store.List(
		reservation.WithEventualConsistency(ctx),
		reservation.ForOwner(query.OwnerID).WithStatus(query.Status),
	)
	if err != nil {
		return ReservationsByOwner{}, err
	}

	return ReservationsByOwner{
		OwnerID:      query.OwnerID,
		Reservations: reservations,
		Count:        len(reservations),
		PendingCount: len(reservations.WithStatus(reservation.StatusPending)),
	}, nil
}
