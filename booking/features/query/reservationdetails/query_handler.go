package reservationdetails

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/staybook/reservation-engine/reservation"
)

const (
	failureReasonNotVisible = "reservation is visible to its requester, the resource owner and administrators only"
)

// Store defines the interface needed by the QueryHandler.
type Store interface {
	Get(ctx context.Context, reservationID uuid.UUID) (reservation.Reservation, reservation.Resource, error)
}

// QueryHandler loads one reservation and checks the actor may see it.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle executes the lookup. Unknown ids yield ErrNotFound, invisible ones ErrForbidden.
func (h QueryHandler) Handle(ctx context.Context, query Query) (ReservationDetails, error) {
	r, resource, err := h.store.Get(reservation.WithEventualConsistency(ctx), query.ReservationID)
	if err != nil {
		return ReservationDetails{}, err
	}

	if !query.Actor.CanView(r, resource) {
		return ReservationDetails{}, errors.Join(reservation.ErrForbidden, errors.New(failureReasonNotVisible))
	}

	return ReservationDetails{
		Reservation:  r,
		Resource:     resource,
		Nights:       r.Interval.Nights(),
		ActorIsOwner: query.Actor.Controls(resource),
	}, nil
}
