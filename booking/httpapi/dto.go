package httpapi

import (
	"time"

	"github.com/google/uuid"

	"github.com/staybook/reservation-engine/booking/shared/shell"
	"github.com/staybook/reservation-engine/reservation"
)

type registerResourceRequest struct {
	OwnerID string `json:"owner_id" validate:"required,uuid"`
}

type requestReservationRequest struct {
	ReservationID string    `json:"reservation_id" validate:"omitempty,uuid"`
	CheckIn       time.Time `json:"check_in" validate:"required"`
	CheckOut      time.Time `json:"check_out" validate:"required"`
}

type resourceResponse struct {
	ID      uuid.UUID `json:"id"`
	OwnerID uuid.UUID `json:"owner_id"`
}

type reservationResponse struct {
	ID          uuid.UUID `json:"id"`
	ResourceID  uuid.UUID `json:"resource_id"`
	RequesterID uuid.UUID `json:"requester_id"`
	CheckIn     time.Time `json:"check_in"`
	CheckOut    time.Time `json:"check_out"`
	Nights      int       `json:"nights"`
	Status      string    `json:"status"`
	RequestedAt time.Time `json:"requested_at"`
}

type commandResponse struct {
	Reservation     *reservationResponse `json:"reservation,omitempty"`
	Resource        *resourceResponse    `json:"resource,omitempty"`
	Idempotent      bool                 `json:"idempotent"`
	CascadeRejected []uuid.UUID          `json:"cascade_rejected,omitempty"`
	Attempts        int                  `json:"attempts"`
}

type listResponse struct {
	Reservations []reservationResponse `json:"reservations"`
	Count        int                   `json:"count"`
	PendingCount *int                  `json:"pending_count,omitempty"`
}

type detailsResponse struct {
	Reservation  reservationResponse `json:"reservation"`
	Resource     resourceResponse    `json:"resource"`
	ActorIsOwner bool                `json:"actor_is_owner"`
}

type errorResponse struct {
	Error       string      `json:"error"`
	Kind        string      `json:"kind"`
	ConflictIDs []uuid.UUID `json:"conflict_ids,omitempty"`
}

func toReservationResponse(r reservation.Reservation) reservationResponse {
	return reservationResponse{
		ID:          r.ID,
		ResourceID:  r.ResourceID,
		RequesterID: r.RequesterID,
		CheckIn:     r.Interval.CheckIn,
		CheckOut:    r.Interval.CheckOut,
		Nights:      r.Interval.Nights(),
		Status:      r.Status.String(),
		RequestedAt: r.RequestedAt,
	}
}

func toListResponse(rs reservation.Reservations) listResponse {
	out := make([]reservationResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, toReservationResponse(r))
	}

	return listResponse{Reservations: out, Count: len(out)}
}

func toCommandResponse(result shell.HandlerResult) commandResponse {
	response := commandResponse{
		Idempotent:      result.Idempotent,
		CascadeRejected: result.CascadeRejected,
		Attempts:        result.RetryAttempts,
	}

	if result.Reservation.ID != uuid.Nil {
		r := toReservationResponse(result.Reservation)
		response.Reservation = &r
	}

	return response
}
