package httpapi

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/staybook/reservation-engine/booking/features/command/approvereservation"
	"github.com/staybook/reservation-engine/booking/features/command/cancelreservation"
	"github.com/staybook/reservation-engine/booking/features/command/deletereservation"
	"github.com/staybook/reservation-engine/booking/features/command/registerresource"
	"github.com/staybook/reservation-engine/booking/features/command/rejectreservation"
	"github.com/staybook/reservation-engine/booking/features/command/requestreservation"
	"github.com/staybook/reservation-engine/booking/shared/core"
	"github.com/staybook/reservation-engine/booking/shared/shell"
	"github.com/staybook/reservation-engine/reservation"
)

func (s *Server) registerResource(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resourceID, err := pathID(r, "resourceID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req registerResourceRequest
	if err = s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	command := registerresource.BuildCommand(resourceID, uuid.MustParse(req.OwnerID), actor)

	result, err := s.handlers.RegisterResource.Handle(r.Context(), command)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	response := toCommandResponse(result)
	response.Resource = &resourceResponse{ID: command.ResourceID, OwnerID: command.OwnerID}

	s.writeJSON(r.Context(), w, createdOrOK(result), response)
}

func (s *Server) requestReservation(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resourceID, err := pathID(r, "resourceID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req requestReservationRequest
	if err = s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	reservationID, err := reservationIDOrNew(req.ReservationID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	command := requestreservation.BuildCommand(reservationID, resourceID, actor.ID, req.CheckIn, req.CheckOut, s.now())

	result, err := s.handlers.Request.Handle(r.Context(), command)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(r.Context(), w, createdOrOK(result), toCommandResponse(result))
}

func (s *Server) approve(w http.ResponseWriter, r *http.Request) {
	s.reservationCommand(w, r, func(id uuid.UUID, actor core.Actor) (shell.HandlerResult, error) {
		return s.handlers.Approve.Handle(r.Context(), approvereservation.BuildCommand(id, actor))
	})
}

func (s *Server) reject(w http.ResponseWriter, r *http.Request) {
	s.reservationCommand(w, r, func(id uuid.UUID, actor core.Actor) (shell.HandlerResult, error) {
		return s.handlers.Reject.Handle(r.Context(), rejectreservation.BuildCommand(id, actor))
	})
}

func (s *Server) cancel(w http.ResponseWriter, r *http.Request) {
	s.reservationCommand(w, r, func(id uuid.UUID, actor core.Actor) (shell.HandlerResult, error) {
		return s.handlers.Cancel.Handle(r.Context(), cancelreservation.BuildCommand(id, actor))
	})
}

func (s *Server) deleteReservation(w http.ResponseWriter, r *http.Request) {
	s.reservationCommand(w, r, func(id uuid.UUID, actor core.Actor) (shell.HandlerResult, error) {
		return s.handlers.Delete.Handle(r.Context(), deletereservation.BuildCommand(id, actor))
	})
}

// reservationCommand handles the commands addressed by reservation id without a body.
func (s *Server) reservationCommand(
	w http.ResponseWriter,
	r *http.Request,
	handle func(id uuid.UUID, actor core.Actor) (shell.HandlerResult, error),
) {

	actor, err := actorFrom(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	reservationID, err := pathID(r, "reservationID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := handle(reservationID, actor)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusOK, toCommandResponse(result))
}

func createdOrOK(result shell.HandlerResult) int {
	if result.Idempotent {
		return http.StatusOK
	}

	return http.StatusCreated
}

func reservationIDOrNew(raw string) (uuid.UUID, error) {
	if raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return uuid.Nil, errors.Join(reservation.ErrValidation, ErrMalformedInput, err)
		}

		return id, nil
	}

	return uuid.NewV7()
}
