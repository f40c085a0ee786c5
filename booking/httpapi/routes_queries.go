package httpapi

import (
	"net/http"

	"github.com/staybook/reservation-engine/booking/features/query/allreservations"
	"github.com/staybook/reservation-engine/booking/features/query/reservationdetails"
	"github.com/staybook/reservation-engine/booking/features/query/reservationsbyowner"
	"github.com/staybook/reservation-engine/booking/features/query/reservationsbyrequester"
	"github.com/staybook/reservation-engine/booking/features/query/reservationsforresource"
)

func (s *Server) listForResource(w http.ResponseWriter, r *http.Request) {
	if _, err := actorFrom(r); err != nil {
		s.writeError(w, r, err)
		return
	}

	resourceID, err := pathID(r, "resourceID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	status, err := statusParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.handlers.ForResource.Handle(r.Context(), reservationsforresource.BuildQuery(resourceID, status))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusOK, toListResponse(result.Reservations))
}

func (s *Server) listByRequester(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	requesterID, err := pathID(r, "requesterID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.handlers.ByRequester.Handle(r.Context(), reservationsbyrequester.BuildQuery(requesterID, actor))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusOK, toListResponse(result.Reservations))
}

func (s *Server) listByOwner(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	ownerID, err := pathID(r, "ownerID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	status, err := statusParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.handlers.ByOwner.Handle(r.Context(), reservationsbyowner.BuildQuery(ownerID, status, actor))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	response := toListResponse(result.Reservations)
	response.PendingCount = &result.PendingCount

	s.writeJSON(r.Context(), w, http.StatusOK, response)
}

func (s *Server) listAll(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	status, err := statusParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.handlers.All.Handle(r.Context(), allreservations.BuildQuery(status, actor))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusOK, toListResponse(result.Reservations))
}

func (s *Server) details(w http.ResponseWriter, r *http.Request) {
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

	result, err := s.handlers.Details.Handle(r.Context(), reservationdetails.BuildQuery(reservationID, actor))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusOK, detailsResponse{
		Reservation:  toReservationResponse(result.Reservation),
		Resource:     resourceResponse{ID: result.Resource.ID, OwnerID: result.Resource.OwnerID},
		ActorIsOwner: result.ActorIsOwner,
	})
}
