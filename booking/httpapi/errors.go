package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/staybook/reservation-engine/reservation"
)

var (
	ErrMissingActor   = errors.New("missing or malformed actor identity")
	ErrMalformedInput = errors.New("malformed request")
)

// statusOf maps an error kind to its HTTP status.
func statusOf(err error) int {
	switch {
	case errors.Is(err, ErrMissingActor):
		return http.StatusUnauthorized
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}

	switch reservation.KindOf(err) {
	case reservation.KindValidation:
		return http.StatusBadRequest
	case reservation.KindForbidden:
		return http.StatusForbidden
	case reservation.KindNotFound:
		return http.StatusNotFound
	case reservation.KindConflict:
		return http.StatusConflict
	case reservation.KindInvalidState:
		return http.StatusUnprocessableEntity
	case reservation.KindConcurrencyConflict:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func toErrorResponse(err error, status int) errorResponse {
	response := errorResponse{
		Error: err.Error(),
		Kind:  reservation.KindOf(err),
	}

	if status == http.StatusInternalServerError {
		response.Error = http.StatusText(status)
	}

	var conflictErr *reservation.ConflictError
	if errors.As(err, &conflictErr) {
		response.ConflictIDs = conflictErr.ConflictIDs
	}

	return response
}
