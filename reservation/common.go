package reservation

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Error kinds. Every error returned by an operation wraps exactly one of these, so callers can distinguish
// terminal failures (everything but ErrConcurrencyConflict) with errors.Is.
var (
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("reservation conflict")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidState = errors.New("invalid state")
)

// ErrConcurrencyConflict is returned by a store when the resource version changed between read and commit.
var ErrConcurrencyConflict = errors.New("concurrency error, resource version changed")

var (
	ErrNilDatabaseConnection     = errors.New("database connection must not be nil")
	ErrEmptyTableNameSupplied    = errors.New("empty table name supplied")
	ErrBuildingQueryFailed       = errors.New("building query failed")
	ErrQueryingFailed            = errors.New("querying reservations failed")
	ErrScanningDBRowFailed       = errors.New("scanning db row failed")
	ErrCommittingChangesFailed   = errors.New("committing changes failed")
	ErrGettingRowsAffectedFailed = errors.New("getting rows affected failed")
	ErrNothingToCommit           = errors.New("changes are empty")
)

const (
	KindValidation          = "validation"
	KindConflict            = "conflict"
	KindNotFound            = "not_found"
	KindForbidden           = "forbidden"
	KindInvalidState        = "invalid_state"
	KindConcurrencyConflict = "concurrency_conflict"
	KindNone                = "none"
	KindOther               = "other"
)

// ConflictError reports the Approved reservations a candidate interval collides with.
type ConflictError struct {
	ResourceID  uuid.UUID
	ConflictIDs []uuid.UUID
	Reason      string
}

func (e *ConflictError) Error() string {
	ids := make([]string, 0, len(e.ConflictIDs))
	for _, id := range e.ConflictIDs {
		ids = append(ids, id.String())
	}

	return ErrConflict.Error() + ": " + e.Reason + " (conflicts with " + strings.Join(ids, ", ") + ")"
}

// Is makes errors.Is(err, ErrConflict) true for a *ConflictError.
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// NewConflictError builds a ConflictError from the conflicting reservations.
func NewConflictError(resourceID uuid.UUID, reason string, conflicting Reservations) *ConflictError {
	return &ConflictError{
		ResourceID:  resourceID,
		ConflictIDs: conflicting.IDs(),
		Reason:      reason,
	}
}

// KindOf classifies an error for metrics labels and transport mapping.
func KindOf(err error) string {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrInvalidState):
		return KindInvalidState
	case errors.Is(err, ErrConcurrencyConflict):
		return KindConcurrencyConflict
	default:
		return KindOther
	}
}
