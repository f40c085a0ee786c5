package reservation

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a reservation. Cancelled and deleted reservations are removed, not flagged.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// ErrUnknownStatus is returned by ParseStatus for anything but the three known statuses.
var ErrUnknownStatus = errors.New("unknown reservation status")

// ParseStatus converts a string into a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return Status(s), nil
	default:
		return "", errors.Join(ErrValidation, ErrUnknownStatus, fmt.Errorf("status %q", s))
	}
}

func (s Status) String() string {
	return string(s)
}

// CanTransitionTo reports whether the state machine allows moving from s to next.
// Only Pending has outgoing transitions.
func (s Status) CanTransitionTo(next Status) bool {
	if s != StatusPending {
		return false
	}

	return next == StatusApproved || next == StatusRejected
}

// Resource is the external bookable entity. Only its id and its owner matter here.
type Resource struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
}

// IsOwnedBy reports whether actorID controls the resource.
func (r Resource) IsOwnedBy(actorID uuid.UUID) bool {
	return r.OwnerID != uuid.Nil && r.OwnerID == actorID
}

// Reservation is a time-bounded claim on a resource.
// Only Status changes after creation.
type Reservation struct {
	ID          uuid.UUID
	ResourceID  uuid.UUID
	RequesterID uuid.UUID
	Interval    Interval
	Status      Status
	RequestedAt time.Time
}

// BuildPendingReservation creates a new reservation in its initial state.
func BuildPendingReservation(
	id uuid.UUID,
	resourceID uuid.UUID,
	requesterID uuid.UUID,
	interval Interval,
	requestedAt time.Time,
) Reservation {
	return Reservation{
		ID:          id,
		ResourceID:  resourceID,
		RequesterID: requesterID,
		Interval:    interval,
		Status:      StatusPending,
		RequestedAt: ToTimestamp(requestedAt),
	}
}

// WithStatus returns a copy of the reservation carrying the given status.
func (r Reservation) WithStatus(status Status) Reservation {
	r.Status = status
	return r
}

// Reservations is a list of reservations.
type Reservations []Reservation

// IDs returns the ids in list order.
func (rs Reservations) IDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(rs))
	for _, r := range rs {
		ids = append(ids, r.ID)
	}

	return ids
}

// WithStatus returns the subset with the given status.
func (rs Reservations) WithStatus(status Status) Reservations {
	out := make(Reservations, 0)
	for _, r := range rs {
		if r.Status == status {
			out = append(out, r)
		}
	}

	return out
}

// SortByRequestedAtDesc orders newest requests first, ties broken by id for a stable order.
func (rs Reservations) SortByRequestedAtDesc() {
	sort.SliceStable(rs, func(i, j int) bool {
		if rs[i].RequestedAt.Equal(rs[j].RequestedAt) {
			return rs[i].ID.String() < rs[j].ID.String()
		}

		return rs[i].RequestedAt.After(rs[j].RequestedAt)
	})
}
