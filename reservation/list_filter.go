package reservation

import (
	"time"

	"github.com/google/uuid"
)

// ListFilter selects reservations for read-only listings. Zero fields match anything.
type ListFilter struct {
	ResourceID  uuid.UUID
	RequesterID uuid.UUID
	OwnerID     uuid.UUID
	Status      Status

	// CheckInBefore keeps reservations starting strictly before this instant.
	CheckInBefore time.Time
}

// ForResource lists the reservations of one resource.
func ForResource(resourceID uuid.UUID) ListFilter {
	return ListFilter{ResourceID: resourceID}
}

// ForRequester lists the reservations one requester made.
func ForRequester(requesterID uuid.UUID) ListFilter {
	return ListFilter{RequesterID: requesterID}
}

// ForOwner lists the reservations on all resources of one owner.
func ForOwner(ownerID uuid.UUID) ListFilter {
	return ListFilter{OwnerID: ownerID}
}

// AllReservations lists everything.
func AllReservations() ListFilter {
	return ListFilter{}
}

// WithStatus narrows the filter to one status. An empty status keeps all.
func (f ListFilter) WithStatus(status Status) ListFilter {
	f.Status = status
	return f
}

// StartingBefore narrows the filter to reservations whose check-in is before t.
func (f ListFilter) StartingBefore(t time.Time) ListFilter {
	f.CheckInBefore = ToTimestamp(t)
	return f
}

// Matches reports whether r on a resource owned by ownerID passes the filter.
func (f ListFilter) Matches(r Reservation, ownerID uuid.UUID) bool {
	if f.ResourceID != uuid.Nil && r.ResourceID != f.ResourceID {
		return false
	}

	if f.RequesterID != uuid.Nil && r.RequesterID != f.RequesterID {
		return false
	}

	if f.OwnerID != uuid.Nil && ownerID != f.OwnerID {
		return false
	}

	if f.Status != "" && r.Status != f.Status {
		return false
	}

	if !f.CheckInBefore.IsZero() && !r.Interval.CheckIn.Before(f.CheckInBefore) {
		return false
	}

	return true
}
