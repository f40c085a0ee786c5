package reservation

import (
	"github.com/google/uuid"
)

// VersionInt64 is the concurrency token of a resource. Every committed change increments it by one.
type VersionInt64 = int64

// ResourceState is everything a decision needs to know about one resource, read at one version.
type ResourceState struct {
	Resource     Resource
	Reservations Reservations
	Version      VersionInt64
}

// Exists reports whether the resource is known to the store.
func (s ResourceState) Exists() bool {
	return s.Resource.ID != uuid.Nil
}

// Find looks up a reservation of this resource by id.
func (s ResourceState) Find(id uuid.UUID) (Reservation, bool) {
	for _, r := range s.Reservations {
		if r.ID == id {
			return r, true
		}
	}

	return Reservation{}, false
}

// ConflictsWith returns the Approved reservations overlapping candidate, ignoring excludeID.
// An empty result means approving candidate keeps the Approved set free of overlaps.
func (s ResourceState) ConflictsWith(candidate Interval, excludeID uuid.UUID) Reservations {
	return s.overlapping(StatusApproved, candidate, excludeID)
}

// OverlappingPending returns the Pending reservations overlapping candidate, ignoring excludeID.
func (s ResourceState) OverlappingPending(candidate Interval, excludeID uuid.UUID) Reservations {
	return s.overlapping(StatusPending, candidate, excludeID)
}

func (s ResourceState) overlapping(status Status, candidate Interval, excludeID uuid.UUID) Reservations {
	out := make(Reservations, 0)

	for _, r := range s.Reservations {
		if r.Status != status || r.ID == excludeID {
			continue
		}

		if r.Interval.Overlaps(candidate) {
			out = append(out, r)
		}
	}

	return out
}

// Apply returns the state after changes were committed on top of s.
func (s ResourceState) Apply(changes Changes) ResourceState {
	deleted := make(map[uuid.UUID]struct{}, len(changes.Deletes))
	for _, id := range changes.Deletes {
		deleted[id] = struct{}{}
	}

	updated := make(map[uuid.UUID]Status, len(changes.StatusChanges))
	for _, c := range changes.StatusChanges {
		updated[c.ReservationID] = c.To
	}

	next := make(Reservations, 0, len(s.Reservations)+len(changes.Inserts))
	for _, r := range s.Reservations {
		if _, gone := deleted[r.ID]; gone {
			continue
		}

		if status, ok := updated[r.ID]; ok {
			r = r.WithStatus(status)
		}

		next = append(next, r)
	}

	next = append(next, changes.Inserts...)

	return ResourceState{
		Resource:     s.Resource,
		Reservations: next,
		Version:      s.Version + 1,
	}
}
