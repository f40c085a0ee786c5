// Package reservation provides the core types of the reservation engine for rental properties.
//
// A Reservation claims a half-open Interval [check-in, check-out) on a Resource. The package holds
// the pieces every store and every feature slice shares:
//   - Interval: overlap test and submission validation
//   - Status: Pending, Approved, Rejected and the allowed transitions
//   - ResourceState: the reservations of one resource at one version, with the conflict resolver
//     (ConflictsWith) and the cascade lookup (OverlappingPending)
//   - Changes: one atomic unit of work a store commits with a version check
//   - the error kinds (ErrValidation, ErrConflict, ErrNotFound, ErrForbidden, ErrInvalidState)
//
// Common usage pattern:
//
//	state, err := store.Query(ctx, resourceID)
//	if err != nil {
//		// handle error
//	}
//
//	if conflicts := state.ConflictsWith(candidate, uuid.Nil); len(conflicts) > 0 {
//		return reservation.NewConflictError(resourceID, "dates already booked", conflicts)
//	}
//
//	err = store.Commit(ctx, resourceID, state.Version, reservation.Insert(newReservation))
package reservation
