package fixtures

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/staybook/reservation-engine/reservation"
)

// FakeNow is the fixed "now" of all fixtures. Fixture stays start in January 2030.
var FakeNow = time.Date(2029, time.December, 1, 9, 0, 0, 0, time.UTC)

// FakeClock returns FakeNow.
func FakeClock() time.Time {
	return FakeNow
}

// Store is the part of a reservation store the Given helpers write through.
type Store interface {
	Query(ctx context.Context, resourceID uuid.UUID) (reservation.ResourceState, error)
	Commit(ctx context.Context, resourceID uuid.UUID, expectedVersion reservation.VersionInt64, changes reservation.Changes) error
	RegisterResource(ctx context.Context, resource reservation.Resource) error
}

func GivenUniqueID(t testing.TB) uuid.UUID {
	id, err := uuid.NewV7()
	require.NoError(t, err, "error in arranging test data")

	return id
}

// Day returns midnight UTC of the given day in January 2030.
func Day(day int) time.Time {
	return time.Date(2030, time.January, day, 0, 0, 0, 0, time.UTC)
}

// FixtureInterval spans the nights from fromDay to toDay in January 2030.
func FixtureInterval(fromDay, toDay int) reservation.Interval {
	return reservation.BuildInterval(Day(fromDay), Day(toDay))
}

// FixtureReservation builds a reservation on resourceID requested at FakeNow plus offset.
func FixtureReservation(
	t testing.TB,
	resourceID uuid.UUID,
	fromDay, toDay int,
	status reservation.Status,
	offset time.Duration,
) reservation.Reservation {

	return reservation.BuildPendingReservation(
		GivenUniqueID(t),
		resourceID,
		GivenUniqueID(t),
		FixtureInterval(fromDay, toDay),
		FakeNow.Add(offset),
	).WithStatus(status)
}

// GivenRegisteredResource registers a new resource owned by ownerID.
func GivenRegisteredResource(t testing.TB, ctx context.Context, store Store, ownerID uuid.UUID) reservation.Resource {
	t.Helper()

	resource := reservation.Resource{ID: GivenUniqueID(t), OwnerID: ownerID}
	require.NoError(t, store.RegisterResource(ctx, resource), "error in arranging test data")

	return resource
}

// GivenReservations writes the reservations onto their resource in one commit.
func GivenReservations(t testing.TB, ctx context.Context, store Store, resourceID uuid.UUID, reservations ...reservation.Reservation) {
	t.Helper()

	state, err := store.Query(ctx, resourceID)
	require.NoError(t, err, "error in arranging test data")

	changes := reservation.Changes{Inserts: reservations}
	require.NoError(t, store.Commit(ctx, resourceID, state.Version, changes), "error in arranging test data")
}

// GivenReservation writes one reservation with the given status and returns it.
func GivenReservation(
	t testing.TB,
	ctx context.Context,
	store Store,
	resourceID uuid.UUID,
	fromDay, toDay int,
	status reservation.Status,
) reservation.Reservation {

	t.Helper()

	r := FixtureReservation(t, resourceID, fromDay, toDay, status, 0)
	GivenReservations(t, ctx, store, resourceID, r)

	return r
}
