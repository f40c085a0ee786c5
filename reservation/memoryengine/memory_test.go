package memoryengine_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staybook/reservation-engine/reservation"
	"github.com/staybook/reservation-engine/reservation/memoryengine"
	. "github.com/staybook/reservation-engine/testutil/fixtures" //nolint:revive
	"github.com/staybook/reservation-engine/testutil/observability/testdoubles"
)

func Test_Query_UnknownResource_DoesNotExist(t *testing.T) {
	// arrange
	store := memoryengine.NewStore()

	// act
	state, err := store.Query(context.Background(), GivenUniqueID(t))

	// assert
	require.NoError(t, err)
	assert.False(t, state.Exists())
	assert.Zero(t, state.Version)
}

func Test_Commit_IncrementsVersion(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()
	resource := GivenRegisteredResource(t, ctx, store, GivenUniqueID(t))
	candidate := FixtureReservation(t, resource.ID, 1, 3, reservation.StatusPending, 0)

	// act
	err := store.Commit(ctx, resource.ID, 0, reservation.Insert(candidate))

	// assert
	require.NoError(t, err)
	state, err := store.Query(ctx, resource.ID)
	require.NoError(t, err)
	assert.Equal(t, reservation.VersionInt64(1), state.Version)
	assert.Equal(t, reservation.Reservations{candidate}, state.Reservations)
}

func Test_Commit_WithStaleVersion_FailsWithConcurrencyConflict(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()
	resource := GivenRegisteredResource(t, ctx, store, GivenUniqueID(t))
	staleState, err := store.Query(ctx, resource.ID)
	require.NoError(t, err)
	GivenReservation(t, ctx, store, resource.ID, 1, 3, reservation.StatusPending) // concurrent commit

	// act
	err = store.Commit(
		ctx,
		resource.ID,
		staleState.Version,
		reservation.Insert(FixtureReservation(t, resource.ID, 5, 7, reservation.StatusPending, 0)),
	)

	// assert
	assert.ErrorIs(t, err, reservation.ErrConcurrencyConflict)
	state, queryErr := store.Query(ctx, resource.ID)
	require.NoError(t, queryErr)
	assert.Len(t, state.Reservations, 1)
}

func Test_Commit_AppliesStatusChangesAndDeletesAtomically(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()
	resource := GivenRegisteredResource(t, ctx, store, GivenUniqueID(t))
	a := GivenReservation(t, ctx, store, resource.ID, 1, 5, reservation.StatusPending)
	b := GivenReservation(t, ctx, store, resource.ID, 3, 7, reservation.StatusPending)
	c := GivenReservation(t, ctx, store, resource.ID, 10, 12, reservation.StatusPending)
	state, err := store.Query(ctx, resource.ID)
	require.NoError(t, err)

	changes := reservation.Transition(reservation.StatusApproved, a).
		And(reservation.Transition(reservation.StatusRejected, b)).
		And(reservation.Delete(c.ID))

	// act
	err = store.Commit(ctx, resource.ID, state.Version, changes)

	// assert
	require.NoError(t, err)
	approved, _, err := store.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusApproved, approved.Status)
	rejected, _, err := store.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusRejected, rejected.Status)
	_, _, err = store.Get(ctx, c.ID)
	assert.ErrorIs(t, err, reservation.ErrNotFound)
}

func Test_Commit_WithStatusChangeFromWrongStatus_ChangesNothing(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()
	resource := GivenRegisteredResource(t, ctx, store, GivenUniqueID(t))
	a := GivenReservation(t, ctx, store, resource.ID, 1, 5, reservation.StatusRejected)
	b := GivenReservation(t, ctx, store, resource.ID, 6, 7, reservation.StatusPending)
	state, err := store.Query(ctx, resource.ID)
	require.NoError(t, err)

	changes := reservation.Transition(reservation.StatusApproved, b).
		And(reservation.Changes{StatusChanges: []reservation.StatusChange{
			{ReservationID: a.ID, From: reservation.StatusPending, To: reservation.StatusApproved},
		}})

	// act
	err = store.Commit(ctx, resource.ID, state.Version, changes)

	// assert
	assert.ErrorIs(t, err, reservation.ErrConcurrencyConflict)
	unchanged, _, getErr := store.Get(ctx, b.ID)
	require.NoError(t, getErr)
	assert.Equal(t, reservation.StatusPending, unchanged.Status)
}

func Test_Commit_WithoutChanges_Fails(t *testing.T) {
	// arrange
	store := memoryengine.NewStore()

	// act
	err := store.Commit(context.Background(), GivenUniqueID(t), 0, reservation.Changes{})

	// assert
	assert.ErrorIs(t, err, reservation.ErrNothingToCommit)
}

func Test_Commit_Concurrently_OnlyOneWinsPerVersion(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()
	resource := GivenRegisteredResource(t, ctx, store, GivenUniqueID(t))
	const writers = 20

	var wg sync.WaitGroup
	results := make(chan error, writers)

	// act
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			candidate := FixtureReservation(t, resource.ID, 1, 2, reservation.StatusPending, time.Duration(i)*time.Second)
			results <- store.Commit(ctx, resource.ID, 0, reservation.Insert(candidate))
		}(i)
	}

	wg.Wait()
	close(results)

	// assert
	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, reservation.ErrConcurrencyConflict)
	}

	assert.Equal(t, 1, succeeded)
}

func Test_ResourceOf_UnknownReservation_IsNotFound(t *testing.T) {
	// arrange
	store := memoryengine.NewStore()

	// act
	_, err := store.ResourceOf(context.Background(), GivenUniqueID(t))

	// assert
	assert.ErrorIs(t, err, reservation.ErrNotFound)
}

func Test_RegisterResource_Twice_FailsWithConcurrencyConflict(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()
	resource := GivenRegisteredResource(t, ctx, store, GivenUniqueID(t))

	// act
	err := store.RegisterResource(ctx, reservation.Resource{ID: resource.ID, OwnerID: GivenUniqueID(t)})

	// assert
	assert.ErrorIs(t, err, reservation.ErrConcurrencyConflict)
	state, queryErr := store.Query(ctx, resource.ID)
	require.NoError(t, queryErr)
	assert.Equal(t, resource.OwnerID, state.Resource.OwnerID)
}

func Test_List_FiltersAndOrdersNewestFirst(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()
	ownerID := GivenUniqueID(t)
	resource := GivenRegisteredResource(t, ctx, store, ownerID)
	otherResource := GivenRegisteredResource(t, ctx, store, GivenUniqueID(t))
	older := FixtureReservation(t, resource.ID, 1, 3, reservation.StatusPending, time.Minute)
	newer := FixtureReservation(t, resource.ID, 5, 7, reservation.StatusApproved, time.Hour)
	elsewhere := FixtureReservation(t, otherResource.ID, 1, 3, reservation.StatusPending, 2*time.Hour)
	GivenReservations(t, ctx, store, resource.ID, older, newer)
	GivenReservations(t, ctx, store, otherResource.ID, elsewhere)

	testCases := []struct {
		name     string
		filter   reservation.ListFilter
		expected []uuid.UUID
	}{
		{name: "for resource", filter: reservation.ForResource(resource.ID), expected: []uuid.UUID{newer.ID, older.ID}},
		{name: "for resource with status", filter: reservation.ForResource(resource.ID).WithStatus(reservation.StatusPending), expected: []uuid.UUID{older.ID}},
		{name: "for owner", filter: reservation.ForOwner(ownerID), expected: []uuid.UUID{newer.ID, older.ID}},
		{name: "for requester", filter: reservation.ForRequester(elsewhere.RequesterID), expected: []uuid.UUID{elsewhere.ID}},
		{name: "all", filter: reservation.AllReservations(), expected: []uuid.UUID{elsewhere.ID, newer.ID, older.ID}},
		{name: "starting before", filter: reservation.AllReservations().StartingBefore(Day(5)), expected: []uuid.UUID{elsewhere.ID, older.ID}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			listed, err := store.List(ctx, tc.filter)

			// assert
			require.NoError(t, err)
			assert.Equal(t, tc.expected, listed.IDs())
		})
	}
}

func Test_Commit_LogsConcurrencyConflict(t *testing.T) {
	// arrange
	ctx := context.Background()
	logger := testdoubles.NewLoggerSpy(true)
	store := memoryengine.NewStore(memoryengine.WithContextualLogger(logger))
	resource := GivenRegisteredResource(t, ctx, store, GivenUniqueID(t))

	// act
	err := store.Commit(ctx, resource.ID, 7, reservation.Insert(FixtureReservation(t, resource.ID, 1, 2, reservation.StatusPending, 0)))

	// assert
	assert.ErrorIs(t, err, reservation.ErrConcurrencyConflict)
	assert.True(t, logger.HasInfoLog("reservationstore operation: concurrency conflict detected"))
	assert.True(t, logger.HasContextualLog(testdoubles.LevelInfo, "reservationstore operation: resource registered"))
}
