package requestreservation_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staybook/reservation-engine/booking/features/command/requestreservation"
	"github.com/staybook/reservation-engine/booking/shared/shell"
	"github.com/staybook/reservation-engine/reservation"
	"github.com/staybook/reservation-engine/reservation/memoryengine"
	. "github.com/staybook/reservation-engine/testutil/fixtures" //nolint:revive
)

func Test_CommandHandler_Handle_AdjacentAndOverlappingRequests(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()
	resource := GivenRegisteredResource(t, ctx, store, GivenUniqueID(t))
	GivenReservation(t, ctx, store, resource.ID, 1, 5, reservation.StatusApproved)

	handler := requestreservation.NewCommandHandler(store)

	// act
	adjacent, adjacentErr := handler.Handle(ctx, buildCommand(t, resource.ID, 5, 8))
	_, overlappingErr := handler.Handle(ctx, buildCommand(t, resource.ID, 4, 8))

	// assert
	require.NoError(t, adjacentErr)
	assert.Equal(t, reservation.StatusPending, adjacent.Reservation.Status)
	assert.ErrorIs(t, overlappingErr, reservation.ErrConflict)

	state, err := store.Query(ctx, resource.ID)
	require.NoError(t, err)
	assert.Len(t, state.Reservations, 2)
}

func Test_CommandHandler_Handle_UnknownResource(t *testing.T) {
	// arrange
	ctx := context.Background()
	handler := requestreservation.NewCommandHandler(memoryengine.NewStore())

	// act
	_, err := handler.Handle(ctx, buildCommand(t, GivenUniqueID(t), 1, 5))

	// assert
	assert.ErrorIs(t, err, reservation.ErrNotFound)
}

func Test_CommandHandler_Handle_RepeatedRequestIsIdempotent(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()
	resource := GivenRegisteredResource(t, ctx, store, GivenUniqueID(t))
	handler := requestreservation.NewCommandHandler(store)
	command := buildCommand(t, resource.ID, 1, 5)

	_, err := handler.Handle(ctx, command)
	require.NoError(t, err)

	// act
	result, err := handler.Handle(ctx, command)

	// assert
	require.NoError(t, err)
	assert.True(t, result.Idempotent)

	state, err := store.Query(ctx, resource.ID)
	require.NoError(t, err)
	assert.Len(t, state.Reservations, 1)
}

func Test_CommandHandler_Handle_ConcurrentOverlappingRequestsAreAllPending(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()
	resource := GivenRegisteredResource(t, ctx, store, GivenUniqueID(t))
	handler := requestreservation.NewCommandHandler(store, requestreservation.WithRetryOptions(shell.WithMaxAttempts(20)))

	const requests = 8

	var wg sync.WaitGroup
	errs := make([]error, requests)

	// act
	for i := 0; i < requests; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()
			_, errs[i] = handler.Handle(ctx, buildCommand(t, resource.ID, 1, 5))
		}(i)
	}

	wg.Wait()

	// assert
	for _, err := range errs {
		assert.NoError(t, err)
	}

	state, err := store.Query(ctx, resource.ID)
	require.NoError(t, err)
	assert.Len(t, state.Reservations.WithStatus(reservation.StatusPending), requests)
}

func Test_CommandHandler_Handle_ReservationIDUsedOnAnotherResource(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()
	first := GivenRegisteredResource(t, ctx, store, GivenUniqueID(t))
	second := GivenRegisteredResource(t, ctx, store, GivenUniqueID(t))
	handler := requestreservation.NewCommandHandler(store)

	command := buildCommand(t, first.ID, 1, 5)
	_, err := handler.Handle(ctx, command)
	require.NoError(t, err)

	reused := command
	reused.ResourceID = second.ID

	// act
	_, err = handler.Handle(ctx, reused)

	// assert
	assert.ErrorIs(t, err, reservation.ErrValidation)
	assert.Equal(t, reservation.KindValidation, reservation.KindOf(err))

	state, queryErr := store.Query(ctx, second.ID)
	require.NoError(t, queryErr)
	assert.Empty(t, state.Reservations)
}
