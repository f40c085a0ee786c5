package registerresource_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staybook/reservation-engine/booking/features/command/registerresource"
	"github.com/staybook/reservation-engine/booking/shared/core"
	"github.com/staybook/reservation-engine/reservation"
	"github.com/staybook/reservation-engine/reservation/memoryengine"
	. "github.com/staybook/reservation-engine/testutil/fixtures" //nolint:revive
)

func Test_CommandHandler_Handle_RegistersResource(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()
	handler := registerresource.NewCommandHandler(store)
	owner := core.BuildActor(GivenUniqueID(t), core.RoleMember)
	resourceID := GivenUniqueID(t)

	// act
	result, err := handler.Handle(ctx, registerresource.BuildCommand(resourceID, owner.ID, owner))

	// assert
	require.NoError(t, err)
	assert.False(t, result.Idempotent)

	state, err := store.Query(ctx, resourceID)
	require.NoError(t, err)
	assert.True(t, state.Exists())
	assert.Equal(t, owner.ID, state.Resource.OwnerID)
}

func Test_CommandHandler_Handle_ReRegistration(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()
	handler := registerresource.NewCommandHandler(store)
	owner := core.BuildActor(GivenUniqueID(t), core.RoleMember)
	resource := GivenRegisteredResource(t, ctx, store, owner.ID)
	other := core.BuildActor(GivenUniqueID(t), core.RoleMember)

	// act
	sameOwner, sameOwnerErr := handler.Handle(ctx, registerresource.BuildCommand(resource.ID, owner.ID, owner))
	_, otherOwnerErr := handler.Handle(ctx, registerresource.BuildCommand(resource.ID, other.ID, other))

	// assert
	require.NoError(t, sameOwnerErr)
	assert.True(t, sameOwner.Idempotent)
	assert.ErrorIs(t, otherOwnerErr, reservation.ErrForbidden)
}

func Test_CommandHandler_Handle_ConcurrentRegistrationsByDifferentOwners(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()
	handler := registerresource.NewCommandHandler(store)
	resourceID := GivenUniqueID(t)
	owners := []core.Actor{
		core.BuildActor(GivenUniqueID(t), core.RoleMember),
		core.BuildActor(GivenUniqueID(t), core.RoleMember),
	}

	var wg sync.WaitGroup
	errs := make([]error, len(owners))

	// act
	for i, owner := range owners {
		wg.Add(1)

		go func(i int, owner core.Actor) {
			defer wg.Done()
			_, errs[i] = handler.Handle(ctx, registerresource.BuildCommand(resourceID, owner.ID, owner))
		}(i, owner)
	}

	wg.Wait()

	// assert
	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}

		assert.ErrorIs(t, err, reservation.ErrForbidden)
	}

	assert.Equal(t, 1, succeeded)
}
