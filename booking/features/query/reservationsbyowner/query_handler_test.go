package reservationsbyowner_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staybook/reservation-engine/booking/features/query/reservationsbyowner"
	"github.com/staybook/reservation-engine/booking/shared/core"
	"github.com/staybook/reservation-engine/reservation"
	"github.com/staybook/reservation-engine/reservation/memoryengine"
	. "github.com/staybook/reservation-engine/testutil/fixtures" //nolint:revive
)

func Test_QueryHandler_Handle_ListsAllResourcesOfOwner(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()
	owner := core.BuildActor(GivenUniqueID(t), core.RoleMember)
	first := GivenRegisteredResource(t, ctx, store, owner.ID)
	second := GivenRegisteredResource(t, ctx, store, owner.ID)
	foreign := GivenRegisteredResource(t, ctx, store, GivenUniqueID(t))

	GivenReservation(t, ctx, store, first.ID, 1, 3, reservation.StatusPending)
	GivenReservation(t, ctx, store, second.ID, 1, 3, reservation.StatusApproved)
	GivenReservation(t, ctx, store, foreign.ID, 1, 3, reservation.StatusPending)

	handler := reservationsbyowner.NewQueryHandler(store)

	// act
	result, err := handler.Handle(ctx, reservationsbyowner.BuildQuery(owner.ID, "", owner))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, 1, result.PendingCount)
}

func Test_QueryHandler_Handle_FiltersByStatus(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()
	owner := core.BuildActor(GivenUniqueID(t), core.RoleMember)
	resource := GivenRegisteredResource(t, ctx, store, owner.ID)
	pending := GivenReservation(t, ctx, store, resource.ID, 1, 3, reservation.StatusPending)
	GivenReservation(t, ctx, store, resource.ID, 4, 6, reservation.StatusRejected)

	handler := reservationsbyowner.NewQueryHandler(store)

	// act
	result, err := handler.Handle(ctx, reservationsbyowner.BuildQuery(owner.ID, reservation.StatusPending, owner))

	// assert
	require.NoError(t, err)
	require.Equal(t, 1, result.Count)
	assert.Equal(t, pending.ID, result.Reservations[0].ID)
}

func Test_QueryHandler_Handle_OtherMemberIsForbidden(t *testing.T) {
	// arrange
	handler := reservationsbyowner.NewQueryHandler(memoryengine.NewStore())
	stranger := core.BuildActor(GivenUniqueID(t), core.RoleMember)

	// act
	_, err := handler.Handle(context.Background(), reservationsbyowner.BuildQuery(GivenUniqueID(t), "", stranger))

	// assert
	assert.ErrorIs(t, err, reservation.ErrForbidden)
}
