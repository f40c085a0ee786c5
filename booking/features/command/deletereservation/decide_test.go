package deletereservation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staybook/reservation-engine/booking/features/command/deletereservation"
	"github.com/staybook/reservation-engine/booking/shared/core"
	"github.com/staybook/reservation-engine/reservation"
	. "github.com/staybook/reservation-engine/testutil/fixtures" //nolint:revive
)

func Test_Decide_AdminRemovesReservationInAnyStatus(t *testing.T) {
	statuses := []reservation.Status{reservation.StatusPending, reservation.StatusApproved, reservation.StatusRejected}

	for _, status := range statuses {
		t.Run(status.String(), func(t *testing.T) {
			// arrange
			resourceID := GivenUniqueID(t)
			r := FixtureReservation(t, resourceID, 1, 5, status, 0)
			state := reservation.ResourceState{
				Resource:     reservation.Resource{ID: resourceID, OwnerID: GivenUniqueID(t)},
				Reservations: reservation.Reservations{r},
			}
			admin := core.BuildActor(GivenUniqueID(t), core.RoleAdmin)

			// act
			result := deletereservation.Decide(state, deletereservation.BuildCommand(r.ID, admin))

			// assert
			require.NoError(t, result.HasError())
			assert.Equal(t, reservation.Delete(r.ID), result.Changes)
			assert.Equal(t, r, result.Reservation)
		})
	}
}

func Test_Decide_Forbidden_ForNonAdmins(t *testing.T) {
	// arrange
	ownerID := GivenUniqueID(t)
	resourceID := GivenUniqueID(t)
	r := FixtureReservation(t, resourceID, 1, 5, reservation.StatusApproved, 0)
	state := reservation.ResourceState{
		Resource:     reservation.Resource{ID: resourceID, OwnerID: ownerID},
		Reservations: reservation.Reservations{r},
	}

	for _, actor := range []core.Actor{core.BuildActor(ownerID, ""), core.BuildActor(r.RequesterID, "")} {
		// act
		result := deletereservation.Decide(state, deletereservation.BuildCommand(r.ID, actor))

		// assert
		assert.ErrorIs(t, result.HasError(), reservation.ErrForbidden)
		assert.True(t, result.Changes.IsEmpty())
	}
}

func Test_Decide_NotFound_ChecksAdminFirst(t *testing.T) {
	// arrange
	state := reservation.ResourceState{Resource: reservation.Resource{ID: GivenUniqueID(t), OwnerID: GivenUniqueID(t)}}
	unknownID := GivenUniqueID(t)

	// act
	asAdmin := deletereservation.Decide(state, deletereservation.BuildCommand(unknownID, core.BuildActor(GivenUniqueID(t), core.RoleAdmin)))
	asMember := deletereservation.Decide(state, deletereservation.BuildCommand(unknownID, core.BuildActor(GivenUniqueID(t), "")))

	// assert
	assert.ErrorIs(t, asAdmin.HasError(), reservation.ErrNotFound)
	assert.ErrorIs(t, asMember.HasError(), reservation.ErrForbidden)
}
