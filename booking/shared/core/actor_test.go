package core_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/staybook/reservation-engine/booking/shared/core"
	"github.com/staybook/reservation-engine/reservation"
)

func Test_ParseRole(t *testing.T) {
	testCases := []struct {
		input    string
		expected core.Role
		wantErr  bool
	}{
		{input: "", expected: core.RoleMember},
		{input: "member", expected: core.RoleMember},
		{input: "admin", expected: core.RoleAdmin},
		{input: "root", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			role, err := core.ParseRole(tc.input)

			if tc.wantErr {
				assert.ErrorIs(t, err, reservation.ErrValidation)
				assert.ErrorIs(t, err, core.ErrUnknownRole)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tc.expected, role)
		})
	}
}

func Test_Actor_CanView(t *testing.T) {
	// arrange
	owner := core.BuildActor(uuid.New(), "")
	requester := core.BuildActor(uuid.New(), core.RoleMember)
	admin := core.BuildActor(uuid.New(), core.RoleAdmin)
	stranger := core.BuildActor(uuid.New(), core.RoleMember)

	resource := reservation.Resource{ID: uuid.New(), OwnerID: owner.ID}
	r := reservation.Reservation{ID: uuid.New(), ResourceID: resource.ID, RequesterID: requester.ID}

	// act + assert
	assert.True(t, owner.CanView(r, resource))
	assert.True(t, requester.CanView(r, resource))
	assert.True(t, admin.CanView(r, resource))
	assert.False(t, stranger.CanView(r, resource))
	assert.False(t, requester.Controls(resource))
}

func Test_DecisionResult_Outcomes(t *testing.T) {
	// arrange
	r := reservation.Reservation{ID: uuid.New(), Status: reservation.StatusPending}

	// act
	idempotent := core.IdempotentDecision(r)
	success := core.SuccessDecision(reservation.Transition(reservation.StatusApproved, r), r.WithStatus(reservation.StatusApproved))
	failed := core.ErrorDecision(reservation.ErrInvalidState)

	// assert
	assert.True(t, idempotent.IsIdempotent())
	assert.False(t, idempotent.HasChangesToCommit())
	assert.NoError(t, idempotent.HasError())

	assert.True(t, success.HasChangesToCommit())
	assert.Equal(t, 1, success.Changes.Count())
	assert.NoError(t, success.HasError())

	assert.False(t, failed.HasChangesToCommit())
	assert.ErrorIs(t, failed.HasError(), reservation.ErrInvalidState)
}
