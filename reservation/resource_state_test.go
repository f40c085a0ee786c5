package reservation_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staybook/reservation-engine/reservation"
)

func Test_ResourceState_ConflictsWith_OnlyApprovedCount(t *testing.T) {
	// arrange
	state := givenState(t,
		givenReservation(t, 1, 5, reservation.StatusApproved),
		givenReservation(t, 3, 7, reservation.StatusPending),
		givenReservation(t, 2, 4, reservation.StatusRejected),
	)

	// act
	conflicts := state.ConflictsWith(interval(t, 4, 8), uuid.Nil)

	// assert
	require.Len(t, conflicts, 1)
	assert.Equal(t, reservation.StatusApproved, conflicts[0].Status)
}

func Test_ResourceState_ConflictsWith_AdjacentIsFree(t *testing.T) {
	// arrange
	state := givenState(t, givenReservation(t, 1, 5, reservation.StatusApproved))

	// act
	conflicts := state.ConflictsWith(interval(t, 5, 8), uuid.Nil)

	// assert
	assert.Empty(t, conflicts)
}

func Test_ResourceState_ConflictsWith_ExcludesSelf(t *testing.T) {
	// arrange
	self := givenReservation(t, 1, 5, reservation.StatusApproved)
	state := givenState(t, self)

	// act
	conflicts := state.ConflictsWith(self.Interval, self.ID)

	// assert
	assert.Empty(t, conflicts)
}

func Test_ResourceState_OverlappingPending(t *testing.T) {
	// arrange
	target := givenReservation(t, 1, 5, reservation.StatusPending)
	overlapping := givenReservation(t, 3, 7, reservation.StatusPending)
	adjacent := givenReservation(t, 5, 9, reservation.StatusPending)
	approved := givenReservation(t, 2, 3, reservation.StatusApproved)
	state := givenState(t, target, overlapping, adjacent, approved)

	// act
	pending := state.OverlappingPending(target.Interval, target.ID)

	// assert
	assert.Equal(t, []uuid.UUID{overlapping.ID}, pending.IDs())
}

func Test_ResourceState_Apply(t *testing.T) {
	// arrange
	approve := givenReservation(t, 1, 5, reservation.StatusPending)
	reject := givenReservation(t, 3, 7, reservation.StatusPending)
	remove := givenReservation(t, 10, 12, reservation.StatusPending)
	inserted := givenReservation(t, 20, 22, reservation.StatusPending)
	state := givenState(t, approve, reject, remove)

	changes := reservation.Transition(reservation.StatusApproved, approve).
		And(reservation.Transition(reservation.StatusRejected, reject)).
		And(reservation.Delete(remove.ID)).
		And(reservation.Insert(inserted))

	// act
	next := state.Apply(changes)

	// assert
	assert.Equal(t, state.Version+1, next.Version)
	assert.Len(t, next.Reservations, 3)

	got, found := next.Find(approve.ID)
	assert.True(t, found)
	assert.Equal(t, reservation.StatusApproved, got.Status)

	got, found = next.Find(reject.ID)
	assert.True(t, found)
	assert.Equal(t, reservation.StatusRejected, got.Status)

	_, found = next.Find(remove.ID)
	assert.False(t, found)

	_, found = next.Find(inserted.ID)
	assert.True(t, found)

	original, _ := state.Find(approve.ID)
	assert.Equal(t, reservation.StatusPending, original.Status, "Apply must not mutate the receiver")
}

func Test_Changes_StatusChangesByTarget(t *testing.T) {
	// arrange
	a := givenReservation(t, 1, 5, reservation.StatusPending)
	b := givenReservation(t, 3, 7, reservation.StatusPending)
	c := givenReservation(t, 4, 6, reservation.StatusPending)

	changes := reservation.Transition(reservation.StatusApproved, a).
		And(reservation.Transition(reservation.StatusRejected, b, c))

	// act
	groups := changes.StatusChangesByTarget()

	// assert
	assert.Len(t, groups, 2)
	assert.Equal(t, []uuid.UUID{a.ID}, groups[reservation.StatusChange{From: reservation.StatusPending, To: reservation.StatusApproved}])
	assert.Equal(t, []uuid.UUID{b.ID, c.ID}, groups[reservation.StatusChange{From: reservation.StatusPending, To: reservation.StatusRejected}])
	assert.Equal(t, 3, changes.Count())
}

func Test_Status_CanTransitionTo(t *testing.T) {
	assert.True(t, reservation.StatusPending.CanTransitionTo(reservation.StatusApproved))
	assert.True(t, reservation.StatusPending.CanTransitionTo(reservation.StatusRejected))
	assert.False(t, reservation.StatusPending.CanTransitionTo(reservation.StatusPending))
	assert.False(t, reservation.StatusApproved.CanTransitionTo(reservation.StatusRejected))
	assert.False(t, reservation.StatusRejected.CanTransitionTo(reservation.StatusPending))
	assert.False(t, reservation.StatusRejected.CanTransitionTo(reservation.StatusApproved))
}

func Test_ParseStatus(t *testing.T) {
	status, err := reservation.ParseStatus("Approved")
	assert.NoError(t, err)
	assert.Equal(t, reservation.StatusApproved, status)

	_, err = reservation.ParseStatus("Cancelled")
	assert.ErrorIs(t, err, reservation.ErrValidation)
	assert.ErrorIs(t, err, reservation.ErrUnknownStatus)
}

func Test_KindOf(t *testing.T) {
	conflictErr := reservation.NewConflictError(uuid.New(), "dates taken", reservation.Reservations{givenReservation(t, 1, 2, reservation.StatusApproved)})

	assert.Equal(t, reservation.KindNone, reservation.KindOf(nil))
	assert.Equal(t, reservation.KindValidation, reservation.KindOf(errors.Join(reservation.ErrValidation, errors.New("x"))))
	assert.Equal(t, reservation.KindConflict, reservation.KindOf(conflictErr))
	assert.Equal(t, reservation.KindNotFound, reservation.KindOf(reservation.ErrNotFound))
	assert.Equal(t, reservation.KindForbidden, reservation.KindOf(reservation.ErrForbidden))
	assert.Equal(t, reservation.KindInvalidState, reservation.KindOf(reservation.ErrInvalidState))
	assert.Equal(t, reservation.KindConcurrencyConflict, reservation.KindOf(reservation.ErrConcurrencyConflict))
	assert.Equal(t, reservation.KindOther, reservation.KindOf(errors.New("boom")))
	assert.ErrorContains(t, conflictErr, "dates taken")
}

func Test_ListFilter_Matches(t *testing.T) {
	// arrange
	ownerID := uuid.New()
	r := givenReservation(t, 1, 5, reservation.StatusPending)

	// act + assert
	assert.True(t, reservation.AllReservations().Matches(r, ownerID))
	assert.True(t, reservation.ForResource(r.ResourceID).Matches(r, ownerID))
	assert.False(t, reservation.ForResource(uuid.New()).Matches(r, ownerID))
	assert.True(t, reservation.ForRequester(r.RequesterID).WithStatus(reservation.StatusPending).Matches(r, ownerID))
	assert.False(t, reservation.ForRequester(r.RequesterID).WithStatus(reservation.StatusApproved).Matches(r, ownerID))
	assert.True(t, reservation.ForOwner(ownerID).Matches(r, ownerID))
	assert.False(t, reservation.ForOwner(uuid.New()).Matches(r, ownerID))
	assert.True(t, reservation.AllReservations().StartingBefore(r.Interval.CheckIn.Add(time.Second)).Matches(r, ownerID))
	assert.False(t, reservation.AllReservations().StartingBefore(r.Interval.CheckIn).Matches(r, ownerID))
}

func Test_Reservations_SortByRequestedAtDesc(t *testing.T) {
	// arrange
	older := givenReservation(t, 1, 2, reservation.StatusPending)
	newer := givenReservation(t, 3, 4, reservation.StatusPending)
	newer.RequestedAt = older.RequestedAt.Add(time.Minute)
	list := reservation.Reservations{older, newer}

	// act
	list.SortByRequestedAtDesc()

	// assert
	assert.Equal(t, []uuid.UUID{newer.ID, older.ID}, list.IDs())
}

var stateResourceID = uuid.New()

func interval(t *testing.T, fromDay, toDay int) reservation.Interval {
	t.Helper()
	return reservation.BuildInterval(
		time.Date(2030, time.January, fromDay, 0, 0, 0, 0, time.UTC),
		time.Date(2030, time.January, toDay, 0, 0, 0, 0, time.UTC),
	)
}

func givenReservation(t *testing.T, fromDay, toDay int, status reservation.Status) reservation.Reservation {
	t.Helper()
	r := reservation.BuildPendingReservation(
		uuid.New(),
		stateResourceID,
		uuid.New(),
		interval(t, fromDay, toDay),
		time.Date(2029, time.December, 1, 0, 0, 0, 0, time.UTC),
	)

	return r.WithStatus(status)
}

func givenState(t *testing.T, reservations ...reservation.Reservation) reservation.ResourceState {
	t.Helper()
	return reservation.ResourceState{
		Resource:     reservation.Resource{ID: stateResourceID, OwnerID: uuid.New()},
		Reservations: reservations,
		Version:      3,
	}
}
