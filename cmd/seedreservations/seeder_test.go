package main

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staybook/reservation-engine/reservation"
	"github.com/staybook/reservation-engine/reservation/memoryengine"
	. "github.com/staybook/reservation-engine/testutil/fixtures" //nolint:revive
)

func Test_Seeder_Run_ProducesConsistentState(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()
	seeder := NewSeeder(store, rand.New(rand.NewPCG(42, 7)), FakeNow)

	// act
	stats, err := seeder.Run(ctx, 5, 30)

	// assert
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Resources)
	assert.Equal(t, 150, stats.Requested+stats.Conflicts)

	all, err := store.List(ctx, reservation.AllReservations())
	require.NoError(t, err)
	assert.Len(t, all, stats.Requested)
	assert.Len(t, all.WithStatus(reservation.StatusApproved), stats.Approved)
	assert.Len(t, all.WithStatus(reservation.StatusRejected), stats.Rejected+stats.CascadeRejected)

	approved := all.WithStatus(reservation.StatusApproved)
	for i, a := range approved {
		for _, b := range approved[i+1:] {
			if a.ResourceID == b.ResourceID {
				assert.False(t, a.Interval.Overlaps(b.Interval), "approved stays on one resource must not overlap")
			}
		}
	}
}

func Test_Seeder_Run_LeavesNoPendingOverlappingApproved(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()
	seeder := NewSeeder(store, rand.New(rand.NewPCG(1, 2)), FakeNow)

	// act
	_, err := seeder.Run(ctx, 3, 40)

	// assert
	require.NoError(t, err)

	all, err := store.List(ctx, reservation.AllReservations())
	require.NoError(t, err)

	for _, approved := range all.WithStatus(reservation.StatusApproved) {
		for _, pending := range all.WithStatus(reservation.StatusPending) {
			if approved.ResourceID == pending.ResourceID {
				assert.False(t, approved.Interval.Overlaps(pending.Interval))
			}
		}
	}
}
