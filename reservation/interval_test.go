package reservation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/staybook/reservation-engine/reservation"
)

func Test_Interval_Overlaps(t *testing.T) {
	jan := func(day int) time.Time { return time.Date(2030, time.January, day, 14, 0, 0, 0, time.UTC) }

	testCases := []struct {
		name     string
		a        reservation.Interval
		b        reservation.Interval
		expected bool
	}{
		{name: "identical", a: reservation.BuildInterval(jan(1), jan(5)), b: reservation.BuildInterval(jan(1), jan(5)), expected: true},
		{name: "partial overlap at the end", a: reservation.BuildInterval(jan(1), jan(5)), b: reservation.BuildInterval(jan(4), jan(8)), expected: true},
		{name: "partial overlap at the start", a: reservation.BuildInterval(jan(4), jan(8)), b: reservation.BuildInterval(jan(1), jan(5)), expected: true},
		{name: "containment", a: reservation.BuildInterval(jan(1), jan(10)), b: reservation.BuildInterval(jan(3), jan(4)), expected: true},
		{name: "adjacent after", a: reservation.BuildInterval(jan(1), jan(5)), b: reservation.BuildInterval(jan(5), jan(8)), expected: false},
		{name: "adjacent before", a: reservation.BuildInterval(jan(5), jan(8)), b: reservation.BuildInterval(jan(1), jan(5)), expected: false},
		{name: "disjoint", a: reservation.BuildInterval(jan(1), jan(3)), b: reservation.BuildInterval(jan(6), jan(8)), expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			got := tc.a.Overlaps(tc.b)

			// assert
			assert.Equal(t, tc.expected, got)
			assert.Equal(t, got, tc.b.Overlaps(tc.a), "overlap must be symmetric")
		})
	}
}

func Test_Interval_Validate(t *testing.T) {
	now := time.Date(2030, time.January, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name           string
		interval       reservation.Interval
		expectedReason string
	}{
		{name: "valid", interval: reservation.BuildInterval(now.Add(time.Hour), now.Add(49*time.Hour))},
		{name: "check-in equals check-out", interval: reservation.BuildInterval(now.Add(time.Hour), now.Add(time.Hour)), expectedReason: "check-out must be after check-in"},
		{name: "check-out before check-in", interval: reservation.BuildInterval(now.Add(48*time.Hour), now.Add(time.Hour)), expectedReason: "check-out must be after check-in"},
		{name: "check-in in the past", interval: reservation.BuildInterval(now.Add(-time.Hour), now.Add(24*time.Hour)), expectedReason: "check-in cannot be in the past"},
		{name: "missing check-in", interval: reservation.Interval{CheckOut: now.Add(time.Hour)}, expectedReason: "check-in is missing"},
		{name: "missing check-out", interval: reservation.Interval{CheckIn: now.Add(time.Hour)}, expectedReason: "check-out is missing"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			err := tc.interval.Validate(now)

			// assert
			if tc.expectedReason == "" {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, reservation.ErrValidation)
			assert.ErrorContains(t, err, tc.expectedReason)
		})
	}
}

func Test_Interval_Validate_CheckInAtSubmissionTimeIsAccepted(t *testing.T) {
	// arrange
	now := time.Date(2030, time.January, 1, 12, 0, 0, 0, time.UTC)
	interval := reservation.BuildInterval(now, now.Add(24*time.Hour))

	// act
	err := interval.Validate(now)

	// assert
	assert.NoError(t, err)
}

func Test_BuildInterval_NormalizesToUTCMicroseconds(t *testing.T) {
	// arrange
	berlin := time.FixedZone("CET", 3600)
	checkIn := time.Date(2030, time.March, 3, 15, 0, 0, 123456789, berlin)

	// act
	interval := reservation.BuildInterval(checkIn, checkIn.Add(48*time.Hour))

	// assert
	assert.Equal(t, time.UTC, interval.CheckIn.Location())
	assert.Equal(t, 123456000, interval.CheckIn.Nanosecond())
	assert.Equal(t, 2, interval.Nights())
}
