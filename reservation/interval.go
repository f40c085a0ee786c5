package reservation

import (
	"errors"
	"time"
)

const (
	reasonCheckOutNotAfterCheckIn = "check-out must be after check-in"
	reasonCheckInInPast           = "check-in cannot be in the past"
	reasonCheckInMissing          = "check-in is missing"
	reasonCheckOutMissing         = "check-out is missing"
)

// Interval is the half-open span [CheckIn, CheckOut) a reservation claims on a resource.
type Interval struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// BuildInterval creates an Interval with UTC normalization and microsecond precision.
func BuildInterval(checkIn, checkOut time.Time) Interval {
	return Interval{
		CheckIn:  ToTimestamp(checkIn),
		CheckOut: ToTimestamp(checkOut),
	}
}

// ToTimestamp converts a time to UTC with microsecond precision, which is what Postgres stores.
func ToTimestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// Overlaps reports whether both intervals share any point in time.
// Back-to-back intervals (one ends exactly when the other starts) do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(i.CheckOut)
}

// Nights returns the number of whole days covered by the interval.
func (i Interval) Nights() int {
	return int(i.CheckOut.Sub(i.CheckIn) / (24 * time.Hour))
}

// Validate checks the interval for a new submission made at now.
func (i Interval) Validate(now time.Time) error {
	if i.CheckIn.IsZero() {
		return errors.Join(ErrValidation, errors.New(reasonCheckInMissing))
	}

	if i.CheckOut.IsZero() {
		return errors.Join(ErrValidation, errors.New(reasonCheckOutMissing))
	}

	if !i.CheckIn.Before(i.CheckOut) {
		return errors.Join(ErrValidation, errors.New(reasonCheckOutNotAfterCheckIn))
	}

	if i.CheckIn.Before(now) {
		return errors.Join(ErrValidation, errors.New(reasonCheckInInPast))
	}

	return nil
}
