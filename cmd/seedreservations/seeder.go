package main

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/staybook/reservation-engine/booking/features/command/approvereservation"
	"github.com/staybook/reservation-engine/booking/features/command/registerresource"
	"github.com/staybook/reservation-engine/booking/features/command/rejectreservation"
	"github.com/staybook/reservation-engine/booking/features/command/requestreservation"
	"github.com/staybook/reservation-engine/booking/shared/core"
	"github.com/staybook/reservation-engine/reservation"
)

const (
	horizonDays = 180
	maxNights   = 14
)

// SeedStore is everything the seeder writes through.
type SeedStore interface {
	requestreservation.Store
	approvereservation.Store
	registerresource.Store
}

// Stats counts what a seeding run produced.
type Stats struct {
	Resources       int
	Requested       int
	Conflicts       int
	Approved        int
	Rejected        int
	CascadeRejected int
}

// Seeder writes random but consistent reservation data through the command handlers,
// so every seeded state is one the service could have produced itself.
type Seeder struct {
	register registerresource.CommandHandler
	request  requestreservation.CommandHandler
	approve  approvereservation.CommandHandler
	reject   rejectreservation.CommandHandler
	rng      *rand.Rand
	start    time.Time
}

// NewSeeder creates a Seeder. Stays are placed within horizonDays after start, requests are made at start.
func NewSeeder(store SeedStore, rng *rand.Rand, start time.Time) *Seeder {
	return &Seeder{
		register: registerresource.NewCommandHandler(store),
		request:  requestreservation.NewCommandHandler(store),
		approve:  approvereservation.NewCommandHandler(store),
		reject:   rejectreservation.NewCommandHandler(store),
		rng:      rng,
		start:    reservation.ToTimestamp(start),
	}
}

// Run registers numResources resources and decides about requestsPerResource random requests on each.
func (s *Seeder) Run(ctx context.Context, numResources, requestsPerResource int) (Stats, error) {
	var stats Stats

	for range numResources {
		owner := core.BuildActor(uuid.New(), core.RoleMember)
		resourceID := uuid.New()

		if _, err := s.register.Handle(ctx, registerresource.BuildCommand(resourceID, owner.ID, owner)); err != nil {
			return stats, err
		}

		stats.Resources++

		pending, err := s.requestStays(ctx, resourceID, requestsPerResource, &stats)
		if err != nil {
			return stats, err
		}

		if err = s.decide(ctx, owner, pending, &stats); err != nil {
			return stats, err
		}
	}

	return stats, nil
}

func (s *Seeder) requestStays(ctx context.Context, resourceID uuid.UUID, count int, stats *Stats) ([]uuid.UUID, error) {
	pending := make([]uuid.UUID, 0, count)

	for range count {
		checkIn := s.start.AddDate(0, 0, 1+s.rng.IntN(horizonDays))
		checkOut := checkIn.AddDate(0, 0, 1+s.rng.IntN(maxNights))

		command := requestreservation.BuildCommand(uuid.New(), resourceID, uuid.New(), checkIn, checkOut, s.start)

		_, err := s.request.Handle(ctx, command)

		switch {
		case err == nil:
			stats.Requested++
			pending = append(pending, command.ReservationID)
		case errors.Is(err, reservation.ErrConflict):
			stats.Conflicts++
		default:
			return nil, err
		}
	}

	return pending, nil
}

// decide approves roughly half of the pending requests and rejects a few more.
// Approving a request already rejected by an earlier cascade is an invalid state and skipped.
func (s *Seeder) decide(ctx context.Context, owner core.Actor, pending []uuid.UUID, stats *Stats) error {
	for _, reservationID := range pending {
		roll := s.rng.IntN(100)

		switch {
		case roll < 50:
			result, err := s.approve.Handle(ctx, approvereservation.BuildCommand(reservationID, owner))
			if errors.Is(err, reservation.ErrInvalidState) {
				continue
			}

			if err != nil {
				return err
			}

			stats.Approved++
			stats.CascadeRejected += len(result.CascadeRejected)

		case roll < 65:
			result, err := s.reject.Handle(ctx, rejectreservation.BuildCommand(reservationID, owner))
			if errors.Is(err, reservation.ErrInvalidState) {
				continue
			}

			if err != nil {
				return err
			}

			if !result.Idempotent {
				stats.Rejected++
			}
		}
	}

	return nil
}
