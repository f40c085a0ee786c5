package main

import (
	"context"

	"github.com/staybook/reservation-engine/booking/features/command/expirestalereservations"
	"github.com/staybook/reservation-engine/booking/httpapi"
	"github.com/staybook/reservation-engine/booking/jobs"
)

// newSweepScheduler builds the scheduler of the stale pending sweep, or returns nil when the sweep is disabled.
// The sweep rejects Pending reservations without an owner decision, so it only runs when asked for.
func newSweepScheduler(
	s settings,
	store expirestalereservations.Store,
	obs httpapi.Observability,
) (*jobs.Scheduler, error) {

	if !s.SweepEnabled() {
		return nil, nil
	}

	sweeper, err := httpapi.ObserveCommand[expirestalereservations.Command](
		expirestalereservations.NewCommandHandler(store),
		obs,
	)
	if err != nil {
		return nil, err
	}

	return jobs.NewScheduler(sweeper, s.SweepSchedule, jobs.WithContextualLogger(obs.Logger))
}

func stopScheduler(ctx context.Context, scheduler *jobs.Scheduler) error {
	if scheduler == nil {
		return nil
	}

	return scheduler.Stop(ctx)
}
