package expirestalereservations

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/staybook/reservation-engine/booking/shared/shell"
	"github.com/staybook/reservation-engine/reservation"
)

const (
	defaultConcurrency = 4
)

// Store defines the interface needed by the CommandHandler for reservation store operations.
type Store interface {
	List(ctx context.Context, filter reservation.ListFilter) (reservation.Reservations, error)
	Query(ctx context.Context, resourceID uuid.UUID) (reservation.ResourceState, error)
	Commit(
		ctx context.Context,
		resourceID uuid.UUID,
		expectedVersion reservation.VersionInt64,
		changes reservation.Changes,
	) error
}

// CommandHandler finds the resources with stale Pending reservations and runs Query -> Decide -> Commit
// for each of them. Resources are processed concurrently, each one with its own retry loop.
type CommandHandler struct {
	store        Store
	retryOptions []shell.RetryOption
	concurrency  int
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for each resource.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// WithConcurrency limits how many resources are processed at the same time. Values below 1 are ignored.
func WithConcurrency(n int) Option {
	return func(h *CommandHandler) {
		if n > 0 {
			h.concurrency = n
		}
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store Store, opts ...Option) CommandHandler {
	handler := CommandHandler{
		store:       store,
		concurrency: defaultConcurrency,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle rejects all stale Pending reservations. HandlerResult.Affected is the number rejected,
// the retry metadata is summed over all resources.
// The first failing resource cancels the remaining ones, commits that already happened stay.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	candidates, err := h.store.List(
		reservation.WithEventualConsistency(ctx),
		reservation.AllReservations().WithStatus(reservation.StatusPending).StartingBefore(command.Now),
	)
	if err != nil {
		return shell.NewErrorResult(shell.RetryMetrics{}), err
	}

	var (
		affected atomic.Int64
		totals   retryTotals
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(h.concurrency)

	for _, resourceID := range resourcesOf(candidates) {
		group.Go(func() error {
			var changes reservation.Changes

			retryMetrics, retryErr := shell.RetryWithExponentialBackoff(groupCtx, func(retryCtx context.Context) error {
				var execErr error
				changes, execErr = h.expireForResource(retryCtx, resourceID, command)

				return execErr
			}, h.retryOptions...)

			totals.add(retryMetrics)

			if retryErr != nil {
				return retryErr
			}

			affected.Add(int64(len(changes.StatusChanges)))

			return nil
		})
	}

	err = group.Wait()
	summary := totals.summary()

	if err != nil {
		result := shell.NewErrorResult(summary)
		result.Affected = int(affected.Load())

		return result, err
	}

	return shell.NewBulkResult(int(affected.Load()), summary), nil
}

func (h CommandHandler) expireForResource(
	ctx context.Context,
	resourceID uuid.UUID,
	command Command,
) (reservation.Changes, error) {

	ctx = reservation.WithStrongConsistency(ctx)

	state, err := h.store.Query(ctx, resourceID)
	if err != nil {
		return reservation.Changes{}, err
	}

	changes := Decide(state, command)
	if changes.IsEmpty() {
		return changes, nil
	}

	if err = h.store.Commit(ctx, resourceID, state.Version, changes); err != nil {
		return reservation.Changes{}, err
	}

	return changes, nil
}

// resourcesOf returns the distinct resource ids in order of first appearance.
func resourcesOf(rs reservation.Reservations) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(rs))
	out := make([]uuid.UUID, 0)

	for _, r := range rs {
		if _, ok := seen[r.ResourceID]; ok {
			continue
		}

		seen[r.ResourceID] = struct{}{}
		out = append(out, r.ResourceID)
	}

	return out
}
