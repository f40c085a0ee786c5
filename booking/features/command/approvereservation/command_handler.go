package approvereservation

import (
	"context"

	"github.com/google/uuid"

	"github.com/staybook/reservation-engine/booking/shared/core"
	"github.com/staybook/reservation-engine/booking/shared/shell"
	"github.com/staybook/reservation-engine/reservation"
)

// Store defines the interface needed by the CommandHandler for reservation store operations.
type Store interface {
	ResourceOf(ctx context.Context, reservationID uuid.UUID) (uuid.UUID, error)
	Query(ctx context.Context, resourceID uuid.UUID) (reservation.ResourceState, error)
	Commit(
		ctx context.Context,
		resourceID uuid.UUID,
		expectedVersion reservation.VersionInt64,
		changes reservation.Changes,
	) error
}

// CommandHandler orchestrates the command processing workflow: Query -> Decide -> Commit.
// The commit is checked against the resource version read by the query, so the conflict check,
// the approval and the cascade are one serializable step per resource.
// A concurrent change to the resource makes the commit fail and the whole workflow is retried.
type CommandHandler struct {
	store        Store
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store Store, opts ...Option) CommandHandler {
	handler := CommandHandler{
		store: store,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the command with retry on concurrency conflicts.
// The HandlerResult carries the approved reservation and the ids rejected by the cascade.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	var decision core.DecisionResult

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		decision, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	if decision.IsIdempotent() {
		return shell.NewIdempotentResult(decision, retryMetrics), nil
	}

	return shell.NewSuccessResult(decision, retryMetrics), nil
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (core.DecisionResult, error) {
	ctx = reservation.WithStrongConsistency(ctx)

	resourceID, err := h.store.ResourceOf(ctx, command.ReservationID)
	if err != nil {
		return core.DecisionResult{}, err
	}

	state, err := h.store.Query(ctx, resourceID)
	if err != nil {
		return core.DecisionResult{}, err
	}

	decision := Decide(state, command)

	if decisionErr := decision.HasError(); decisionErr != nil {
		return decision, decisionErr
	}

	if !decision.HasChangesToCommit() {
		return decision, nil
	}

	if err = h.store.Commit(ctx, resourceID, state.Version, decision.Changes); err != nil {
		return decision, err
	}

	return decision, nil
}
