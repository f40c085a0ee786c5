package memoryengine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/staybook/reservation-engine/reservation"
)

const (
	logMsgChangesCommitted    = "reservationstore operation: changes committed"
	logMsgConcurrencyConflict = "reservationstore operation: concurrency conflict detected"
	logMsgResourceRegistered  = "reservationstore operation: resource registered"
	logAttrResourceID         = "resource_id"
	logAttrChangeCount        = "change_count"
	logAttrExpectedVersion    = "expected_version"
	logAttrActualVersion      = "actual_version"
)

// Store keeps resources and reservations in process memory.
// It honors the same contract as the postgres engine, including the per resource version check on Commit.
type Store struct {
	mu            sync.RWMutex
	resources     map[uuid.UUID]reservation.ResourceState
	reservationOf map[uuid.UUID]uuid.UUID // reservation id -> resource id
	logger        reservation.ContextualLogger
}

// Option defines a functional option for configuring Store.
type Option func(*Store)

// WithContextualLogger sets the logger for commits and concurrency conflicts.
func WithContextualLogger(logger reservation.ContextualLogger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates an empty Store.
func NewStore(options ...Option) *Store {
	s := &Store{
		resources:     make(map[uuid.UUID]reservation.ResourceState),
		reservationOf: make(map[uuid.UUID]uuid.UUID),
	}

	for _, option := range options {
		option(s)
	}

	return s
}

// Query returns a copy of the state of the resource. An unknown resource yields a state for which Exists() is false.
func (s *Store) Query(ctx context.Context, resourceID uuid.UUID) (reservation.ResourceState, error) {
	if err := ctx.Err(); err != nil {
		return reservation.ResourceState{}, errors.Join(reservation.ErrQueryingFailed, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.resources[resourceID]
	if !ok {
		return reservation.ResourceState{}, nil
	}

	return copyState(state), nil
}

// ResourceOf returns the id of the resource a reservation belongs to.
func (s *Store) ResourceOf(ctx context.Context, reservationID uuid.UUID) (uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, errors.Join(reservation.ErrQueryingFailed, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	resourceID, ok := s.reservationOf[reservationID]
	if !ok {
		return uuid.Nil, notFound(reservationID)
	}

	return resourceID, nil
}

// Get returns one reservation together with the resource it belongs to.
func (s *Store) Get(ctx context.Context, reservationID uuid.UUID) (reservation.Reservation, reservation.Resource, error) {
	if err := ctx.Err(); err != nil {
		return reservation.Reservation{}, reservation.Resource{}, errors.Join(reservation.ErrQueryingFailed, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	resourceID, ok := s.reservationOf[reservationID]
	if !ok {
		return reservation.Reservation{}, reservation.Resource{}, notFound(reservationID)
	}

	state := s.resources[resourceID]

	r, found := state.Find(reservationID)
	if !found {
		return reservation.Reservation{}, reservation.Resource{}, notFound(reservationID)
	}

	return r, state.Resource, nil
}

// List returns the reservations matching filter, newest request first.
func (s *Store) List(ctx context.Context, filter reservation.ListFilter) (reservation.Reservations, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(reservation.ErrQueryingFailed, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(reservation.Reservations, 0)

	for _, state := range s.resources {
		for _, r := range state.Reservations {
			if filter.Matches(r, state.Resource.OwnerID) {
				out = append(out, r)
			}
		}
	}

	out.SortByRequestedAtDesc()

	return out, nil
}

// Commit applies changes if the version of the resource still equals expectedVersion.
func (s *Store) Commit(
	ctx context.Context,
	resourceID uuid.UUID,
	expectedVersion reservation.VersionInt64,
	changes reservation.Changes,
) error {

	if changes.IsEmpty() {
		return reservation.ErrNothingToCommit
	}

	if err := ctx.Err(); err != nil {
		return errors.Join(reservation.ErrCommittingChangesFailed, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.resources[resourceID]
	if !ok || state.Version != expectedVersion {
		s.log(ctx, logMsgConcurrencyConflict,
			logAttrResourceID, resourceID.String(),
			logAttrExpectedVersion, expectedVersion,
			logAttrActualVersion, state.Version,
		)

		return reservation.ErrConcurrencyConflict
	}

	if err := s.guardChanges(state, changes); err != nil {
		return err
	}

	next := state.Apply(changes)
	s.resources[resourceID] = next

	for _, r := range changes.Inserts {
		s.reservationOf[r.ID] = resourceID
	}

	for _, id := range changes.Deletes {
		delete(s.reservationOf, id)
	}

	s.log(ctx, logMsgChangesCommitted,
		logAttrResourceID, resourceID.String(),
		logAttrChangeCount, changes.Count(),
	)

	return nil
}

// guardChanges rejects changes the current state contradicts, mirroring the row count checks of the postgres engine.
func (s *Store) guardChanges(state reservation.ResourceState, changes reservation.Changes) error {
	for _, r := range changes.Inserts {
		if _, taken := s.reservationOf[r.ID]; taken {
			return errors.Join(reservation.ErrCommittingChangesFailed, fmt.Errorf("reservation %s already exists", r.ID))
		}
	}

	for _, sc := range changes.StatusChanges {
		current, found := state.Find(sc.ReservationID)
		if !found || current.Status != sc.From {
			return reservation.ErrConcurrencyConflict
		}
	}

	for _, id := range changes.Deletes {
		if _, found := state.Find(id); !found {
			return reservation.ErrConcurrencyConflict
		}
	}

	return nil
}

// RegisterResource stores a new resource with version zero.
// If the resource already exists nothing changes and ErrConcurrencyConflict is returned.
func (s *Store) RegisterResource(ctx context.Context, resource reservation.Resource) error {
	if err := ctx.Err(); err != nil {
		return errors.Join(reservation.ErrCommittingChangesFailed, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.resources[resource.ID]; exists {
		return reservation.ErrConcurrencyConflict
	}

	s.resources[resource.ID] = reservation.ResourceState{
		Resource:     resource,
		Reservations: reservation.Reservations{},
	}

	s.log(ctx, logMsgResourceRegistered, logAttrResourceID, resource.ID.String())

	return nil
}

func (s *Store) log(ctx context.Context, msg string, args ...any) {
	if s.logger != nil {
		s.logger.InfoContext(ctx, msg, args...)
	}
}

func copyState(state reservation.ResourceState) reservation.ResourceState {
	state.Reservations = append(reservation.Reservations{}, state.Reservations...)
	return state
}

func notFound(reservationID uuid.UUID) error {
	return errors.Join(reservation.ErrNotFound, fmt.Errorf("reservation %s does not exist", reservationID))
}
