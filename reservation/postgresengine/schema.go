package postgresengine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/staybook/reservation-engine/reservation"
)

const logActionCreateSchema = "create schema"

// CreateSchema creates the resources and reservations tables and their indexes if they do not exist yet.
func (s *Store) CreateSchema(ctx context.Context) error {
	for _, statement := range s.schemaStatements() {
		start := time.Now()
		_, execErr := s.db.Exec(ctx, statement)
		s.logQueryWithDuration(ctx, statement, logActionCreateSchema, time.Since(start))

		if execErr != nil {
			s.logError(ctx, logMsgDBExecFailed, execErr, logAttrQuery, statement)
			return errors.Join(reservation.ErrCommittingChangesFailed, execErr)
		}
	}

	return nil
}

func (s *Store) schemaStatements() []string {
	resources := pq.QuoteIdentifier(s.resourceTableName)
	reservations := pq.QuoteIdentifier(s.reservationTableName)
	resourceIndex := pq.QuoteIdentifier(s.reservationTableName + "_resource_status_idx")
	requesterIndex := pq.QuoteIdentifier(s.reservationTableName + "_requester_idx")
	requestedAtIndex := pq.QuoteIdentifier(s.reservationTableName + "_requested_at_idx")

	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id       uuid PRIMARY KEY,
	owner_id uuid NOT NULL,
	version  bigint NOT NULL DEFAULT 0
)`, resources),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id           uuid PRIMARY KEY,
	resource_id  uuid NOT NULL REFERENCES %s (id),
	requester_id uuid NOT NULL,
	check_in     timestamptz NOT NULL,
	check_out    timestamptz NOT NULL,
	status       text NOT NULL CHECK (status IN ('Pending', 'Approved', 'Rejected')),
	requested_at timestamptz NOT NULL,
	CHECK (check_in < check_out)
)`, reservations, resources),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (resource_id, status)`, resourceIndex, reservations),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (requester_id)`, requesterIndex, reservations),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (requested_at DESC)`, requestedAtIndex, reservations),
	}
}
