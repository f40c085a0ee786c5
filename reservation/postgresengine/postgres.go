package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/staybook/reservation-engine/reservation"
	"github.com/staybook/reservation-engine/reservation/postgresengine/internal/adapters"
)

const (
	defaultReservationTableName  = "reservations"
	defaultResourceTableName     = "resources"
	logMsgBuildSelectQueryFailed = "failed to build select query"
	logMsgBuildCommitQueryFailed = "failed to build commit statement"
	logMsgDBQueryFailed          = "database query execution failed"
	logMsgDBExecFailed           = "database execution failed during commit"
	logMsgBeginTxFailed          = "failed to begin transaction"
	logMsgCommitTxFailed         = "failed to commit transaction"
	logMsgRollbackFailed         = "failed to roll back transaction"
	logMsgCloseRowsFailed        = "failed to close database rows"
	logMsgScanRowFailed          = "failed to scan database row"
	logMsgRowsAffectedFailed     = "failed to get rows affected count"
	logMsgQueryCompleted         = "query completed"
	logMsgListCompleted          = "list completed"
	logMsgChangesCommitted       = "changes committed"
	logMsgResourceRegistered     = "resource registered"
	logMsgConcurrencyConflict    = "concurrency conflict detected"
	logMsgSQLExecuted            = "executed sql for: "
	logMsgOperation              = "reservationstore operation: "
	logAttrError                 = "error"
	logAttrQuery                 = "query"
	logAttrResourceID            = "resource_id"
	logAttrReservationCount      = "reservation_count"
	logAttrChangeCount           = "change_count"
	logAttrDurationMS            = "duration_ms"
	logAttrExpectedVersion       = "expected_version"
	logAttrExpectedRows          = "expected_rows"
	logAttrRowsAffected          = "rows_affected"
	logActionQuery               = "query"
	logActionList                = "list"
	logActionVersionCheck        = "version check"
	logActionInsert              = "insert"
	logActionUpdateStatus        = "update status"
	logActionDelete              = "delete"
	logActionRegister            = "register resource"
	colID                        = "id"
	colResourceID                = "resource_id"
	colRequesterID               = "requester_id"
	colCheckIn                   = "check_in"
	colCheckOut                  = "check_out"
	colStatus                    = "status"
	colRequestedAt               = "requested_at"
	colOwnerID                   = "owner_id"
	colVersion                   = "version"
	aliasReservation             = "rv"
	aliasResource                = "rs"
	dialectPostgres              = "postgres"
)

type (
	sqlQueryString    = string
	sqlArgs           = []any
	rowsAffectedInt64 = int64
)

// Store persists resources and their reservations in PostgreSQL.
//
// Every committed unit of work first compare-and-swaps the version of the resource row,
// so concurrent decisions on one resource are serialized while different resources never block each other.
type Store struct {
	db                   adapters.DBAdapter
	reservationTableName string
	resourceTableName    string
	logger               reservation.Logger
	metricsCollector     reservation.MetricsCollector
	tracingCollector     reservation.TracingCollector
	contextualLogger     reservation.ContextualLogger
}

type reservationRow struct {
	id          uuid.UUID
	resourceID  uuid.UUID
	requesterID uuid.UUID
	checkIn     time.Time
	checkOut    time.Time
	status      string
	requestedAt time.Time
}

// NewStoreFromPGXPool creates a new Store using a pgx Pool with optional configuration.
func NewStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (*Store, error) {
	if db == nil {
		return nil, reservation.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapter(db), options...)
}

// NewStoreFromPGXPoolWithReplica creates a new Store that sends eventually consistent reads to the replica.
func NewStoreFromPGXPoolWithReplica(db *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (*Store, error) {
	if db == nil || replica == nil {
		return nil, reservation.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapterWithReplica(db, replica), options...)
}

// NewStoreFromSQLDB creates a new Store using a sql.DB with optional configuration.
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, reservation.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), options...)
}

// NewStoreFromSQLDBWithReplica creates a new Store that sends eventually consistent reads to the replica.
func NewStoreFromSQLDBWithReplica(db *sql.DB, replica *sql.DB, options ...Option) (*Store, error) {
	if db == nil || replica == nil {
		return nil, reservation.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapterWithReplica(db, replica), options...)
}

// NewStoreFromSQLX creates a new Store using a sqlx.DB with optional configuration.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, reservation.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapter(db), options...)
}

// NewStoreFromSQLXWithReplica creates a new Store that sends eventually consistent reads to the replica.
func NewStoreFromSQLXWithReplica(db *sqlx.DB, replica *sqlx.DB, options ...Option) (*Store, error) {
	if db == nil || replica == nil {
		return nil, reservation.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapterWithReplica(db, replica), options...)
}

func newStore(db adapters.DBAdapter, options ...Option) (*Store, error) {
	s := &Store{
		db:                   db,
		reservationTableName: defaultReservationTableName,
		resourceTableName:    defaultResourceTableName,
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Query reads the resource row and all of its reservations.
//
// The version is read before the reservations, so a commit racing with this read can only make the
// returned version stale, which the version check of the following Commit detects.
// An unknown resource yields a ResourceState for which Exists() is false.
func (s *Store) Query(ctx context.Context, resourceID uuid.UUID) (reservation.ResourceState, error) {
	tracer, ctx := s.startQueryTracing(ctx, operationQuery, resourceID)
	metrics := s.startQueryMetrics(ctx, operationQuery)
	start := time.Now()

	state, err := s.queryResourceState(ctx, resourceID)
	duration := time.Since(start)

	if err != nil {
		errorType := errorTypeFor(ctx, err)
		tracer.finishError(errorType, duration)
		metrics.recordError(errorType, duration)

		return reservation.ResourceState{}, err
	}

	tracer.finishSuccess(len(state.Reservations), state.Version, duration)
	metrics.recordSuccess(len(state.Reservations), duration)

	s.logOperation(ctx, logMsgQueryCompleted,
		logAttrResourceID, resourceID.String(),
		logAttrReservationCount, len(state.Reservations),
		logAttrDurationMS, s.toMilliseconds(duration),
	)

	return state, nil
}

func (s *Store) queryResourceState(ctx context.Context, resourceID uuid.UUID) (reservation.ResourceState, error) {
	resource, version, found, err := s.queryResource(ctx, resourceID)
	if err != nil {
		return reservation.ResourceState{}, err
	}

	if !found {
		return reservation.ResourceState{}, nil
	}

	sqlQuery, args, err := s.buildSelectReservationsQuery(reservation.ForResource(resourceID))
	if err != nil {
		s.logError(ctx, logMsgBuildSelectQueryFailed, err)
		return reservation.ResourceState{}, err
	}

	reservations, err := s.queryReservations(ctx, sqlQuery, args, logActionQuery)
	if err != nil {
		return reservation.ResourceState{}, err
	}

	return reservation.ResourceState{
		Resource:     resource,
		Reservations: reservations,
		Version:      version,
	}, nil
}

func (s *Store) queryResource(ctx context.Context, resourceID uuid.UUID) (reservation.Resource, reservation.VersionInt64, bool, error) {
	sqlQuery, args, toSQLErr := goqu.Dialect(dialectPostgres).
		From(s.resourceTableName).
		Prepared(true).
		Select(colID, colOwnerID, colVersion).
		Where(goqu.C(colID).Eq(resourceID.String())).
		ToSQL()

	if toSQLErr != nil {
		s.logError(ctx, logMsgBuildSelectQueryFailed, toSQLErr)
		return reservation.Resource{}, 0, false, errors.Join(reservation.ErrBuildingQueryFailed, toSQLErr)
	}

	rows, err := s.executeQuery(ctx, sqlQuery, args, logActionQuery)
	if err != nil {
		return reservation.Resource{}, 0, false, err
	}
	defer s.closeRows(ctx, rows)

	var resource reservation.Resource
	var version reservation.VersionInt64

	if !rows.Next() {
		if rowsErr := rows.Err(); rowsErr != nil {
			return reservation.Resource{}, 0, false, errors.Join(reservation.ErrQueryingFailed, rowsErr)
		}

		return reservation.Resource{}, 0, false, nil
	}

	if scanErr := rows.Scan(&resource.ID, &resource.OwnerID, &version); scanErr != nil {
		s.logError(ctx, logMsgScanRowFailed, scanErr)
		return reservation.Resource{}, 0, false, errors.Join(reservation.ErrScanningDBRowFailed, scanErr)
	}

	return resource, version, true, nil
}

// ResourceOf returns the id of the resource a reservation belongs to.
func (s *Store) ResourceOf(ctx context.Context, reservationID uuid.UUID) (uuid.UUID, error) {
	sqlQuery, args, toSQLErr := goqu.Dialect(dialectPostgres).
		From(s.reservationTableName).
		Prepared(true).
		Select(colResourceID).
		Where(goqu.C(colID).Eq(reservationID.String())).
		ToSQL()

	if toSQLErr != nil {
		s.logError(ctx, logMsgBuildSelectQueryFailed, toSQLErr)
		return uuid.Nil, errors.Join(reservation.ErrBuildingQueryFailed, toSQLErr)
	}

	rows, err := s.executeQuery(ctx, sqlQuery, args, logActionQuery)
	if err != nil {
		return uuid.Nil, err
	}
	defer s.closeRows(ctx, rows)

	if !rows.Next() {
		if rowsErr := rows.Err(); rowsErr != nil {
			return uuid.Nil, errors.Join(reservation.ErrQueryingFailed, rowsErr)
		}

		return uuid.Nil, errors.Join(reservation.ErrNotFound, fmt.Errorf("reservation %s does not exist", reservationID))
	}

	var resourceID uuid.UUID
	if scanErr := rows.Scan(&resourceID); scanErr != nil {
		s.logError(ctx, logMsgScanRowFailed, scanErr)
		return uuid.Nil, errors.Join(reservation.ErrScanningDBRowFailed, scanErr)
	}

	return resourceID, nil
}

// Get returns one reservation together with the resource it belongs to.
func (s *Store) Get(ctx context.Context, reservationID uuid.UUID) (reservation.Reservation, reservation.Resource, error) {
	sqlQuery, args, toSQLErr := s.selectReservationsJoined().
		Where(goqu.I(aliasReservation + "." + colID).Eq(reservationID.String())).
		ToSQL()

	if toSQLErr != nil {
		s.logError(ctx, logMsgBuildSelectQueryFailed, toSQLErr)
		return reservation.Reservation{}, reservation.Resource{}, errors.Join(reservation.ErrBuildingQueryFailed, toSQLErr)
	}

	rows, err := s.executeQuery(ctx, sqlQuery, args, logActionQuery)
	if err != nil {
		return reservation.Reservation{}, reservation.Resource{}, err
	}
	defer s.closeRows(ctx, rows)

	if !rows.Next() {
		if rowsErr := rows.Err(); rowsErr != nil {
			return reservation.Reservation{}, reservation.Resource{}, errors.Join(reservation.ErrQueryingFailed, rowsErr)
		}

		return reservation.Reservation{}, reservation.Resource{},
			errors.Join(reservation.ErrNotFound, fmt.Errorf("reservation %s does not exist", reservationID))
	}

	r, ownerID, scanErr := s.scanReservation(ctx, rows)
	if scanErr != nil {
		return reservation.Reservation{}, reservation.Resource{}, scanErr
	}

	return r, reservation.Resource{ID: r.ResourceID, OwnerID: ownerID}, nil
}

// List returns the reservations matching filter, newest request first.
// Reads honor the consistency level of the context, so eventual consistency may be served by a replica.
func (s *Store) List(ctx context.Context, filter reservation.ListFilter) (reservation.Reservations, error) {
	tracer, ctx := s.startQueryTracing(ctx, operationList, filter.ResourceID)
	metrics := s.startQueryMetrics(ctx, operationList)
	start := time.Now()

	sqlQuery, args, err := s.buildSelectReservationsQuery(filter)
	if err != nil {
		s.logError(ctx, logMsgBuildSelectQueryFailed, err)
		tracer.finishError(errorTypeBuildQuery, 0)
		metrics.recordError(errorTypeBuildQuery, 0)

		return nil, err
	}

	reservations, err := s.queryReservations(ctx, sqlQuery, args, logActionList)
	duration := time.Since(start)

	if err != nil {
		errorType := errorTypeFor(ctx, err)
		tracer.finishError(errorType, duration)
		metrics.recordError(errorType, duration)

		return nil, err
	}

	tracer.finishSuccess(len(reservations), 0, duration)
	metrics.recordSuccess(len(reservations), duration)

	s.logOperation(ctx, logMsgListCompleted,
		logAttrReservationCount, len(reservations),
		logAttrDurationMS, s.toMilliseconds(duration),
	)

	return reservations, nil
}

func (s *Store) queryReservations(ctx context.Context, sqlQuery string, args sqlArgs, action string) (reservation.Reservations, error) {
	rows, err := s.executeQuery(ctx, sqlQuery, args, action)
	if err != nil {
		return nil, err
	}
	defer s.closeRows(ctx, rows)

	reservations := make(reservation.Reservations, 0)

	for rows.Next() {
		r, _, scanErr := s.scanReservation(ctx, rows)
		if scanErr != nil {
			return nil, scanErr
		}

		reservations = append(reservations, r)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, errors.Join(reservation.ErrQueryingFailed, rowsErr)
	}

	return reservations, nil
}

func (s *Store) scanReservation(ctx context.Context, rows adapters.DBRows) (reservation.Reservation, uuid.UUID, error) {
	var row reservationRow
	var ownerID uuid.UUID

	scanErr := rows.Scan(
		&row.id, &row.resourceID, &row.requesterID,
		&row.checkIn, &row.checkOut, &row.status, &row.requestedAt,
		&ownerID,
	)
	if scanErr != nil {
		s.logError(ctx, logMsgScanRowFailed, scanErr)
		return reservation.Reservation{}, uuid.Nil, errors.Join(reservation.ErrScanningDBRowFailed, scanErr)
	}

	status, parseErr := reservation.ParseStatus(row.status)
	if parseErr != nil {
		s.logError(ctx, logMsgScanRowFailed, parseErr)
		return reservation.Reservation{}, uuid.Nil, errors.Join(reservation.ErrScanningDBRowFailed, parseErr)
	}

	return reservation.Reservation{
		ID:          row.id,
		ResourceID:  row.resourceID,
		RequesterID: row.requesterID,
		Interval:    reservation.BuildInterval(row.checkIn, row.checkOut),
		Status:      status,
		RequestedAt: reservation.ToTimestamp(row.requestedAt),
	}, ownerID, nil
}

// Commit applies changes to the reservations of one resource in a single transaction.
//
// The first statement increments the resource version if and only if it still equals expectedVersion.
// If it does not, nothing is written and ErrConcurrencyConflict is returned, so the caller can reload and decide again.
func (s *Store) Commit(
	ctx context.Context,
	resourceID uuid.UUID,
	expectedVersion reservation.VersionInt64,
	changes reservation.Changes,
) error {

	if changes.IsEmpty() {
		return reservation.ErrNothingToCommit
	}

	tracer, ctx := s.startCommitTracing(ctx, resourceID, expectedVersion, changes)
	metrics := s.startCommitMetrics(ctx)
	start := time.Now()

	err := s.commitInTransaction(ctx, resourceID, expectedVersion, changes)
	duration := time.Since(start)

	if err != nil {
		if errors.Is(err, reservation.ErrConcurrencyConflict) {
			s.logOperation(ctx, logMsgConcurrencyConflict,
				logAttrResourceID, resourceID.String(),
				logAttrExpectedVersion, expectedVersion,
			)
			tracer.finishErrorWithAttrs(errorTypeConcurrencyConflict, map[string]string{
				spanAttrExpectedVersion: fmt.Sprintf("%d", expectedVersion),
			})
			metrics.recordConcurrencyConflict(duration)

			return err
		}

		errorType := errorTypeFor(ctx, err)
		tracer.finishError(errorType, duration)
		metrics.recordError(errorType, duration)

		return err
	}

	tracer.finishSuccess(changes.Count(), duration)
	metrics.recordSuccess(changes.Count(), duration)

	s.logOperation(ctx, logMsgChangesCommitted,
		logAttrResourceID, resourceID.String(),
		logAttrChangeCount, changes.Count(),
		logAttrDurationMS, s.toMilliseconds(duration),
	)

	return nil
}

func (s *Store) commitInTransaction(
	ctx context.Context,
	resourceID uuid.UUID,
	expectedVersion reservation.VersionInt64,
	changes reservation.Changes,
) error {

	tx, beginErr := s.db.BeginTx(ctx)
	if beginErr != nil {
		s.logError(ctx, logMsgBeginTxFailed, beginErr)
		return errors.Join(reservation.ErrCommittingChangesFailed, beginErr)
	}
	defer s.rollback(ctx, tx)

	sqlQuery, args, err := s.buildVersionCheckStatement(resourceID, expectedVersion)
	if err != nil {
		return err
	}

	if err = s.execExpectingRows(ctx, tx, sqlQuery, args, logActionVersionCheck, 1); err != nil {
		return err
	}

	if len(changes.Inserts) > 0 {
		sqlQuery, args, err = s.buildInsertStatement(resourceID, changes.Inserts)
		if err != nil {
			return err
		}

		if err = s.execExpectingRows(ctx, tx, sqlQuery, args, logActionInsert, int64(len(changes.Inserts))); err != nil {
			return err
		}
	}

	for transition, ids := range changes.StatusChangesByTarget() {
		sqlQuery, args, err = s.buildUpdateStatusStatement(resourceID, transition, ids)
		if err != nil {
			return err
		}

		if err = s.execExpectingRows(ctx, tx, sqlQuery, args, logActionUpdateStatus, int64(len(ids))); err != nil {
			return err
		}
	}

	if len(changes.Deletes) > 0 {
		sqlQuery, args, err = s.buildDeleteStatement(resourceID, changes.Deletes)
		if err != nil {
			return err
		}

		if err = s.execExpectingRows(ctx, tx, sqlQuery, args, logActionDelete, int64(len(changes.Deletes))); err != nil {
			return err
		}
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		s.logError(ctx, logMsgCommitTxFailed, commitErr)
		return errors.Join(reservation.ErrCommittingChangesFailed, commitErr)
	}

	return nil
}

// execExpectingRows runs one statement of the commit transaction.
// Fewer affected rows than expected means the snapshot the decision was based on is gone.
func (s *Store) execExpectingRows(
	ctx context.Context,
	tx adapters.DBTx,
	sqlQuery string,
	args sqlArgs,
	action string,
	expectedRows rowsAffectedInt64,
) error {

	start := time.Now()
	result, execErr := tx.Exec(ctx, sqlQuery, args...)
	s.logQueryWithDuration(ctx, sqlQuery, action, time.Since(start))

	if execErr != nil {
		s.logError(ctx, logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)
		return errors.Join(reservation.ErrCommittingChangesFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		s.logError(ctx, logMsgRowsAffectedFailed, rowsAffectedErr)
		return errors.Join(reservation.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	if rowsAffected < expectedRows {
		s.logOperation(ctx, logMsgConcurrencyConflict,
			logAttrExpectedRows, expectedRows,
			logAttrRowsAffected, rowsAffected,
		)

		return reservation.ErrConcurrencyConflict
	}

	return nil
}

// RegisterResource inserts the resource row with version zero.
// If the row already exists nothing is written and ErrConcurrencyConflict is returned,
// so the caller reloads the resource and decides again.
func (s *Store) RegisterResource(ctx context.Context, resource reservation.Resource) error {
	sqlQuery, args, toSQLErr := goqu.Dialect(dialectPostgres).
		Insert(s.resourceTableName).
		Prepared(true).
		Rows(goqu.Record{
			colID:      resource.ID.String(),
			colOwnerID: resource.OwnerID.String(),
			colVersion: 0,
		}).
		OnConflict(goqu.DoNothing()).
		ToSQL()

	if toSQLErr != nil {
		s.logError(ctx, logMsgBuildCommitQueryFailed, toSQLErr)
		return errors.Join(reservation.ErrBuildingQueryFailed, toSQLErr)
	}

	start := time.Now()
	result, execErr := s.db.Exec(ctx, sqlQuery, args...)
	duration := time.Since(start)
	s.logQueryWithDuration(ctx, sqlQuery, logActionRegister, duration)

	if execErr != nil {
		s.logError(ctx, logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)
		return errors.Join(reservation.ErrCommittingChangesFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		s.logError(ctx, logMsgRowsAffectedFailed, rowsAffectedErr)
		return errors.Join(reservation.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	if rowsAffected == 0 {
		return reservation.ErrConcurrencyConflict
	}

	s.logOperation(ctx, logMsgResourceRegistered,
		logAttrResourceID, resource.ID.String(),
		logAttrDurationMS, s.toMilliseconds(duration),
	)

	return nil
}

// executeQuery executes the SQL query and logs it with timing information.
func (s *Store) executeQuery(ctx context.Context, sqlQuery string, args sqlArgs, action string) (adapters.DBRows, error) {
	start := time.Now()
	rows, queryErr := s.db.Query(ctx, sqlQuery, args...)
	s.logQueryWithDuration(ctx, sqlQuery, action, time.Since(start))

	if queryErr != nil {
		s.logError(ctx, logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)
		return nil, errors.Join(reservation.ErrQueryingFailed, queryErr)
	}

	return rows, nil
}

// closeRows safely closes database rows and logs any errors.
func (s *Store) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		s.logWarn(ctx, logMsgCloseRowsFailed, closeErr)
	}
}

// rollback ends tx if it was not committed.
func (s *Store) rollback(ctx context.Context, tx adapters.DBTx) {
	if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
		s.logWarn(ctx, logMsgRollbackFailed, rollbackErr)
	}
}

func (s *Store) selectReservationsJoined() *goqu.SelectDataset {
	return goqu.Dialect(dialectPostgres).
		From(goqu.T(s.reservationTableName).As(aliasReservation)).
		Prepared(true).
		Join(
			goqu.T(s.resourceTableName).As(aliasResource),
			goqu.On(goqu.I(aliasReservation+"."+colResourceID).Eq(goqu.I(aliasResource+"."+colID))),
		).
		Select(
			goqu.I(aliasReservation+"."+colID),
			goqu.I(aliasReservation+"."+colResourceID),
			goqu.I(aliasReservation+"."+colRequesterID),
			goqu.I(aliasReservation+"."+colCheckIn),
			goqu.I(aliasReservation+"."+colCheckOut),
			goqu.I(aliasReservation+"."+colStatus),
			goqu.I(aliasReservation+"."+colRequestedAt),
			goqu.I(aliasResource+"."+colOwnerID),
		)
}

func (s *Store) buildSelectReservationsQuery(filter reservation.ListFilter) (sqlQueryString, sqlArgs, error) {
	selectStmt := s.selectReservationsJoined().
		Where(s.whereClause(filter)...).
		Order(
			goqu.I(aliasReservation+"."+colRequestedAt).Desc(),
			goqu.I(aliasReservation+"."+colID).Asc(),
		)

	sqlQuery, args, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", nil, errors.Join(reservation.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, args, nil
}

func (s *Store) whereClause(filter reservation.ListFilter) []goqu.Expression {
	expressions := make([]goqu.Expression, 0)

	if filter.ResourceID != uuid.Nil {
		expressions = append(expressions, goqu.I(aliasReservation+"."+colResourceID).Eq(filter.ResourceID.String()))
	}

	if filter.RequesterID != uuid.Nil {
		expressions = append(expressions, goqu.I(aliasReservation+"."+colRequesterID).Eq(filter.RequesterID.String()))
	}

	if filter.OwnerID != uuid.Nil {
		expressions = append(expressions, goqu.I(aliasResource+"."+colOwnerID).Eq(filter.OwnerID.String()))
	}

	if filter.Status != "" {
		expressions = append(expressions, goqu.I(aliasReservation+"."+colStatus).Eq(filter.Status.String()))
	}

	if !filter.CheckInBefore.IsZero() {
		expressions = append(expressions, goqu.I(aliasReservation+"."+colCheckIn).Lt(filter.CheckInBefore))
	}

	return expressions
}

func (s *Store) buildVersionCheckStatement(
	resourceID uuid.UUID,
	expectedVersion reservation.VersionInt64,
) (sqlQueryString, sqlArgs, error) {

	updateStmt := goqu.Dialect(dialectPostgres).
		Update(s.resourceTableName).
		Prepared(true).
		Set(goqu.Record{colVersion: goqu.L("? + 1", goqu.I(colVersion))}).
		Where(
			goqu.C(colID).Eq(resourceID.String()),
			goqu.C(colVersion).Eq(expectedVersion),
		)

	return s.toSQL(updateStmt.ToSQL())
}

func (s *Store) buildInsertStatement(resourceID uuid.UUID, inserts reservation.Reservations) (sqlQueryString, sqlArgs, error) {
	rows := make([]any, 0, len(inserts))
	for _, r := range inserts {
		rows = append(rows, goqu.Record{
			colID:          r.ID.String(),
			colResourceID:  resourceID.String(),
			colRequesterID: r.RequesterID.String(),
			colCheckIn:     r.Interval.CheckIn,
			colCheckOut:    r.Interval.CheckOut,
			colStatus:      r.Status.String(),
			colRequestedAt: r.RequestedAt,
		})
	}

	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(s.reservationTableName).
		Prepared(true).
		Rows(rows...)

	return s.toSQL(insertStmt.ToSQL())
}

// buildUpdateStatusStatement moves all ids from transition.From to transition.To with one statement.
// The status guard in the WHERE clause keeps a stale transition from overwriting a newer one.
func (s *Store) buildUpdateStatusStatement(
	resourceID uuid.UUID,
	transition reservation.StatusChange,
	ids []uuid.UUID,
) (sqlQueryString, sqlArgs, error) {

	updateStmt := goqu.Dialect(dialectPostgres).
		Update(s.reservationTableName).
		Prepared(true).
		Set(goqu.Record{colStatus: transition.To.String()}).
		Where(
			goqu.C(colID).In(uuidStrings(ids)),
			goqu.C(colResourceID).Eq(resourceID.String()),
			goqu.C(colStatus).Eq(transition.From.String()),
		)

	return s.toSQL(updateStmt.ToSQL())
}

func (s *Store) buildDeleteStatement(resourceID uuid.UUID, ids []uuid.UUID) (sqlQueryString, sqlArgs, error) {
	deleteStmt := goqu.Dialect(dialectPostgres).
		Delete(s.reservationTableName).
		Prepared(true).
		Where(
			goqu.C(colID).In(uuidStrings(ids)),
			goqu.C(colResourceID).Eq(resourceID.String()),
		)

	return s.toSQL(deleteStmt.ToSQL())
}

func (s *Store) toSQL(sqlQuery string, args sqlArgs, toSQLErr error) (sqlQueryString, sqlArgs, error) {
	if toSQLErr != nil {
		if s.logger != nil {
			s.logger.Error(logMsgBuildCommitQueryFailed, logAttrError, toSQLErr.Error())
		}

		return "", nil, errors.Join(reservation.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, args, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}

	return out
}
