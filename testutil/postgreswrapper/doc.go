// Package postgreswrapper creates a postgres backed reservation store for integration tests.
//
// The adapter is selected with ADAPTER_TYPE (pgx.pool, sql.db, sqlx.db). Tests are skipped if POSTGRES_TEST_DSN is not set.
package postgreswrapper
