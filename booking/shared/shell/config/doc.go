// Package config provides the database and observability configuration of the booking service.
//
// Database DSNs come from the environment (POSTGRES_DSN, POSTGRES_REPLICA_DSN, POSTGRES_TEST_DSN).
// Pool factories exist for pgxpool, database/sql with lib/pq and sqlx.
package config
