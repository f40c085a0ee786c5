// Package adapters provides database adapter implementations for the PostgreSQL reservation store.
//
// Three PostgreSQL libraries are supported behind the DBAdapter interface: pgxpool.Pool, sql.DB and sqlx.DB.
// Each adapter can run statements directly or inside a transaction, and can route reads to a replica
// when the context asks for eventual consistency.
package adapters
