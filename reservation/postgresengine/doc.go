// Package postgresengine provides a PostgreSQL implementation of the reservation store.
//
// Resources and reservations live in two tables. Every resource row carries a version which the first
// statement of each commit transaction compare-and-swaps, so decisions about one resource are serialized
// while decisions about different resources run in parallel.
//
// Key features:
//   - Multiple database adapter support (PGX, SQL, SQLX), optionally with a read replica
//   - Atomic commits of inserts, bulk status updates and deletes with concurrency conflict detection
//   - Parameterized statements built with goqu in prepared mode
//   - Configurable table names, logging, metrics and tracing
//
// Usage examples:
//
//	db, _ := pgxpool.New(context.Background(), dsn)
//	store, _ := postgresengine.NewStoreFromPGXPool(db, postgresengine.WithLogger(logger))
//	_ = store.CreateSchema(ctx)
//
//	state, _ := store.Query(ctx, resourceID)
//	err := store.Commit(ctx, resourceID, state.Version, reservation.Insert(candidate))
package postgresengine
