// Command seedreservations fills the PostgreSQL store with random resources and reservations.
// The connection comes from POSTGRES_DSN, a .env file in the working directory is loaded first.
package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/staybook/reservation-engine/booking/shared/shell/config"
	"github.com/staybook/reservation-engine/reservation/postgresengine"
)

const (
	// NumResources is the number of resources to register - adapt as needed.
	NumResources = 1000

	// RequestsPerResource is the number of requests made per resource. Overlapping ones conflict and are counted.
	RequestsPerResource = 20
)

func main() {
	if err := seed(); err != nil {
		fmt.Fprintf(os.Stderr, "seeding failed: %v\n", err)
		os.Exit(1)
	}
}

func seed() error {
	_ = godotenv.Load()

	ctx := context.Background()

	pool, err := pgxpool.NewWithConfig(ctx, config.PostgresPGXPoolPrimaryConfig())
	if err != nil {
		return err
	}
	defer pool.Close()

	store, err := postgresengine.NewStoreFromPGXPool(pool)
	if err != nil {
		return err
	}

	if err = store.CreateSchema(ctx); err != nil {
		return err
	}

	now := time.Now().UTC()
	seeder := NewSeeder(store, rand.New(rand.NewPCG(uint64(now.UnixNano()), 0)), now)

	seedStart := time.Now()

	stats, err := seeder.Run(ctx, NumResources, RequestsPerResource)
	if err != nil {
		return err
	}

	fmt.Printf(
		"Seeded %d resources in %s: %d requested, %d conflicting requests refused, %d approved, %d rejected, %d rejected by cascade\n",
		stats.Resources, time.Since(seedStart).Round(time.Millisecond),
		stats.Requested, stats.Conflicts, stats.Approved, stats.Rejected, stats.CascadeRejected,
	)

	return nil
}
