package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/staybook/reservation-engine/booking/features/command/expirestalereservations"
	"github.com/staybook/reservation-engine/booking/httpapi"
	"github.com/staybook/reservation-engine/booking/shared/shell/config"
	"github.com/staybook/reservation-engine/reservation/memoryengine"
	"github.com/staybook/reservation-engine/reservation/postgresengine"
)

type store interface {
	httpapi.Store
	expirestalereservations.Store
}

// openStore builds the store selected by DB_ADAPTER. The returned func releases its connections.
func openStore(ctx context.Context, s settings, obs observability) (store, func(), error) {
	if s.DBAdapter == adapterMemory {
		return memoryengine.NewStore(memoryengine.WithContextualLogger(obs.logger)), func() {}, nil
	}

	options := []postgresengine.Option{postgresengine.WithContextualLogger(obs.logger)}
	if obs.metrics != nil {
		options = append(options, postgresengine.WithMetrics(obs.metrics))
	}

	if obs.tracing != nil {
		options = append(options, postgresengine.WithTracing(obs.tracing))
	}

	withReplica := config.PostgresReplicaDSN() != ""

	var (
		pgStore *postgresengine.Store
		closeDB func()
		err     error
	)

	switch s.DBAdapter {
	case adapterPGX:
		pgStore, closeDB, err = openPGX(ctx, withReplica, options)
	case adapterSQL:
		db := config.PostgresSQLDBPrimaryConfig()
		closeDB = func() { _ = db.Close() }

		if withReplica {
			replica := config.PostgresSQLDBReplicaConfig()
			closeDB = func() { _ = db.Close(); _ = replica.Close() }
			pgStore, err = postgresengine.NewStoreFromSQLDBWithReplica(db, replica, options...)
		} else {
			pgStore, err = postgresengine.NewStoreFromSQLDB(db, options...)
		}
	case adapterSQLX:
		db := config.PostgresSQLXPrimaryConfig()
		closeDB = func() { _ = db.Close() }

		if withReplica {
			replica := config.PostgresSQLXReplicaConfig()
			closeDB = func() { _ = db.Close(); _ = replica.Close() }
			pgStore, err = postgresengine.NewStoreFromSQLXWithReplica(db, replica, options...)
		} else {
			pgStore, err = postgresengine.NewStoreFromSQLX(db, options...)
		}
	default:
		return nil, nil, fmt.Errorf("unsupported adapter %q", s.DBAdapter)
	}

	if err != nil {
		if closeDB != nil {
			closeDB()
		}

		return nil, nil, err
	}

	if s.CreateSchema {
		if err = pgStore.CreateSchema(ctx); err != nil {
			closeDB()
			return nil, nil, err
		}
	}

	return pgStore, closeDB, nil
}

func openPGX(ctx context.Context, withReplica bool, options []postgresengine.Option) (*postgresengine.Store, func(), error) {
	primary, err := pgxpool.NewWithConfig(ctx, config.PostgresPGXPoolPrimaryConfig())
	if err != nil {
		return nil, nil, err
	}

	if !withReplica {
		pgStore, storeErr := postgresengine.NewStoreFromPGXPool(primary, options...)
		return pgStore, primary.Close, storeErr
	}

	replica, err := pgxpool.NewWithConfig(ctx, config.PostgresPGXPoolReplicaConfig())
	if err != nil {
		primary.Close()
		return nil, nil, err
	}

	closeDB := func() {
		replica.Close()
		primary.Close()
	}

	pgStore, err := postgresengine.NewStoreFromPGXPoolWithReplica(primary, replica, options...)

	return pgStore, closeDB, err
}
