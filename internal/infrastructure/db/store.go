// Package db opens the configured record store and exposes its repositories.
package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/shopgrid/commerce-api/internal/core/ports"
	"github.com/shopgrid/commerce-api/internal/infrastructure/db/mongo"
	"github.com/shopgrid/commerce-api/internal/infrastructure/db/postgres"
	"github.com/shopgrid/commerce-api/internal/infrastructure/db/postgres/migrations"
	"github.com/shopgrid/commerce-api/internal/pkg/config"
)

// Store bundles the repositories of one backend.
type Store struct {
	Driver    string
	Operators ports.OperatorRepository
	Shops     ports.ShopRepository
	Items     ports.ItemRepository
	Invoices  ports.InvoiceRepository

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

// Ping checks the backend is reachable.
func (s *Store) Ping(ctx context.Context) error { return s.ping(ctx) }

// Close releases the backend's connections.
func (s *Store) Close(ctx context.Context) error { return s.close(ctx) }

// Open connects to the backend named by cfg.StoreDriver and prepares its
// schema: goose migrations for postgres (when DB_AUTO_MIGRATE is on), indexes
// for mongo.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg.Postgres, log)
	case config.DriverMongo:
		return openMongo(ctx, cfg.Mongo, log)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func openPostgres(ctx context.Context, cfg config.PostgresConfig, log zerolog.Logger) (*Store, error) {
	sqlDB, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.DSN, MaxOpenConns: cfg.MaxOpenConns}, log)
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := migrations.Migrate(sqlDB); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		log.Info().Msg("postgres migrations applied")
	}

	return &Store{
		Driver:    config.DriverPostgres,
		Operators: postgres.NewOperatorRepository(sqlDB),
		Shops:     postgres.NewShopRepository(sqlDB),
		Items:     postgres.NewItemRepository(sqlDB),
		Invoices:  postgres.NewInvoiceRepository(sqlDB),
		ping:      sqlDB.PingContext,
		close:     func(context.Context) error { return sqlDB.Close() },
	}, nil
}

func openMongo(ctx context.Context, cfg config.MongoConfig, log zerolog.Logger) (*Store, error) {
	client, mdb, err := mongo.Connect(ctx, mongo.Config{URI: cfg.URI, Database: cfg.Database})
	if err != nil {
		return nil, err
	}

	if err := mongo.EnsureIndexes(ctx, mdb); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	log.Info().Str("database", cfg.Database).Msg("connected to mongodb")

	return &Store{
		Driver:    config.DriverMongo,
		Operators: mongo.NewOperatorRepository(mdb),
		Shops:     mongo.NewShopRepository(mdb),
		Items:     mongo.NewItemRepository(mdb),
		Invoices:  mongo.NewInvoiceRepository(mdb),
		ping:      func(ctx context.Context) error { return client.Ping(ctx, nil) },
		close:     client.Disconnect,
	}, nil
}
