package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"go-artstore/pkg/timeutils"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Config struct {
	ConnectionString   string
	RetryAttemptDelays []time.Duration
}

type PgxDatabaseFactory struct {
	cfg       Config
	migrateUp func(dsn string) error
}

func NewPgxDatabaseFactory(cfg Config) *PgxDatabaseFactory {
	return &PgxDatabaseFactory{
		cfg:       cfg,
		migrateUp: runMigrations,
	}
}

// Create applies the migrations and opens the pool. Both steps are retried with
// RetryAttemptDelays, so the service can start before the database accepts
// connections.
func (f *PgxDatabaseFactory) Create(ctx context.Context) (*pgxpool.Pool, error) {
	err := f.retry(ctx, func(context.Context) error {
		return f.migrateUp(f.cfg.ConnectionString)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to run DB migrations: %w", err)
	}
	pool, err := pgxpool.New(ctx, f.cfg.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to create a connection pool: %w", err)
	}
	if err := f.retry(ctx, pool.Ping); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

func (f *PgxDatabaseFactory) retry(ctx context.Context, step func(context.Context) error) error {
	if len(f.cfg.RetryAttemptDelays) == 0 {
		return step(ctx)
	}
	var lastErr error
	_, err := timeutils.Retry(
		ctx,
		f.cfg.RetryAttemptDelays,
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, step(ctx)
		},
		func(_ struct{}, err error) bool {
			lastErr = err
			return err != nil
		},
	)
	if err != nil {
		return fmt.Errorf("%w (last error: %w)", err, lastErr)
	}
	return nil
}

//go:embed migrations/*.sql
var migrationsDir embed.FS

func runMigrations(dsn string) error {
	d, err := iofs.New(migrationsDir, "migrations")
	if err != nil {
		return fmt.Errorf("failed to return an iofs driver: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", d, toMigrateDSN(dsn))
	if err != nil {
		return fmt.Errorf("failed to get a new migrate instance: %w", err)
	}
	if err := m.Up(); err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to apply migrations to the DB: %w", err)
		}
	}
	return nil
}
