package postgres

import (
	"context"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

var gooseOnce sync.Once
var gooseErr error

// goose keeps its dialect and filesystem in package state, so they are set once.
func setupGoose() error {
	gooseOnce.Do(func() {
		goose.SetBaseFS(migrations)
		goose.SetLogger(goose.NopLogger())
		gooseErr = goose.SetDialect("postgres")
	})
	return gooseErr
}

// MigrateUp applies every pending migration.
func (s *Store) MigrateUp(ctx context.Context) error {
	if err := setupGoose(); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, s.db.DB, migrationsDir); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// MigrateDown rolls back the latest migration.
func (s *Store) MigrateDown(ctx context.Context) error {
	if err := setupGoose(); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.DownContext(ctx, s.db.DB, migrationsDir); err != nil {
		return fmt.Errorf("rolling back migration: %w", err)
	}
	return nil
}

// MigrationStatus logs the state of each migration through goose's logger.
func (s *Store) MigrationStatus(ctx context.Context, logger goose.Logger) error {
	if err := setupGoose(); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	goose.SetLogger(logger)
	defer goose.SetLogger(goose.NopLogger())
	if err := goose.StatusContext(ctx, s.db.DB, migrationsDir); err != nil {
		return fmt.Errorf("reading migration status: %w", err)
	}
	return nil
}

func (s *Store) MigrationVersion(ctx context.Context) (int64, error) {
	if err := setupGoose(); err != nil {
		return 0, fmt.Errorf("setting goose dialect: %w", err)
	}
	v, err := goose.GetDBVersionContext(ctx, s.db.DB)
	if err != nil {
		return 0, fmt.Errorf("reading migration version: %w", err)
	}
	return v, nil
}
