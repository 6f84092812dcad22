package main

import (
	"context"
	"fmt"
	"os"

	"github.com/luuzuriaga/bookstore/config"
	"github.com/luuzuriaga/bookstore/internal/bootstrap"
	"github.com/luuzuriaga/bookstore/internal/storage/postgres"
	"github.com/rs/zerolog"
)

/* migrate - aplica as migrations embutidas no binário (goose).
 * Usage: go run ./cmd/migrate [up|down|status|version]
 * Usa as variáveis POSTGRES_* independente do STORAGE_DRIVER.
 */

const usage = "usage: migrate [up|down|status|version]"

// gooseLogger sends goose output through zerolog.
type gooseLogger struct {
	logger zerolog.Logger
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.logger.Info().Msgf(format, v...)
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.logger.Fatal().Msgf(format, v...)
}

func main() {
	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}
	if err := run(context.Background(), command); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, command string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}
	if err := cfg.ValidatePostgres(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logger := bootstrap.NewLogger(cfg)

	store, err := postgres.Open(ctx, cfg.PostgresConnectionString(), postgres.Pool{
		MaxOpenConns:       cfg.PostgresMaxOpenConns,
		MaxIdleConns:       cfg.PostgresMaxIdleConns,
		ConnMaxLifeMinutes: cfg.PostgresConnMaxLifeMinutes,
	})
	if err != nil {
		return err
	}
	defer store.Close()

	switch command {
	case "up":
		err = store.MigrateUp(ctx)
	case "down":
		err = store.MigrateDown(ctx)
	case "status":
		return store.MigrationStatus(ctx, gooseLogger{logger: logger})
	case "version":
		var version int64
		version, err = store.MigrationVersion(ctx)
		if err == nil {
			logger.Info().Int64("version", version).Msg("current migration version")
		}
		return err
	default:
		return fmt.Errorf("unknown command %q\n%s", command, usage)
	}
	if err != nil {
		return err
	}
	version, err := store.MigrationVersion(ctx)
	if err != nil {
		return err
	}
	logger.Info().Str("command", command).Int64("version", version).Msg("migrations done")
	return nil
}
