package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/httplog"
	"github.com/luuzuriaga/bookstore/book"
	bookpg "github.com/luuzuriaga/bookstore/book/postgres"
	bookredis "github.com/luuzuriaga/bookstore/book/redis"
	"github.com/luuzuriaga/bookstore/config"
	"github.com/luuzuriaga/bookstore/customer"
	customerpg "github.com/luuzuriaga/bookstore/customer/postgres"
	customerredis "github.com/luuzuriaga/bookstore/customer/redis"
	"github.com/luuzuriaga/bookstore/internal/storage/memory"
	"github.com/luuzuriaga/bookstore/internal/storage/postgres"
	storage "github.com/luuzuriaga/bookstore/internal/storage/redis"
	"github.com/luuzuriaga/bookstore/sale"
	salepg "github.com/luuzuriaga/bookstore/sale/postgres"
	saleredis "github.com/luuzuriaga/bookstore/sale/redis"
	"github.com/rs/zerolog"
)

/* bootstrap faz a "amarração" que antes ficava no main.go.
 * Como api e seed precisam dos mesmos serviços para qualquer driver, ela mora aqui.
 */

// Store is what every storage driver offers to the binaries.
type Store interface {
	Ping(ctx context.Context) error
	ServerTime(ctx context.Context) (time.Time, error)
	Close() error
}

type App struct {
	Books     book.UseCase
	Customers customer.UseCase
	Sales     sale.UseCase
	Store     Store
}

func NewLogger(cfg *config.Config) zerolog.Logger {
	return httplog.NewLogger("bookstore", httplog.Options{
		JSON:     cfg.LogJSON,
		Concise:  !cfg.LogJSON,
		LogLevel: cfg.LogLevel,
	})
}

// Open connects to the configured driver and builds the services on top of it.
func Open(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*App, error) {
	switch cfg.StorageDriver {
	case config.DriverMemory:
		return openMemory(logger), nil
	case config.DriverPostgres:
		return openPostgres(ctx, cfg, logger)
	case config.DriverRedis:
		return openRedis(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func openMemory(logger zerolog.Logger) *App {
	store := memory.New()
	return &App{
		Books:     book.NewService(store.Books()),
		Customers: customer.NewService(store.Customers()),
		Sales:     sale.NewService(store.Sales(), store, logger),
		Store:     store,
	}
}

func openPostgres(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*App, error) {
	store, err := postgres.Open(ctx, cfg.PostgresConnectionString(), postgres.Pool{
		MaxOpenConns:       cfg.PostgresMaxOpenConns,
		MaxIdleConns:       cfg.PostgresMaxIdleConns,
		ConnMaxLifeMinutes: cfg.PostgresConnMaxLifeMinutes,
	})
	if err != nil {
		return nil, err
	}
	if cfg.PostgresAutoMigrate {
		if err := store.MigrateUp(ctx); err != nil {
			store.Close()
			return nil, err
		}
		logger.Info().Msg("postgres migrations applied")
	}
	db := store.DB()
	return &App{
		Books:     book.NewService(bookpg.NewRepository(db)),
		Customers: customer.NewService(customerpg.NewRepository(db)),
		Sales:     sale.NewService(salepg.NewRepository(db), salepg.NewTransactor(db), logger),
		Store:     store,
	}, nil
}

func openRedis(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*App, error) {
	store, err := storage.Open(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, err
	}
	return &App{
		Books:     book.NewService(bookredis.NewRepository(store.Session())),
		Customers: customer.NewService(customerredis.NewRepository(store.Session())),
		Sales:     sale.NewService(saleredis.NewRepository(store.Session()), saleredis.NewTransactor(store), logger),
		Store:     store,
	}, nil
}
