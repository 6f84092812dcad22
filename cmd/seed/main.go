package main

import (
	"context"
	"fmt"
	"os"

	"github.com/luuzuriaga/bookstore/catalog"
	"github.com/luuzuriaga/bookstore/config"
	"github.com/luuzuriaga/bookstore/internal/bootstrap"
)

/* seed - carrega o catalog.yaml no storage configurado.
 * Usage: go run ./cmd/seed [catalog.yaml]
 * Rodar duas vezes não duplica nada. Com STORAGE_DRIVER=memory o resultado some no fim do processo.
 */

func main() {
	catalogFile := "catalog.yaml"
	if len(os.Args) > 1 {
		catalogFile = os.Args[1]
	}
	if err := run(context.Background(), catalogFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, catalogFile string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logger := bootstrap.NewLogger(cfg)

	loader := catalog.NewLoader()
	if err := loader.Load(catalogFile); err != nil {
		return err
	}

	app, err := bootstrap.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.Store.Close()

	res, err := catalog.NewSeeder(app.Books, app.Customers, logger).Seed(ctx, loader)
	if err != nil {
		return err
	}
	logger.Info().
		Str("driver", cfg.StorageDriver).
		Int("books_created", res.BooksCreated).
		Int("books_skipped", res.BooksSkipped).
		Int("customers_created", res.CustomersCreated).
		Int("customers_skipped", res.CustomersSkipped).
		Msg("catalog seeded")
	return nil
}
