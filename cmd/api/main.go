package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/luuzuriaga/bookstore/config"
	"github.com/luuzuriaga/bookstore/internal/bootstrap"
	"github.com/luuzuriaga/bookstore/internal/http/chi"
	"github.com/luuzuriaga/bookstore/metrics"
	"github.com/rs/zerolog"
)

const TIMEOUT = 30 * time.Second

/* “a porta de entrada e saída da minha aplicação”
* Porque a porta de entrada? É no arquivo main.go, que vai ser compilado para gerar o executável da aplicação,
* onde é feita toda a “amarração” dos demais pacotes.
* A escolha do storage (memory, postgres ou redis) vem do STORAGE_DRIVER.

* E porque ele é a porta de saída da aplicação?
* https://eltonminetto.dev/post/2022-07-06-error-handling-cli-applications-golang/
 */

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logger := bootstrap.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	app, err := bootstrap.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.Store.Close()

	deps := chi.Dependencies{
		Logger:    logger,
		Books:     app.Books,
		Customers: app.Customers,
		Sales:     app.Sales,
		Store:     app.Store,
	}
	if cfg.MetricsEnabled {
		exporter, err := metrics.NewOTelExporter(metrics.NewStoreCollector(app.Books, app.Customers, app.Sales))
		if err != nil {
			return err
		}
		defer exporter.Shutdown(context.Background())
		instrumented, err := metrics.NewInstrumentedSales(app.Sales, exporter.Meter())
		if err != nil {
			return err
		}
		deps.Sales = instrumented
		deps.Metrics = exporter.Handler()
	}

	srv := &http.Server{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Addr:         ":" + cfg.Port,
		Handler:      chi.Handlers(ctx, deps),
	}

	errShutdown := make(chan error, 1)
	go shutdown(srv, ctx, errShutdown, logger)
	logger.Info().Str("port", cfg.Port).Str("driver", cfg.StorageDriver).Bool("metrics", cfg.MetricsEnabled).Msg("listening")
	err = srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-errShutdown
}

func shutdown(server *http.Server, ctxShutdown context.Context, errShutdown chan error, logger zerolog.Logger) {
	<-ctxShutdown.Done()

	ctxTimeout, stop := context.WithTimeout(context.Background(), TIMEOUT)
	defer stop()

	if err := server.Shutdown(ctxTimeout); err != nil {
		errShutdown <- fmt.Errorf("forcing closing the server: %w", err)
		return
	}
	logger.Info().Msg("shutting down server")
	errShutdown <- nil
}
