//go:build integration

package pgtest

import (
	"context"
	"testing"
	"time"

	"github.com/luuzuriaga/bookstore/internal/storage/postgres"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
Test Helpers para PostgreSQL com Testcontainers

- Sobe um container Docker do PostgreSQL
- Aplica as migrations embarcadas com goose
- Cleanup automático com t.Cleanup

Referências:
- https://golang.testcontainers.org/modules/postgres/
- https://eltonminetto.dev/post/2024-02-15-using-test-helpers/
*/

const (
	defaultDatabase = "testdb"
	defaultUser     = "testuser"
	defaultPassword = "testpass"
)

// Start runs postgres:16-alpine, migrates it and returns a connected store.
func Start(t *testing.T, ctx context.Context) *postgres.Store {
	t.Helper()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase(defaultDatabase),
		tcpostgres.WithUsername(defaultUser),
		tcpostgres.WithPassword(defaultPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	store, err := postgres.Open(ctx, dsn, postgres.DefaultPool)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	require.NoError(t, store.MigrateUp(ctx))
	return store
}

// Truncate empties every table and restarts the id sequences.
func Truncate(t *testing.T, ctx context.Context, store *postgres.Store) {
	t.Helper()
	_, err := store.DB().ExecContext(ctx, "TRUNCATE TABLE sales, customers, books RESTART IDENTITY CASCADE")
	require.NoError(t, err)
}
