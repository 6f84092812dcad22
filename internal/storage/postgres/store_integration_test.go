//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/luuzuriaga/bookstore/internal/storage/postgres"
	"github.com/luuzuriaga/bookstore/internal/storage/postgres/pgtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Execute com: go test -tags=integration ./internal/storage/postgres/...

func TestStore_Integration(t *testing.T) {
	ctx := context.Background()
	store := pgtest.Start(t, ctx)

	t.Run("ping and server time", func(t *testing.T) {
		require.NoError(t, store.Ping(ctx))
		now, err := store.ServerTime(ctx)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now(), now, time.Minute)
	})

	t.Run("migrations are at the latest version", func(t *testing.T) {
		v, err := store.MigrationVersion(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), v)
	})

	t.Run("down and up again", func(t *testing.T) {
		require.NoError(t, store.MigrateDown(ctx))
		v, err := store.MigrationVersion(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), v)
		require.NoError(t, store.MigrateUp(ctx))
	})

	t.Run("stock check constraint", func(t *testing.T) {
		_, err := store.DB().ExecContext(ctx,
			"INSERT INTO books (title, author, price, stock) VALUES ('Dune', 'Frank Herbert', 10, -1)")
		require.Error(t, err)
		assert.True(t, postgres.IsCheckViolation(err))
	})
}
