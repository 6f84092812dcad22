//go:build integration

package redistest

import (
	"context"
	"strings"
	"testing"

	storage "github.com/luuzuriaga/bookstore/internal/storage/redis"
	"github.com/stretchr/testify/require"
	testcontainersredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

/* Test Helpers for Redis Integration Tests
 * Following the pattern from: https://eltonminetto.dev/post/2024-02-15-using-test-helpers/
 */

// Start runs redis:7-alpine and returns a connected store; both are released with t.Cleanup.
func Start(t *testing.T, ctx context.Context) *storage.Store {
	t.Helper()

	container, err := testcontainersredis.Run(ctx,
		"redis:7-alpine",
		testcontainersredis.WithLogLevel(testcontainersredis.LogLevelVerbose),
	)
	require.NoError(t, err, "failed to start Redis container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate Redis container: %v", err)
		}
	})

	addr, err := container.ConnectionString(ctx)
	require.NoError(t, err, "failed to get Redis connection string")
	addr = strings.TrimPrefix(addr, "redis://")

	store, err := storage.Open(ctx, addr, "", 0)
	require.NoError(t, err, "failed to connect to Redis")
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// Flush removes every key between subtests.
func Flush(t *testing.T, ctx context.Context, store *storage.Store) {
	t.Helper()
	require.NoError(t, store.Client().FlushDB(ctx).Err())
}
