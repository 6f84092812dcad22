package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/luuzuriaga/bookstore/book"
	bookredis "github.com/luuzuriaga/bookstore/book/redis"
	storage "github.com/luuzuriaga/bookstore/internal/storage/redis"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepository(t *testing.T) (*bookredis.Repository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return bookredis.NewRepository(storage.NewStore(client).Session()), mr
}

func TestRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("insert and select", func(t *testing.T) {
		repo, mr := newRepository(t)
		id, err := repo.Insert(ctx, book.Book{Title: "Dune", Author: "Frank Herbert", Price: 25.5, Stock: 3})
		require.NoError(t, err)
		assert.Equal(t, int64(1), id)
		assert.True(t, mr.Exists("book:1"))

		b, err := repo.Select(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, book.Book{ID: 1, Title: "Dune", Author: "Frank Herbert", Price: 25.5, Stock: 3}, b)
	})

	t.Run("select missing book", func(t *testing.T) {
		repo, _ := newRepository(t)
		_, err := repo.Select(ctx, 42)
		assert.ErrorIs(t, err, book.ErrNotFound)
	})

	t.Run("list keeps id order and is empty when there are no books", func(t *testing.T) {
		repo, _ := newRepository(t)
		all, err := repo.SelectAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, all)
		assert.Empty(t, all)

		for _, title := range []string{"A", "B", "C"} {
			_, err := repo.Insert(ctx, book.Book{Title: title, Author: "X", Price: 1, Stock: 1})
			require.NoError(t, err)
		}
		all, err = repo.SelectAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []string{"A", "B", "C"}, []string{all[0].Title, all[1].Title, all[2].Title})
	})

	t.Run("update", func(t *testing.T) {
		repo, _ := newRepository(t)
		id, err := repo.Insert(ctx, book.Book{Title: "Dune", Author: "Frank Herbert", Price: 25, Stock: 3})
		require.NoError(t, err)

		require.NoError(t, repo.Update(ctx, book.Book{ID: id, Title: "Dune", Author: "Frank Herbert", Price: 30, Stock: 1}))
		b, err := repo.Select(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 30.0, b.Price)
		assert.Equal(t, 1, b.Stock)

		assert.ErrorIs(t, repo.Update(ctx, book.Book{ID: 99, Title: "X"}), book.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		repo, mr := newRepository(t)
		id, err := repo.Insert(ctx, book.Book{Title: "Dune", Author: "Frank Herbert", Price: 25, Stock: 3})
		require.NoError(t, err)
		other, err := repo.Insert(ctx, book.Book{Title: "Emma", Author: "Jane Austen", Price: 12, Stock: 3})
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, id))
		assert.False(t, mr.Exists("book:1"))
		assert.ErrorIs(t, repo.Delete(ctx, id), book.ErrNotFound)

		_, err = mr.SAdd(bookredis.SalesKey(other), "1")
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Delete(ctx, other), book.ErrHasSales)

		all, err := repo.SelectAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})
}
