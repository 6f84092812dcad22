package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/luuzuriaga/bookstore/customer"
	customerredis "github.com/luuzuriaga/bookstore/customer/redis"
	storage "github.com/luuzuriaga/bookstore/internal/storage/redis"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepository(t *testing.T) (*customerredis.Repository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return customerredis.NewRepository(storage.NewStore(client).Session()), mr
}

func TestRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("insert keeps the email index", func(t *testing.T) {
		repo, mr := newRepository(t)
		id, err := repo.Insert(ctx, customer.Customer{Name: "Ada", Email: "ada@example.com"})
		require.NoError(t, err)
		owner, err := mr.Get(customerredis.EmailKey("ada@example.com"))
		require.NoError(t, err)
		assert.Equal(t, "1", owner)

		c, err := repo.SelectByEmail(ctx, "ada@example.com")
		require.NoError(t, err)
		assert.Equal(t, id, c.ID)

		_, err = repo.Insert(ctx, customer.Customer{Name: "Copy", Email: "ada@example.com"})
		assert.ErrorIs(t, err, customer.ErrDuplicateEmail)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo, _ := newRepository(t)
		_, err := repo.SelectByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, customer.ErrNotFound)
	})

	t.Run("update moves the email index", func(t *testing.T) {
		repo, mr := newRepository(t)
		id, err := repo.Insert(ctx, customer.Customer{Name: "Ada", Email: "ada@example.com"})
		require.NoError(t, err)
		other, err := repo.Insert(ctx, customer.Customer{Name: "Grace", Email: "grace@example.com"})
		require.NoError(t, err)

		err = repo.Update(ctx, customer.Customer{ID: id, Name: "Ada", Email: "grace@example.com"})
		assert.ErrorIs(t, err, customer.ErrDuplicateEmail)

		require.NoError(t, repo.Update(ctx, customer.Customer{ID: id, Name: "Ada King", Email: "ada.king@example.com"}))
		assert.False(t, mr.Exists(customerredis.EmailKey("ada@example.com")))
		c, err := repo.SelectByEmail(ctx, "ada.king@example.com")
		require.NoError(t, err)
		assert.Equal(t, "Ada King", c.Name)

		require.NoError(t, repo.Update(ctx, customer.Customer{ID: other, Name: "Grace Hopper", Email: "grace@example.com"}))
		assert.ErrorIs(t, repo.Update(ctx, customer.Customer{ID: 77, Email: "x@example.com"}), customer.ErrNotFound)
	})

	t.Run("delete frees the email", func(t *testing.T) {
		repo, _ := newRepository(t)
		id, err := repo.Insert(ctx, customer.Customer{Name: "Ada", Email: "ada@example.com"})
		require.NoError(t, err)
		require.NoError(t, repo.Delete(ctx, id))
		_, err = repo.Insert(ctx, customer.Customer{Name: "Ada again", Email: "ada@example.com"})
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Delete(ctx, id), customer.ErrNotFound)
	})

	t.Run("customer with sales cannot be deleted", func(t *testing.T) {
		repo, mr := newRepository(t)
		id, err := repo.Insert(ctx, customer.Customer{Name: "Ada", Email: "ada@example.com"})
		require.NoError(t, err)
		_, err = mr.SAdd(customerredis.SalesKey(id), "1")
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Delete(ctx, id), customer.ErrHasSales)
	})

	t.Run("list", func(t *testing.T) {
		repo, _ := newRepository(t)
		all, err := repo.SelectAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
		_, err = repo.Insert(ctx, customer.Customer{Name: "Ada", Email: "ada@example.com"})
		require.NoError(t, err)
		all, err = repo.SelectAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})
}
