package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/luuzuriaga/bookstore/book"
	"github.com/luuzuriaga/bookstore/customer"
	"github.com/luuzuriaga/bookstore/internal/storage/memory"
	"github.com/luuzuriaga/bookstore/sale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBooks(t *testing.T) {
	ctx := context.Background()
	repo := memory.New().Books()

	all, err := repo.SelectAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	id, err := repo.Insert(ctx, book.Book{Title: "Dune", Author: "Frank Herbert", Price: 25, Stock: 3})
	require.NoError(t, err)
	second, err := repo.Insert(ctx, book.Book{Title: "Emma", Author: "Jane Austen", Price: 12, Stock: 1})
	require.NoError(t, err)
	assert.Greater(t, second, id)

	b, err := repo.Select(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Dune", b.Title)

	b.Stock = 9
	require.NoError(t, repo.Update(ctx, b))
	b, err = repo.Select(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 9, b.Stock)

	all, err = repo.SelectAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, id, all[0].ID)

	assert.ErrorIs(t, repo.Update(ctx, book.Book{ID: 99}), book.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, id))
	assert.ErrorIs(t, repo.Delete(ctx, id), book.ErrNotFound)
	_, err = repo.Select(ctx, id)
	assert.ErrorIs(t, err, book.ErrNotFound)
}

func TestCustomers(t *testing.T) {
	ctx := context.Background()
	repo := memory.New().Customers()

	id, err := repo.Insert(ctx, customer.Customer{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)
	_, err = repo.Insert(ctx, customer.Customer{Name: "Other", Email: "ada@example.com"})
	assert.ErrorIs(t, err, customer.ErrDuplicateEmail)

	c, err := repo.SelectByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, c.ID)
	_, err = repo.SelectByEmail(ctx, "ADA@example.com")
	assert.ErrorIs(t, err, customer.ErrNotFound)

	other, err := repo.Insert(ctx, customer.Customer{Name: "Grace", Email: "grace@example.com"})
	require.NoError(t, err)
	err = repo.Update(ctx, customer.Customer{ID: other, Name: "Grace", Email: "ada@example.com"})
	assert.ErrorIs(t, err, customer.ErrDuplicateEmail)
	require.NoError(t, repo.Update(ctx, customer.Customer{ID: id, Name: "Ada King", Email: "ada@example.com"}))

	assert.ErrorIs(t, repo.Delete(ctx, 99), customer.ErrNotFound)
}

func TestWithinTx(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	bID, err := store.Books().Insert(ctx, book.Book{Title: "Dune", Author: "Frank Herbert", Price: 25, Stock: 3})
	require.NoError(t, err)
	cID, err := store.Customers().Insert(ctx, customer.Customer{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	t.Run("rollback discards staged writes", func(t *testing.T) {
		boom := errors.New("boom")
		err := store.WithinTx(ctx, func(ctx context.Context, tx sale.Tx) error {
			b, err := tx.Books().SelectForUpdate(ctx, bID)
			require.NoError(t, err)
			b.Stock = 0
			require.NoError(t, tx.Books().Update(ctx, b))
			_, err = tx.Sales().Insert(ctx, sale.Sale{CustomerID: cID, BookID: bID, Quantity: 3})
			require.NoError(t, err)
			return boom
		})
		assert.ErrorIs(t, err, boom)
		b, err := store.Books().Select(ctx, bID)
		require.NoError(t, err)
		assert.Equal(t, 3, b.Stock)
		all, err := store.Sales().SelectAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
	t.Run("commit applies staged writes", func(t *testing.T) {
		var saleID int64
		err := store.WithinTx(ctx, func(ctx context.Context, tx sale.Tx) error {
			b, err := tx.Books().SelectForUpdate(ctx, bID)
			if err != nil {
				return err
			}
			b.Stock--
			if err := tx.Books().Update(ctx, b); err != nil {
				return err
			}
			staged, err := tx.Books().SelectForUpdate(ctx, bID)
			require.NoError(t, err)
			assert.Equal(t, 2, staged.Stock)
			saleID, err = tx.Sales().Insert(ctx, sale.Sale{CustomerID: cID, BookID: bID, Quantity: 1, CreatedAt: time.Now().UTC()})
			return err
		})
		require.NoError(t, err)
		s, err := store.Sales().Select(ctx, saleID)
		require.NoError(t, err)
		assert.Equal(t, 1, s.Quantity)
	})
	t.Run("referenced rows cannot be deleted", func(t *testing.T) {
		assert.ErrorIs(t, store.Books().Delete(ctx, bID), book.ErrHasSales)
		assert.ErrorIs(t, store.Customers().Delete(ctx, cID), customer.ErrHasSales)
	})
	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		err := store.WithinTx(cctx, func(ctx context.Context, tx sale.Tx) error {
			t.Fatal("must not run")
			return nil
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestDiagnostics(t *testing.T) {
	store := memory.New()
	require.NoError(t, store.Ping(context.Background()))
	now, err := store.ServerTime(context.Background())
	require.NoError(t, err)
	assert.Equal(t, time.UTC, now.Location())
}
