package book_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/luuzuriaga/bookstore/book"
	"github.com/luuzuriaga/bookstore/book/mocks" /* Gosto do https://github.com/vektra/mockery para gerar os mocks */
	"github.com/luuzuriaga/bookstore/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/* Dica: use test helpers: https://eltonminetto.dev/post/2024-02-15-using-test-helpers/ */

func TestCreate(t *testing.T) {
	ctx := context.Background()
	/* Usar t.Run para criar subtestes */
	t.Run("success", func(t *testing.T) {
		b := book.Book{
			Title:  "Dune",
			Author: "Frank Herbert",
			Price:  25,
			Stock:  10,
		}
		repo := mocks.NewRepository(t)
		repo.On("Insert", ctx, b).Return(int64(1), nil)
		s := book.NewService(repo)
		saved, err := s.Create(ctx, "Dune", "Frank Herbert", 25, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), saved.ID)
		assert.Equal(t, "Dune", saved.Title)
		assert.Equal(t, "Frank Herbert", saved.Author)
		assert.Equal(t, 25.0, saved.Price)
		assert.Equal(t, 10, saved.Stock)
	})
	t.Run("trims title and author", func(t *testing.T) {
		b := book.Book{Title: "Dune", Author: "Frank Herbert", Price: 25, Stock: 0}
		repo := mocks.NewRepository(t)
		repo.On("Insert", ctx, b).Return(int64(7), nil)
		s := book.NewService(repo)
		saved, err := s.Create(ctx, "  Dune ", " Frank Herbert\n", 25, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(7), saved.ID)
	})
	t.Run("repository failure", func(t *testing.T) {
		b := book.Book{Title: "Dune", Author: "Frank Herbert", Price: 25, Stock: 10}
		repo := mocks.NewRepository(t)
		repo.On("Insert", ctx, b).Return(int64(0), fmt.Errorf("some error"))
		s := book.NewService(repo)
		saved, err := s.Create(ctx, "Dune", "Frank Herbert", 25, 10)
		assert.NotNil(t, err)
		assert.Empty(t, saved)
		assert.False(t, apperr.IsValidation(err))
	})
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		title   string
		author  string
		price   float64
		stock   int
		message string
	}{
		{"empty title", "", "Author", 10, 1, "book title is required"},
		{"blank title", "   ", "Author", 10, 1, "book title is required"},
		{"empty author", "Title", "", 10, 1, "book author is required"},
		{"zero price", "Title", "Author", 0, 1, "price must be greater than zero, got 0.00"},
		{"negative price", "Title", "Author", -5, 1, "price must be greater than zero, got -5.00"},
		{"negative stock", "Title", "Author", 10, -1, "stock cannot be negative, got -1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewRepository(t)
			s := book.NewService(repo)
			_, err := s.Create(ctx, tt.title, tt.author, tt.price, tt.stock)
			require.Error(t, err)
			assert.True(t, apperr.IsValidation(err))
			assert.Equal(t, tt.message, err.Error())
			repo.AssertNotCalled(t, "Insert")
		})
	}
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	t.Run("found", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("Select", ctx, int64(3)).Return(book.Book{ID: 3, Title: "1984"}, nil)
		s := book.NewService(repo)
		b, err := s.Get(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, "1984", b.Title)
	})
	t.Run("not found keeps its kind", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("Select", ctx, int64(99)).Return(book.Book{}, book.ErrNotFound)
		s := book.NewService(repo)
		_, err := s.Get(ctx, 99)
		require.Error(t, err)
		assert.ErrorIs(t, err, book.ErrNotFound)
		assert.True(t, apperr.IsNotFound(err))
	})
}

func TestList(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewRepository(t)
	repo.On("SelectAll", ctx).Return([]book.Book{{ID: 1}, {ID: 2}}, nil)
	s := book.NewService(repo)
	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		b := book.Book{ID: 2, Title: "Dune Messiah", Author: "Frank Herbert", Price: 30, Stock: 4}
		repo := mocks.NewRepository(t)
		repo.On("Update", ctx, b).Return(nil)
		s := book.NewService(repo)
		updated, err := s.Update(ctx, 2, "Dune Messiah", "Frank Herbert", 30, 4)
		require.NoError(t, err)
		assert.Equal(t, b, updated)
	})
	t.Run("invalid stock", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		s := book.NewService(repo)
		_, err := s.Update(ctx, 2, "Dune", "Frank Herbert", 30, -4)
		assert.True(t, apperr.IsValidation(err))
	})
	t.Run("missing book", func(t *testing.T) {
		b := book.Book{ID: 9, Title: "Dune", Author: "Frank Herbert", Price: 30, Stock: 4}
		repo := mocks.NewRepository(t)
		repo.On("Update", ctx, b).Return(book.ErrNotFound)
		s := book.NewService(repo)
		_, err := s.Update(ctx, 9, "Dune", "Frank Herbert", 30, 4)
		assert.ErrorIs(t, err, book.ErrNotFound)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("Delete", ctx, int64(1)).Return(nil)
		s := book.NewService(repo)
		assert.NoError(t, s.Delete(ctx, 1))
	})
	t.Run("referenced by sales", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("Delete", ctx, int64(1)).Return(book.ErrHasSales)
		s := book.NewService(repo)
		err := s.Delete(ctx, 1)
		assert.True(t, apperr.IsValidation(err))
	})
}

func TestHasStock(t *testing.T) {
	b := book.Book{Stock: 2}
	assert.True(t, b.HasStock(1))
	assert.True(t, b.HasStock(2))
	assert.False(t, b.HasStock(3))
}
