package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/luuzuriaga/bookstore/internal/apperr"
	"github.com/stretchr/testify/assert"
)

func TestKinds(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		err := apperr.Validation("price must be greater than zero, got %.2f", -1.0)
		assert.True(t, apperr.IsValidation(err))
		assert.False(t, apperr.IsNotFound(err))
		assert.Equal(t, "price must be greater than zero, got -1.00", err.Error())
	})
	t.Run("not found", func(t *testing.T) {
		err := apperr.NotFound("book not found")
		assert.True(t, apperr.IsNotFound(err))
		assert.False(t, apperr.IsValidation(err))
	})
	t.Run("kind survives wrapping", func(t *testing.T) {
		base := apperr.NotFound("customer not found")
		wrapped := fmt.Errorf("registering sale: %w", base)
		assert.True(t, errors.Is(wrapped, apperr.ErrNotFound))
		assert.True(t, errors.Is(wrapped, base))
	})
	t.Run("plain errors have no kind", func(t *testing.T) {
		err := errors.New("connection refused")
		assert.False(t, apperr.IsValidation(err))
		assert.False(t, apperr.IsNotFound(err))
	})
	t.Run("detail matches base and kind", func(t *testing.T) {
		base := apperr.Validation("email already registered")
		err := fmt.Errorf("inserting customer: %w", apperr.Detail(base, "email already registered: %s", "a@b.c"))
		assert.ErrorIs(t, err, base)
		assert.True(t, apperr.IsValidation(err))
		assert.Equal(t, "email already registered: a@b.c", apperr.Message(err))
	})
}

func TestMessage(t *testing.T) {
	err := fmt.Errorf("registering sale: %w", apperr.NotFound("book not found"))
	assert.Equal(t, "book not found", apperr.Message(err))
	assert.Equal(t, "connection refused", apperr.Message(errors.New("connection refused")))
}
