package sale

import "github.com/luuzuriaga/bookstore/internal/apperr"

var (
	ErrNotFound          = apperr.NotFound("sale not found")
	ErrInsufficientStock = apperr.Validation("insufficient stock")
)

func InvalidQuantity(quantity int) error {
	return apperr.Validation("quantity must be greater than zero, got %d", quantity)
}

// InsufficientStock names the book whose stock cannot cover the requested quantity.
func InsufficientStock(title string) error {
	return apperr.Detail(ErrInsufficientStock, "insufficient stock for book: %s", title)
}
