package book

import "github.com/luuzuriaga/bookstore/internal/apperr"

var (
	ErrNotFound = apperr.NotFound("book not found")
	// ErrHasSales is returned when deleting a book that sales still reference.
	ErrHasSales = apperr.Validation("book is referenced by existing sales")
)
