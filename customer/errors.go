package customer

import "github.com/luuzuriaga/bookstore/internal/apperr"

var (
	ErrNotFound       = apperr.NotFound("customer not found")
	ErrEmailRequired  = apperr.Validation("customer email is required")
	ErrDuplicateEmail = apperr.Validation("email already registered")
	// ErrHasSales is returned when deleting a customer that sales still reference.
	ErrHasSales = apperr.Validation("customer is referenced by existing sales")
)

// DuplicateEmail reports an email already registered by another customer.
func DuplicateEmail(email string) error {
	return apperr.Detail(ErrDuplicateEmail, "email already registered: %s", email)
}
