package customer

import "context"

type Reader interface {
	Select(ctx context.Context, id int64) (Customer, error)
	SelectByEmail(ctx context.Context, email string) (Customer, error)
	SelectAll(ctx context.Context) ([]Customer, error)
}

/* Insert and Update must reject a duplicated email on their own (unique index,
 * watched key or lock): the service pre-check alone does not survive concurrent requests.
 */
type Writer interface {
	Insert(ctx context.Context, customer Customer) (int64, error)
	Update(ctx context.Context, customer Customer) error
	Delete(ctx context.Context, id int64) error
}

type Repository interface {
	Reader
	Writer
}
