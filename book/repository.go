package book

import "context"

/* Interfaces pequenas */

/*
 * Quando uma struct representa DADOS deveria usar sempre value semantics e não pointer (ex: Book) .
 * Se a struct representa uma API deveria ser pointer (ex: Service).
 * Para tipos primários (int, string) sempre value semantics
 * Para tipos internos (maps, slices) usar value semantics
 */

/* Interfaces abstraem comportamento e não coisas*/

type Reader interface {
	Select(ctx context.Context, id int64) (Book, error)
	SelectAll(ctx context.Context) ([]Book, error)
}

type Writer interface {
	Insert(ctx context.Context, book Book) (int64, error)
	Update(ctx context.Context, book Book) error
	Delete(ctx context.Context, id int64) error
}

/* StockKeeper is what a sale transaction needs from the book store.
 * SelectForUpdate must lock the row (or watch the key) until the transaction ends.
 */
type StockKeeper interface {
	SelectForUpdate(ctx context.Context, id int64) (Book, error)
	Update(ctx context.Context, book Book) error
}

/* Composição de interfaces */

type Repository interface {
	Reader
	Writer
}
