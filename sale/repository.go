package sale

import (
	"context"

	"github.com/luuzuriaga/bookstore/book"
	"github.com/luuzuriaga/bookstore/customer"
)

type Reader interface {
	Select(ctx context.Context, id int64) (Sale, error)
	SelectAll(ctx context.Context) ([]Sale, error)
}

type Writer interface {
	Insert(ctx context.Context, sale Sale) (int64, error)
}

/* Tx é a unidade de trabalho de um registro de venda.
 * Tudo que passa por ela é confirmado junto ou descartado junto.
 * Cada storage decide como isolar: SELECT ... FOR UPDATE no Postgres, WATCH/MULTI no Redis, mutex em memória.
 */
type Tx interface {
	Customers() customer.Reader
	Books() book.StockKeeper
	Sales() Writer
}

// Transactor runs fn inside one transaction. A nil return commits, any error rolls back and is returned as is.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}
