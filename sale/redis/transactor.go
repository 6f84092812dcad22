package redis

import (
	"context"

	"github.com/luuzuriaga/bookstore/book"
	bookredis "github.com/luuzuriaga/bookstore/book/redis"
	"github.com/luuzuriaga/bookstore/customer"
	customerredis "github.com/luuzuriaga/bookstore/customer/redis"
	storage "github.com/luuzuriaga/bookstore/internal/storage/redis"
	"github.com/luuzuriaga/bookstore/sale"
)

/* Transactor roda a venda dentro de um WATCH/MULTI/EXEC.
 * As leituras do cliente e do livro fazem WATCH das chaves; se outra venda alterar o livro
 * antes do EXEC, a transação é descartada e a função roda de novo (storage.MaxAttempts vezes).
 * Como fn pode rodar mais de uma vez, ela não deve ter efeitos fora de tx.
 */
type Transactor struct {
	Store *storage.Store
}

func NewTransactor(store *storage.Store) *Transactor {
	return &Transactor{Store: store}
}

func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context, tx sale.Tx) error) error {
	return t.Store.Session().Atomic(ctx, func(ctx context.Context, s *storage.Session) error {
		return fn(ctx, unitOfWork{s: s})
	})
}

type unitOfWork struct {
	s *storage.Session
}

func (u unitOfWork) Customers() customer.Reader {
	return customerredis.NewRepository(u.s)
}

func (u unitOfWork) Books() book.StockKeeper {
	return bookredis.NewRepository(u.s)
}

func (u unitOfWork) Sales() sale.Writer {
	return NewRepository(u.s)
}
