package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/luuzuriaga/bookstore/book"
	bookpg "github.com/luuzuriaga/bookstore/book/postgres"
	"github.com/luuzuriaga/bookstore/customer"
	customerpg "github.com/luuzuriaga/bookstore/customer/postgres"
	"github.com/luuzuriaga/bookstore/sale"
)

/* Transactor abre uma transação READ COMMITTED por venda.
 * A linha do livro é travada com SELECT ... FOR UPDATE, então duas vendas do mesmo livro
 * esperam uma pela outra e a segunda já enxerga o estoque debitado.
 */
type Transactor struct {
	DB *sqlx.DB
}

func NewTransactor(db *sqlx.DB) *Transactor {
	return &Transactor{DB: db}
}

func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context, tx sale.Tx) error) error {
	tx, err := t.DB.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, unitOfWork{tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rolling back transaction: %w", rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

type unitOfWork struct {
	tx *sqlx.Tx
}

func (u unitOfWork) Customers() customer.Reader {
	return customerpg.NewRepository(u.tx)
}

func (u unitOfWork) Books() book.StockKeeper {
	return bookpg.NewRepository(u.tx)
}

func (u unitOfWork) Sales() sale.Writer {
	return NewRepository(u.tx)
}
