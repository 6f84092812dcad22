package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/luuzuriaga/bookstore/internal/apperr"
	"github.com/luuzuriaga/bookstore/internal/storage/postgres"
	"github.com/luuzuriaga/bookstore/sale"
)

type Repository struct {
	DB sqlx.ExtContext
}

func NewRepository(db sqlx.ExtContext) *Repository {
	return &Repository{DB: db}
}

type row struct {
	ID         int64     `db:"id"`
	CustomerID int64     `db:"customer_id"`
	BookID     int64     `db:"book_id"`
	Quantity   int       `db:"quantity"`
	CreatedAt  time.Time `db:"created_at"`
}

func (r row) toSale() sale.Sale {
	return sale.Sale{
		ID:         r.ID,
		CustomerID: r.CustomerID,
		BookID:     r.BookID,
		Quantity:   r.Quantity,
		CreatedAt:  r.CreatedAt.UTC(),
	}
}

func (r *Repository) Select(ctx context.Context, id int64) (sale.Sale, error) {
	var s row
	err := sqlx.GetContext(ctx, r.DB, &s,
		"SELECT id, customer_id, book_id, quantity, created_at FROM sales WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return sale.Sale{}, sale.ErrNotFound
	}
	if err != nil {
		return sale.Sale{}, fmt.Errorf("selecting sale: %w", err)
	}
	return s.toSale(), nil
}

func (r *Repository) SelectAll(ctx context.Context) ([]sale.Sale, error) {
	var rows []row
	err := sqlx.SelectContext(ctx, r.DB, &rows,
		"SELECT id, customer_id, book_id, quantity, created_at FROM sales ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("selecting sales: %w", err)
	}
	all := make([]sale.Sale, 0, len(rows))
	for _, s := range rows {
		all = append(all, s.toSale())
	}
	return all, nil
}

func (r *Repository) Insert(ctx context.Context, s sale.Sale) (int64, error) {
	query := `
		INSERT INTO sales (customer_id, book_id, quantity, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var id int64
	err := r.DB.QueryRowxContext(ctx, query, s.CustomerID, s.BookID, s.Quantity, s.CreatedAt).Scan(&id)
	switch {
	case postgres.IsForeignKeyViolation(err):
		return 0, apperr.NotFound("sale references a missing customer or book")
	case postgres.IsCheckViolation(err):
		return 0, apperr.Validation("quantity must be greater than zero, got %d", s.Quantity)
	case err != nil:
		return 0, fmt.Errorf("inserting sale: %w", err)
	}
	return id, nil
}
