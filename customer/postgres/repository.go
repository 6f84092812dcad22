package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/luuzuriaga/bookstore/customer"
	"github.com/luuzuriaga/bookstore/internal/storage/postgres"
)

// Repository stores customers; the UNIQUE index on email backs the service pre-check.
type Repository struct {
	DB sqlx.ExtContext
}

func NewRepository(db sqlx.ExtContext) *Repository {
	return &Repository{DB: db}
}

type row struct {
	ID    int64  `db:"id"`
	Name  string `db:"name"`
	Email string `db:"email"`
}

func (r row) toCustomer() customer.Customer {
	return customer.Customer{ID: r.ID, Name: r.Name, Email: r.Email}
}

func (r *Repository) Select(ctx context.Context, id int64) (customer.Customer, error) {
	return r.selectOne(ctx, "SELECT id, name, email FROM customers WHERE id = $1", id)
}

func (r *Repository) SelectByEmail(ctx context.Context, email string) (customer.Customer, error) {
	return r.selectOne(ctx, "SELECT id, name, email FROM customers WHERE email = $1", email)
}

func (r *Repository) selectOne(ctx context.Context, query string, arg any) (customer.Customer, error) {
	var c row
	err := sqlx.GetContext(ctx, r.DB, &c, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return customer.Customer{}, customer.ErrNotFound
	}
	if err != nil {
		return customer.Customer{}, fmt.Errorf("selecting customer: %w", err)
	}
	return c.toCustomer(), nil
}

func (r *Repository) SelectAll(ctx context.Context) ([]customer.Customer, error) {
	var rows []row
	if err := sqlx.SelectContext(ctx, r.DB, &rows, "SELECT id, name, email FROM customers ORDER BY id"); err != nil {
		return nil, fmt.Errorf("selecting customers: %w", err)
	}
	all := make([]customer.Customer, 0, len(rows))
	for _, c := range rows {
		all = append(all, c.toCustomer())
	}
	return all, nil
}

func (r *Repository) Insert(ctx context.Context, c customer.Customer) (int64, error) {
	var id int64
	err := r.DB.QueryRowxContext(ctx,
		"INSERT INTO customers (name, email) VALUES ($1, $2) RETURNING id",
		c.Name, c.Email,
	).Scan(&id)
	if postgres.IsUniqueViolation(err) {
		return 0, customer.DuplicateEmail(c.Email)
	}
	if err != nil {
		return 0, fmt.Errorf("inserting customer: %w", err)
	}
	return id, nil
}

func (r *Repository) Update(ctx context.Context, c customer.Customer) error {
	result, err := r.DB.ExecContext(ctx,
		"UPDATE customers SET name = $1, email = $2 WHERE id = $3",
		c.Name, c.Email, c.ID,
	)
	if postgres.IsUniqueViolation(err) {
		return customer.DuplicateEmail(c.Email)
	}
	if err != nil {
		return fmt.Errorf("updating customer: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rows == 0 {
		return customer.ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM customers WHERE id = $1", id)
	if postgres.IsForeignKeyViolation(err) {
		return customer.ErrHasSales
	}
	if err != nil {
		return fmt.Errorf("deleting customer: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rows == 0 {
		return customer.ErrNotFound
	}
	return nil
}
