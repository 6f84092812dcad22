package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/luuzuriaga/bookstore/book"
	"github.com/luuzuriaga/bookstore/internal/apperr"
	"github.com/luuzuriaga/bookstore/internal/storage/postgres"
)

/*
PostgreSQL Repository Implementation

- sqlx.ExtContext aceita tanto *sqlx.DB quanto *sqlx.Tx: o mesmo código serve dentro e fora de uma transação
- Placeholders $1, $2 do PostgreSQL
- SelectForUpdate trava a linha até o fim da transação da venda
- CHECK (stock >= 0) garante no banco o que o service já valida
*/

type Repository struct {
	DB sqlx.ExtContext
}

func NewRepository(db sqlx.ExtContext) *Repository {
	return &Repository{DB: db}
}

type row struct {
	ID     int64   `db:"id"`
	Title  string  `db:"title"`
	Author string  `db:"author"`
	Price  float64 `db:"price"`
	Stock  int     `db:"stock"`
}

func (r row) toBook() book.Book {
	return book.Book{ID: r.ID, Title: r.Title, Author: r.Author, Price: r.Price, Stock: r.Stock}
}

const selectBook = "SELECT id, title, author, price, stock FROM books WHERE id = $1"

// Select busca um livro por ID
func (r *Repository) Select(ctx context.Context, id int64) (book.Book, error) {
	return r.selectOne(ctx, selectBook, id)
}

// SelectForUpdate busca o livro travando a linha; só faz sentido dentro de uma transação
func (r *Repository) SelectForUpdate(ctx context.Context, id int64) (book.Book, error) {
	return r.selectOne(ctx, selectBook+" FOR UPDATE", id)
}

func (r *Repository) selectOne(ctx context.Context, query string, id int64) (book.Book, error) {
	var b row
	err := sqlx.GetContext(ctx, r.DB, &b, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return book.Book{}, book.ErrNotFound
	}
	if err != nil {
		return book.Book{}, fmt.Errorf("selecting book: %w", err)
	}
	return b.toBook(), nil
}

// SelectAll retorna todos os livros, ordenados por ID
func (r *Repository) SelectAll(ctx context.Context) ([]book.Book, error) {
	var rows []row
	err := sqlx.SelectContext(ctx, r.DB, &rows, "SELECT id, title, author, price, stock FROM books ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("selecting books: %w", err)
	}
	books := make([]book.Book, 0, len(rows))
	for _, b := range rows {
		books = append(books, b.toBook())
	}
	return books, nil
}

// Insert insere um novo livro e retorna o ID gerado
func (r *Repository) Insert(ctx context.Context, b book.Book) (int64, error) {
	query := `
		INSERT INTO books (title, author, price, stock)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var id int64
	err := r.DB.QueryRowxContext(ctx, query, b.Title, b.Author, b.Price, b.Stock).Scan(&id)
	if err != nil {
		return 0, translate(fmt.Errorf("inserting book: %w", err))
	}
	return id, nil
}

// Update atualiza um livro existente
func (r *Repository) Update(ctx context.Context, b book.Book) error {
	query := `
		UPDATE books
		SET title = $1, author = $2, price = $3, stock = $4
		WHERE id = $5
	`
	result, err := r.DB.ExecContext(ctx, query, b.Title, b.Author, b.Price, b.Stock, b.ID)
	if err != nil {
		return translate(fmt.Errorf("updating book: %w", err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rows == 0 {
		return book.ErrNotFound
	}
	return nil
}

// Delete remove um livro por ID; livros com vendas ficam
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM books WHERE id = $1", id)
	if postgres.IsForeignKeyViolation(err) {
		return book.ErrHasSales
	}
	if err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rows == 0 {
		return book.ErrNotFound
	}
	return nil
}

func translate(err error) error {
	if postgres.IsCheckViolation(err) {
		return apperr.Validation("book violates a storage constraint: price must be positive and stock cannot be negative")
	}
	if postgres.IsOutOfRange(err) {
		return apperr.Validation("book price or stock is out of range")
	}
	return err
}
