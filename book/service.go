package book

import (
	"context"
	"fmt"
	"strings"

	"github.com/luuzuriaga/bookstore/internal/apperr"
)

/*
 * - Quando uma struct representa DADOS deveria usar sempre value semantics e não pointer (ex: Book) .
 * Se a struct representa uma API deveria ser pointer (ex: Service).
 */

type UseCase interface {
	Create(ctx context.Context, title, author string, price float64, stock int) (Book, error)
	List(ctx context.Context) ([]Book, error)
	Get(ctx context.Context, id int64) (Book, error)
	Update(ctx context.Context, id int64, title, author string, price float64, stock int) (Book, error)
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	Repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{
		Repo: repo,
	}
}

// Validate checks the business rules every stored book must satisfy.
func Validate(b Book) error {
	if strings.TrimSpace(b.Title) == "" {
		return apperr.Validation("book title is required")
	}
	if strings.TrimSpace(b.Author) == "" {
		return apperr.Validation("book author is required")
	}
	if b.Price <= 0 {
		return apperr.Validation("price must be greater than zero, got %.2f", b.Price)
	}
	if b.Stock < 0 {
		return apperr.Validation("stock cannot be negative, got %d", b.Stock)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, title, author string, price float64, stock int) (Book, error) {
	b := Book{
		Title:  strings.TrimSpace(title),
		Author: strings.TrimSpace(author),
		Price:  price,
		Stock:  stock,
	}
	if err := Validate(b); err != nil {
		return Book{}, err
	}
	id, err := s.Repo.Insert(ctx, b)
	if err != nil {
		return Book{}, fmt.Errorf("inserting book: %w", err)
	}
	b.ID = id
	return b, nil
}

func (s *Service) List(ctx context.Context) ([]Book, error) {
	all, err := s.Repo.SelectAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("selecting books: %w", err)
	}
	return all, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Book, error) {
	b, err := s.Repo.Select(ctx, id)
	if err != nil {
		return Book{}, fmt.Errorf("selecting book: %w", err)
	}
	return b, nil
}

func (s *Service) Update(ctx context.Context, id int64, title, author string, price float64, stock int) (Book, error) {
	b := Book{
		ID:     id,
		Title:  strings.TrimSpace(title),
		Author: strings.TrimSpace(author),
		Price:  price,
		Stock:  stock,
	}
	if err := Validate(b); err != nil {
		return Book{}, err
	}
	err := s.Repo.Update(ctx, b)
	if err != nil {
		return Book{}, fmt.Errorf("updating book: %w", err)
	}
	return b, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.Repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}
	return nil
}
