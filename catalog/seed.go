package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/luuzuriaga/bookstore/book"
	"github.com/luuzuriaga/bookstore/customer"
	"github.com/rs/zerolog"
)

// Result counts what a seed run created and what was already there.
type Result struct {
	BooksCreated     int
	BooksSkipped     int
	CustomersCreated int
	CustomersSkipped int
}

// Seeder writes a catalog through the use cases. Running it twice creates nothing new.
type Seeder struct {
	Books     book.UseCase
	Customers customer.UseCase
	Logger    zerolog.Logger
}

func NewSeeder(books book.UseCase, customers customer.UseCase, logger zerolog.Logger) *Seeder {
	return &Seeder{Books: books, Customers: customers, Logger: logger}
}

func (s *Seeder) Seed(ctx context.Context, l *Loader) (Result, error) {
	var res Result

	existing, err := s.Books.List(ctx)
	if err != nil {
		return res, fmt.Errorf("listing books: %w", err)
	}
	// livros não têm chave natural; título + autor basta para o seed
	known := make(map[[2]string]bool, len(existing))
	for _, b := range existing {
		known[[2]string{b.Title, b.Author}] = true
	}

	for _, e := range l.Books() {
		b := e.Book()
		if known[[2]string{b.Title, b.Author}] {
			res.BooksSkipped++
			continue
		}
		created, err := s.Books.Create(ctx, b.Title, b.Author, b.Price, b.Stock)
		if err != nil {
			return res, fmt.Errorf("creating book %q: %w", b.Title, err)
		}
		known[[2]string{b.Title, b.Author}] = true
		res.BooksCreated++
		s.Logger.Debug().Int64("book_id", created.ID).Str("title", created.Title).Msg("book seeded")
	}

	for _, e := range l.Customers() {
		c := e.Customer()
		created, err := s.Customers.Create(ctx, c.Name, c.Email)
		if errors.Is(err, customer.ErrDuplicateEmail) {
			res.CustomersSkipped++
			continue
		}
		if err != nil {
			return res, fmt.Errorf("creating customer %q: %w", c.Email, err)
		}
		res.CustomersCreated++
		s.Logger.Debug().Int64("customer_id", created.ID).Str("email", created.Email).Msg("customer seeded")
	}

	return res, nil
}
