package catalog

import (
	"fmt"
	"strings"

	"github.com/luuzuriaga/bookstore/book"
	"github.com/luuzuriaga/bookstore/customer"
)

/* Catalog representa o catalog.yaml: livros e clientes iniciais da loja.
 * As regras de validação são as mesmas dos serviços, assim um arquivo válido nunca falha no seed.
 */
type Catalog struct {
	Books     []BookEntry     `yaml:"books"`
	Customers []CustomerEntry `yaml:"customers"`
}

type BookEntry struct {
	Title  string  `yaml:"title"`
	Author string  `yaml:"author"`
	Price  float64 `yaml:"price"`
	Stock  int     `yaml:"stock"`
}

type CustomerEntry struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

func (e BookEntry) Book() book.Book {
	return book.Book{
		Title:  strings.TrimSpace(e.Title),
		Author: strings.TrimSpace(e.Author),
		Price:  e.Price,
		Stock:  e.Stock,
	}
}

func (e CustomerEntry) Customer() customer.Customer {
	return customer.Customer{
		Name:  strings.TrimSpace(e.Name),
		Email: strings.TrimSpace(e.Email),
	}
}

// Validate checks every entry; positions in messages are 1-based.
func (c *Catalog) Validate() error {
	for i, e := range c.Books {
		if err := book.Validate(e.Book()); err != nil {
			return fmt.Errorf("book %d (%q): %w", i+1, e.Title, err)
		}
	}
	seen := make(map[string]int, len(c.Customers))
	for i, e := range c.Customers {
		cu := e.Customer()
		if cu.Email == "" {
			return fmt.Errorf("customer %d (%q): %w", i+1, e.Name, customer.ErrEmailRequired)
		}
		if first, dup := seen[cu.Email]; dup {
			return fmt.Errorf("customer %d: %w (also customer %d)", i+1, customer.DuplicateEmail(cu.Email), first)
		}
		seen[cu.Email] = i + 1
	}
	return nil
}
