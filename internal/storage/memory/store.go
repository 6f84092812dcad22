// Package memory keeps books, customers and sales in process memory.
// It backs the unit tests and the default development setup.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/luuzuriaga/bookstore/book"
	"github.com/luuzuriaga/bookstore/customer"
	"github.com/luuzuriaga/bookstore/sale"
)

/* Um único mutex protege os três mapas.
 * WithinTx segura o mutex até o commit, então duas vendas nunca se intercalam.
 */
type Store struct {
	mu        sync.Mutex
	books     map[int64]book.Book
	customers map[int64]customer.Customer
	sales     map[int64]sale.Sale
	bookSeq   int64
	custSeq   int64
	saleSeq   int64
	now       func() time.Time
}

func New() *Store {
	return &Store{
		books:     make(map[int64]book.Book),
		customers: make(map[int64]customer.Customer),
		sales:     make(map[int64]sale.Sale),
		now:       time.Now,
	}
}

func (s *Store) Books() *BookRepository {
	return &BookRepository{s: s}
}

func (s *Store) Customers() *CustomerRepository {
	return &CustomerRepository{s: s}
}

func (s *Store) Sales() *SaleRepository {
	return &SaleRepository{s: s}
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// ServerTime reports the process clock; there is no remote server to ask.
func (s *Store) ServerTime(ctx context.Context) (time.Time, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, err
	}
	return s.now().UTC(), nil
}

func (s *Store) Close() error {
	return nil
}

// WithinTx stages stock updates and new sales and applies them only when fn succeeds.
// fn must use tx exclusively: calling the Store repositories from inside it deadlocks.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx sale.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &tx{s: s, books: make(map[int64]book.Book)}
	if err := fn(ctx, t); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	for id, b := range t.books {
		s.books[id] = b
	}
	for _, sl := range t.sales {
		s.sales[sl.ID] = sl
	}
	s.saleSeq += int64(len(t.sales))
	return nil
}

func (s *Store) bookHasSales(id int64) bool {
	for _, sl := range s.sales {
		if sl.BookID == id {
			return true
		}
	}
	return false
}

func (s *Store) customerHasSales(id int64) bool {
	for _, sl := range s.sales {
		if sl.CustomerID == id {
			return true
		}
	}
	return false
}

func (s *Store) emailOwner(email string) (customer.Customer, bool) {
	for _, c := range s.customers {
		if c.Email == email {
			return c, true
		}
	}
	return customer.Customer{}, false
}

func sortedValues[T any](m map[int64]T) []T {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	all := make([]T, 0, len(ids))
	for _, id := range ids {
		all = append(all, m[id])
	}
	return all
}
