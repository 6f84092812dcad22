package memory

import (
	"context"

	"github.com/luuzuriaga/bookstore/book"
	"github.com/luuzuriaga/bookstore/customer"
	"github.com/luuzuriaga/bookstore/sale"
)

type SaleRepository struct {
	s *Store
}

func (r *SaleRepository) Select(ctx context.Context, id int64) (sale.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sl, ok := r.s.sales[id]
	if !ok {
		return sale.Sale{}, sale.ErrNotFound
	}
	return sl, nil
}

func (r *SaleRepository) SelectAll(ctx context.Context) ([]sale.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.sales), nil
}

// tx runs with Store.mu already held.
type tx struct {
	s     *Store
	books map[int64]book.Book
	sales []sale.Sale
}

func (t *tx) Customers() customer.Reader { return txCustomers{t} }
func (t *tx) Books() book.StockKeeper    { return txBooks{t} }
func (t *tx) Sales() sale.Writer         { return txSales{t} }

type txCustomers struct{ t *tx }

func (c txCustomers) Select(ctx context.Context, id int64) (customer.Customer, error) {
	cu, ok := c.t.s.customers[id]
	if !ok {
		return customer.Customer{}, customer.ErrNotFound
	}
	return cu, nil
}

func (c txCustomers) SelectByEmail(ctx context.Context, email string) (customer.Customer, error) {
	cu, ok := c.t.s.emailOwner(email)
	if !ok {
		return customer.Customer{}, customer.ErrNotFound
	}
	return cu, nil
}

func (c txCustomers) SelectAll(ctx context.Context) ([]customer.Customer, error) {
	return sortedValues(c.t.s.customers), nil
}

type txBooks struct{ t *tx }

func (b txBooks) SelectForUpdate(ctx context.Context, id int64) (book.Book, error) {
	if staged, ok := b.t.books[id]; ok {
		return staged, nil
	}
	bk, ok := b.t.s.books[id]
	if !ok {
		return book.Book{}, book.ErrNotFound
	}
	return bk, nil
}

func (b txBooks) Update(ctx context.Context, bk book.Book) error {
	if _, ok := b.t.s.books[bk.ID]; !ok {
		return book.ErrNotFound
	}
	b.t.books[bk.ID] = bk
	return nil
}

type txSales struct{ t *tx }

func (s txSales) Insert(ctx context.Context, sl sale.Sale) (int64, error) {
	sl.ID = s.t.s.saleSeq + int64(len(s.t.sales)) + 1
	s.t.sales = append(s.t.sales, sl)
	return sl.ID, nil
}
