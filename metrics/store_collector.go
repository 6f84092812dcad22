package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/luuzuriaga/bookstore/book"
	"github.com/luuzuriaga/bookstore/customer"
	"github.com/luuzuriaga/bookstore/sale"
)

// StoreCollector builds snapshots from the use cases, so it works with any storage driver.
type StoreCollector struct {
	books     book.UseCase
	customers customer.UseCase
	sales     sale.UseCase
	now       func() time.Time
}

func NewStoreCollector(books book.UseCase, customers customer.UseCase, sales sale.UseCase) *StoreCollector {
	return &StoreCollector{
		books:     books,
		customers: customers,
		sales:     sales,
		now:       time.Now,
	}
}

func (c *StoreCollector) Collect(ctx context.Context) (Snapshot, error) {
	books, err := c.books.List(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("listing books: %w", err)
	}
	customers, err := c.customers.List(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("listing customers: %w", err)
	}
	sales, err := c.sales.List(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("listing sales: %w", err)
	}

	s := Snapshot{
		Titles:    int64(len(books)),
		Customers: int64(len(customers)),
		Sales:     int64(len(sales)),
		Timestamp: c.now(),
	}
	for _, b := range books {
		s.TotalStock += int64(b.Stock)
		if b.Stock == 0 {
			s.OutOfStock++
		}
	}
	for _, sl := range sales {
		s.UnitsSold += int64(sl.Quantity)
	}
	return s, nil
}
