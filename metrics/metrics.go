package metrics

import (
	"context"
	"time"
)

// Snapshot represents the current state of the bookstore.
type Snapshot struct {
	// Titles is the number of books in the catalog
	Titles int64 `json:"titles"`

	// TotalStock is the sum of the stock of every book
	TotalStock int64 `json:"total_stock"`

	// OutOfStock is the number of titles with no units left
	OutOfStock int64 `json:"out_of_stock"`

	Customers int64 `json:"customers"`
	Sales     int64 `json:"sales"`

	// UnitsSold is the sum of the quantity of every sale
	UnitsSold int64 `json:"units_sold"`

	// Timestamp when metrics were collected
	Timestamp time.Time `json:"timestamp"`
}

// Collector defines the interface for collecting metrics from the bookstore.
type Collector interface {
	Collect(ctx context.Context) (Snapshot, error)
}
