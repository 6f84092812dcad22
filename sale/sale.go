package sale

import "time"

// Sale records a quantity of one book bought by one customer. Sales are never updated or deleted.
type Sale struct {
	ID         int64
	CustomerID int64
	BookID     int64
	Quantity   int
	CreatedAt  time.Time
}
