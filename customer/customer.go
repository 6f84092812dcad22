package customer

// Customer is a buyer of the bookstore. Email identifies the customer and is unique.
type Customer struct {
	ID    int64
	Name  string
	Email string
}
