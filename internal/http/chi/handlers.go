package chi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
	"github.com/luuzuriaga/bookstore/book"
	"github.com/luuzuriaga/bookstore/customer"
	"github.com/luuzuriaga/bookstore/sale"
	"github.com/rs/zerolog"
)

// Probe checks the storage backend for /health and /test-db.
type Probe interface {
	Ping(ctx context.Context) error
	ServerTime(ctx context.Context) (time.Time, error)
}

// Dependencies agrupa o que a camada HTTP precisa. Metrics nil desliga o /metrics.
type Dependencies struct {
	Logger    zerolog.Logger
	Books     book.UseCase
	Customers customer.UseCase
	Sales     sale.UseCase
	Store     Probe
	Metrics   http.Handler
}

func Handlers(ctx context.Context, deps Dependencies) *chi.Mux {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(httplog.RequestLogger(deps.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", health(deps.Store).ServeHTTP)
	r.Get("/test-db", testDB(deps.Store).ServeHTTP)
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	r.Method(http.MethodGet, "/books", getBooks(deps.Books))
	r.Method(http.MethodGet, "/books/{id}", getBook(deps.Books))
	r.Method(http.MethodPost, "/books", postBooks(deps.Books))
	r.Method(http.MethodPut, "/books/{id}", putBook(deps.Books))
	r.Method(http.MethodDelete, "/books/{id}", deleteBook(deps.Books))

	r.Method(http.MethodGet, "/customers", getCustomers(deps.Customers))
	r.Method(http.MethodGet, "/customers/{id}", getCustomer(deps.Customers))
	r.Method(http.MethodPost, "/customers", postCustomers(deps.Customers))
	r.Method(http.MethodPut, "/customers/{id}", putCustomer(deps.Customers))
	r.Method(http.MethodDelete, "/customers/{id}", deleteCustomer(deps.Customers))

	r.Method(http.MethodGet, "/sales", getSales(deps.Sales))
	r.Method(http.MethodGet, "/sales/{id}", getSale(deps.Sales))
	r.Method(http.MethodPost, "/sales", postSales(deps.Sales))

	return r
}
