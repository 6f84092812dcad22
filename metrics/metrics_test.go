package metrics_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/luuzuriaga/bookstore/book"
	"github.com/luuzuriaga/bookstore/customer"
	"github.com/luuzuriaga/bookstore/internal/storage/memory"
	"github.com/luuzuriaga/bookstore/metrics"
	"github.com/luuzuriaga/bookstore/sale"
	salemocks "github.com/luuzuriaga/bookstore/sale/mocks"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

type services struct {
	books     *book.Service
	customers *customer.Service
	sales     *sale.Service
}

// seeded has three titles (one sold out) and two sales totalling four units.
func seeded(t *testing.T) services {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	s := services{
		books:     book.NewService(store.Books()),
		customers: customer.NewService(store.Customers()),
		sales:     sale.NewService(store.Sales(), store, zerolog.Nop()),
	}
	dune, err := s.books.Create(ctx, "Dune", "Frank Herbert", 25, 5)
	require.NoError(t, err)
	_, err = s.books.Create(ctx, "1984", "George Orwell", 15, 0)
	require.NoError(t, err)
	_, err = s.books.Create(ctx, "Emma", "Jane Austen", 12, 2)
	require.NoError(t, err)
	ada, err := s.customers.Create(ctx, "Ada", "ada@example.com")
	require.NoError(t, err)
	_, err = s.sales.Register(ctx, ada.ID, dune.ID, 3)
	require.NoError(t, err)
	_, err = s.sales.Register(ctx, ada.ID, dune.ID, 1)
	require.NoError(t, err)
	return s
}

func TestStoreCollector(t *testing.T) {
	s := seeded(t)
	c := metrics.NewStoreCollector(s.books, s.customers, s.sales)
	snap, err := c.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), snap.Titles)
	assert.Equal(t, int64(3), snap.TotalStock)
	assert.Equal(t, int64(1), snap.OutOfStock)
	assert.Equal(t, int64(1), snap.Customers)
	assert.Equal(t, int64(2), snap.Sales)
	assert.Equal(t, int64(4), snap.UnitsSold)
	assert.False(t, snap.Timestamp.IsZero())
}

func TestStoreCollectorFailure(t *testing.T) {
	s := seeded(t)
	sales := salemocks.NewUseCase(t)
	sales.On("List", mock.Anything).Return(nil, errors.New("connection refused"))
	c := metrics.NewStoreCollector(s.books, s.customers, sales)
	_, err := c.Collect(context.Background())
	assert.EqualError(t, err, "listing sales: connection refused")
}

func scrape(t *testing.T, h http.Handler) string {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	return string(body)
}

func sample(name string, value string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^` + name + `(\{[^}]*\})? ` + value + `$`)
}

func TestOTelExporter(t *testing.T) {
	ctx := context.Background()
	s := seeded(t)
	exporter, err := metrics.NewOTelExporter(metrics.NewStoreCollector(s.books, s.customers, s.sales))
	require.NoError(t, err)
	defer exporter.Shutdown(ctx)

	instrumented, err := metrics.NewInstrumentedSales(s.sales, exporter.Meter())
	require.NoError(t, err)
	_, err = instrumented.Register(ctx, 1, 1, 100)
	require.Error(t, err)

	body := scrape(t, exporter.Handler())
	assert.Regexp(t, sample("bookstore_books_titles", "3"), body)
	assert.Regexp(t, sample("bookstore_books_stock", "3"), body)
	assert.Regexp(t, sample("bookstore_books_out_of_stock", "1"), body)
	assert.Regexp(t, sample("bookstore_customers", "1"), body)
	assert.Regexp(t, sample("bookstore_sales", "2"), body)
	assert.Regexp(t, sample("bookstore_sales_units", "4"), body)
	assert.Regexp(t, regexp.MustCompile(`bookstore_sales_registrations(_total)?\{[^}]*outcome="validation"[^}]*\} 1`), body)
}

func TestTwoExportersDoNotCollide(t *testing.T) {
	s := seeded(t)
	c := metrics.NewStoreCollector(s.books, s.customers, s.sales)
	first, err := metrics.NewOTelExporter(c)
	require.NoError(t, err)
	defer first.Shutdown(context.Background())
	second, err := metrics.NewOTelExporter(c)
	require.NoError(t, err)
	defer second.Shutdown(context.Background())
}

func TestInstrumentedSales(t *testing.T) {
	ctx := context.Background()
	s := seeded(t)
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	instrumented, err := metrics.NewInstrumentedSales(s.sales, provider.Meter("test"))
	require.NoError(t, err)

	_, err = instrumented.Register(ctx, 1, 3, 1)
	require.NoError(t, err)
	_, err = instrumented.Register(ctx, 1, 3, 1)
	require.NoError(t, err)
	_, err = instrumented.Register(ctx, 1, 2, 1)
	require.Error(t, err)
	_, err = instrumented.Register(ctx, 1, 42, 1)
	require.Error(t, err)
	_, err = instrumented.Register(ctx, 1, 3, 0)
	require.Error(t, err)

	all, err := instrumented.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	got, err := instrumented.Get(ctx, all[0].ID)
	require.NoError(t, err)
	assert.Equal(t, all[0], got)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	counts := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "bookstore.sales.registrations" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				v, _ := dp.Attributes.Value(attribute.Key("outcome"))
				counts[v.AsString()] = dp.Value
			}
		}
	}
	assert.Equal(t, map[string]int64{"success": 2, "validation": 2, "not_found": 1}, counts)
}
