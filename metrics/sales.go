package metrics

import (
	"context"
	"fmt"

	"github.com/luuzuriaga/bookstore/internal/apperr"
	"github.com/luuzuriaga/bookstore/sale"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// InstrumentedSales counts sale registrations by outcome and delegates everything else.
type InstrumentedSales struct {
	next          sale.UseCase
	registrations metric.Int64Counter
}

func NewInstrumentedSales(next sale.UseCase, meter metric.Meter) (*InstrumentedSales, error) {
	registrations, err := meter.Int64Counter(
		"bookstore.sales.registrations",
		metric.WithDescription("Sale registration attempts by outcome"),
		metric.WithUnit("{registrations}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating registrations counter: %w", err)
	}
	return &InstrumentedSales{next: next, registrations: registrations}, nil
}

func (s *InstrumentedSales) Register(ctx context.Context, customerID, bookID int64, quantity int) (sale.Sale, error) {
	registered, err := s.next.Register(ctx, customerID, bookID, quantity)
	s.registrations.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome(err))))
	return registered, err
}

func (s *InstrumentedSales) List(ctx context.Context) ([]sale.Sale, error) {
	return s.next.List(ctx)
}

func (s *InstrumentedSales) Get(ctx context.Context, id int64) (sale.Sale, error) {
	return s.next.Get(ctx, id)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case apperr.IsValidation(err):
		return "validation"
	case apperr.IsNotFound(err):
		return "not_found"
	default:
		return "error"
	}
}
