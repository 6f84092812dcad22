package metrics

import (
	"context"
	"fmt"
	"net/http"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// OTelExporter provides OpenTelemetry metrics export in Prometheus format
type OTelExporter struct {
	meterProvider *sdkmetric.MeterProvider
	registry      *promclient.Registry
	collector     Collector
	registration  metric.Registration

	meter           metric.Meter
	titlesGauge     metric.Int64ObservableGauge
	stockGauge      metric.Int64ObservableGauge
	outOfStockGauge metric.Int64ObservableGauge
	customersGauge  metric.Int64ObservableGauge
	salesGauge      metric.Int64ObservableGauge
	unitsSoldGauge  metric.Int64ObservableGauge
}

// NewOTelExporter creates a new OpenTelemetry metrics exporter backed by its own Prometheus registry
func NewOTelExporter(collector Collector) (*OTelExporter, error) {
	registry := promclient.NewRegistry()
	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(meterProvider)

	meter := meterProvider.Meter(
		"bookstore",
		metric.WithInstrumentationVersion("1.0.0"),
	)

	oe := &OTelExporter{
		meterProvider: meterProvider,
		registry:      registry,
		collector:     collector,
		meter:         meter,
	}

	if err := oe.registerInstruments(); err != nil {
		return nil, fmt.Errorf("registering instruments: %w", err)
	}

	return oe, nil
}

func (oe *OTelExporter) registerInstruments() error {
	gauges := []struct {
		target      *metric.Int64ObservableGauge
		name        string
		description string
		unit        string
	}{
		{&oe.titlesGauge, "bookstore.books.titles", "Number of books in the catalog", "{books}"},
		{&oe.stockGauge, "bookstore.books.stock", "Units in stock across every book", "{units}"},
		{&oe.outOfStockGauge, "bookstore.books.out_of_stock", "Number of books with no stock left", "{books}"},
		{&oe.customersGauge, "bookstore.customers", "Number of registered customers", "{customers}"},
		{&oe.salesGauge, "bookstore.sales", "Number of registered sales", "{sales}"},
		{&oe.unitsSoldGauge, "bookstore.sales.units", "Units sold across every sale", "{units}"},
	}

	instruments := make([]metric.Observable, 0, len(gauges))
	for _, g := range gauges {
		gauge, err := oe.meter.Int64ObservableGauge(
			g.name,
			metric.WithDescription(g.description),
			metric.WithUnit(g.unit),
		)
		if err != nil {
			return fmt.Errorf("creating %s gauge: %w", g.name, err)
		}
		*g.target = gauge
		instruments = append(instruments, gauge)
	}

	// um callback só: cada scrape faz uma única coleta para todos os gauges
	registration, err := oe.meter.RegisterCallback(oe.observe, instruments...)
	if err != nil {
		return fmt.Errorf("registering callback: %w", err)
	}
	oe.registration = registration
	return nil
}

func (oe *OTelExporter) observe(ctx context.Context, o metric.Observer) error {
	s, err := oe.collector.Collect(ctx)
	if err != nil {
		return err
	}
	o.ObserveInt64(oe.titlesGauge, s.Titles)
	o.ObserveInt64(oe.stockGauge, s.TotalStock)
	o.ObserveInt64(oe.outOfStockGauge, s.OutOfStock)
	o.ObserveInt64(oe.customersGauge, s.Customers)
	o.ObserveInt64(oe.salesGauge, s.Sales)
	o.ObserveInt64(oe.unitsSoldGauge, s.UnitsSold)
	return nil
}

// Meter is used by the instrumented use cases to create their own instruments.
func (oe *OTelExporter) Meter() metric.Meter {
	return oe.meter
}

// Handler serves Prometheus-formatted metrics
func (oe *OTelExporter) Handler() http.Handler {
	return promhttp.HandlerFor(oe.registry, promhttp.HandlerOpts{})
}

// Shutdown gracefully shuts down the meter provider
func (oe *OTelExporter) Shutdown(ctx context.Context) error {
	if oe.registration != nil {
		if err := oe.registration.Unregister(); err != nil {
			return fmt.Errorf("unregistering callback: %w", err)
		}
	}
	if oe.meterProvider != nil {
		return oe.meterProvider.Shutdown(ctx)
	}
	return nil
}
