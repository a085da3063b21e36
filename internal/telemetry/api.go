package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"inventory-ledger/internal/models"
)

// MeterName is the instrumentation scope of ledger metrics
const MeterName = "inventory-ledger"

// LedgerTelemetry counts ledger operations and exposes gauges over the
// latest observed snapshot
type LedgerTelemetry struct {
	meter metric.Meter

	operationCounter metric.Int64Counter

	productsGauge      metric.Int64ObservableGauge
	lowStockGauge      metric.Int64ObservableGauge
	activeAlertsGauge  metric.Int64ObservableGauge
	unitsGauge         metric.Int64ObservableGauge
	gaugeRegistration  metric.Registration

	mu     sync.Mutex
	latest snapshotGauges
}

type snapshotGauges struct {
	products     int64
	lowStock     int64
	activeAlerts int64
	units        int64
}

// NewLedgerTelemetry creates the telemetry; a nil meter uses the global provider
func NewLedgerTelemetry(meter metric.Meter) *LedgerTelemetry {
	if meter == nil {
		meter = otel.Meter(MeterName)
	}
	return &LedgerTelemetry{meter: meter}
}

// InitializeTelemetry creates the instruments
func (t *LedgerTelemetry) InitializeTelemetry(ctx context.Context) error {
	slog.Info("Initializing ledger telemetry")

	var err error

	t.operationCounter, err = t.meter.Int64Counter(
		"ledger_operations",
		metric.WithDescription("Ledger operations by name and outcome"),
		metric.WithUnit("1"),
	)
	if err != nil {
		slog.Error("Failed to create operation counter", "error", err)
		return fmt.Errorf("failed to create operation counter: %w", err)
	}

	gauges := []struct {
		target *metric.Int64ObservableGauge
		name   string
		desc   string
	}{
		{&t.productsGauge, "ledger_products", "Products in the catalog"},
		{&t.lowStockGauge, "ledger_low_stock_products", "Products at or below their reorder threshold"},
		{&t.activeAlertsGauge, "ledger_active_alerts", "Alerts in the active state"},
		{&t.unitsGauge, "ledger_units", "Units on hand across all warehouses"},
	}
	for _, g := range gauges {
		*g.target, err = t.meter.Int64ObservableGauge(g.name, metric.WithDescription(g.desc))
		if err != nil {
			slog.Error("Failed to create gauge", "gauge", g.name, "error", err)
			return fmt.Errorf("failed to create gauge %s: %w", g.name, err)
		}
	}

	t.gaugeRegistration, err = t.meter.RegisterCallback(t.observeGauges,
		t.productsGauge, t.lowStockGauge, t.activeAlertsGauge, t.unitsGauge)
	if err != nil {
		slog.Error("Failed to register gauge callback", "error", err)
		return fmt.Errorf("failed to register gauge callback: %w", err)
	}

	slog.Info("Ledger telemetry initialized successfully")
	return nil
}

// RecordOperation counts one finished ledger operation
func (t *LedgerTelemetry) RecordOperation(operation, outcome string) {
	if t.operationCounter == nil {
		slog.Warn("Operation counter not initialized")
		return
	}

	t.operationCounter.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}

// ObserveSnapshot stores the gauge values of a snapshot. It has the shape of
// a ledger observer.
func (t *LedgerTelemetry) ObserveSnapshot(s models.Snapshot) {
	var g snapshotGauges
	g.products = int64(len(s.Products))
	for _, p := range s.Products {
		g.units += int64(p.Quantity)
		if p.IsLowStock() {
			g.lowStock++
		}
	}
	for _, a := range s.Alerts {
		if a.Status == models.AlertStatusActive {
			g.activeAlerts++
		}
	}

	t.mu.Lock()
	t.latest = g
	t.mu.Unlock()
}

func (t *LedgerTelemetry) observeGauges(_ context.Context, o metric.Observer) error {
	t.mu.Lock()
	g := t.latest
	t.mu.Unlock()

	o.ObserveInt64(t.productsGauge, g.products)
	o.ObserveInt64(t.lowStockGauge, g.lowStock)
	o.ObserveInt64(t.activeAlertsGauge, g.activeAlerts)
	o.ObserveInt64(t.unitsGauge, g.units)
	return nil
}

// Close unregisters the gauge callback
func (t *LedgerTelemetry) Close() error {
	if t.gaugeRegistration == nil {
		return nil
	}
	return t.gaugeRegistration.Unregister()
}
