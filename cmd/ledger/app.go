package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"inventory-ledger/internal/config"
	"inventory-ledger/internal/console"
	"inventory-ledger/internal/ledger"
	"inventory-ledger/internal/models"
	"inventory-ledger/internal/notify"
	"inventory-ledger/internal/telemetry"
)

// app is the wired ledger with its telemetry, notification feed and console
type app struct {
	ledger          *ledger.Ledger
	console         *console.Console
	feed            *notify.Feed
	telemetry       *telemetry.Telemetry
	ledgerTelemetry *telemetry.LedgerTelemetry
}

func newApp(ctx context.Context, cfg *config.Config, out io.Writer) (*app, error) {
	tel, err := telemetry.InitMetrics(telemetry.Config{Exporter: cfg.MetricsExporter, Writer: out})
	if err != nil {
		return nil, fmt.Errorf("init metrics: %w", err)
	}

	lt := telemetry.NewLedgerTelemetry(tel.Meter(telemetry.MeterName))
	if err := lt.InitializeTelemetry(ctx); err != nil {
		_ = tel.Close(ctx)
		return nil, fmt.Errorf("init ledger telemetry: %w", err)
	}

	feed := notify.NewFeed(notify.FeedConfig{
		DefaultDuration: cfg.NotificationDuration(),
		WarningDuration: cfg.WarningNotificationDuration(),
	})

	settings := models.DefaultSettings()
	settings.DefaultThreshold = cfg.Threshold()

	opts := []ledger.Option{
		ledger.WithSettings(settings),
		ledger.WithHistoryLimit(cfg.HistoryLimit()),
		ledger.WithSink(notify.Multi{
			notify.NewLogSink(slog.Default()),
			feed,
			console.NotificationPrinter(out),
		}),
		ledger.WithRecorder(lt),
	}
	if cfg.SeedEnabled() {
		opts = append(opts, ledger.WithProducts(ledger.SeedProducts()))
	}

	l := ledger.New(opts...)
	l.Subscribe(lt.ObserveSnapshot)
	lt.ObserveSnapshot(l.Snapshot())

	return &app{
		ledger:          l,
		console:         console.New(l, out, console.WithFeed(feed)),
		feed:            feed,
		telemetry:       tel,
		ledgerTelemetry: lt,
	}, nil
}

func (a *app) hasWarehouse(id string) bool {
	for _, w := range a.ledger.Warehouses() {
		if w.ID == id {
			return true
		}
	}
	return false
}

// writeMetrics prints the in-process registry; other exporters have nothing to gather
func (a *app) writeMetrics(w io.Writer) error {
	if a.telemetry.Registry == nil {
		fmt.Fprintln(w, "metrics are not gathered in-process for this exporter")
		return nil
	}
	samples, err := telemetry.Gather(a.telemetry.Registry)
	if err != nil {
		return err
	}
	return telemetry.WriteSamples(w, samples)
}

func (a *app) close(ctx context.Context) error {
	if err := a.ledgerTelemetry.Close(); err != nil {
		slog.Warn("Failed to unregister ledger gauges", "error", err)
	}
	return a.telemetry.Close(ctx)
}
