package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	api "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Supported values of the METRICS_EXPORTER setting
const (
	ExporterPrometheus = "prometheus"
	ExporterStdout     = "stdout"
	ExporterNone       = "none"
)

// ErrUnknownExporter is returned for an unsupported exporter name
var ErrUnknownExporter = errors.New("unknown metrics exporter")

// Config selects how metrics leave the process
type Config struct {
	Exporter string
	// Registry receives the Prometheus collector; a fresh one is created when nil
	Registry *promclient.Registry
	// Writer receives stdout exporter output; defaults to os.Stdout
	Writer io.Writer
}

// Telemetry owns the OpenTelemetry meter provider
type Telemetry struct {
	Provider *metric.MeterProvider
	// Registry is set for the prometheus exporter and can be gathered in-process
	Registry *promclient.Registry
}

// InitMetrics builds a meter provider for the configured exporter and installs it globally.
// Metrics are never served over the network: the Prometheus exporter only feeds an
// in-process registry and the stdout exporter writes on shutdown.
func InitMetrics(cfg Config) (*Telemetry, error) {
	t := &Telemetry{}

	switch cfg.Exporter {
	case ExporterPrometheus, "":
		reg := cfg.Registry
		if reg == nil {
			reg = promclient.NewRegistry()
		}
		exporter, err := prometheus.New(
			prometheus.WithRegisterer(reg),
			prometheus.WithoutUnits(),
			prometheus.WithoutCounterSuffixes(),
			prometheus.WithoutScopeInfo(),
			prometheus.WithoutTargetInfo(),
		)
		if err != nil {
			slog.Error("Creating prometheus exporter", "error", err)
			return nil, fmt.Errorf("create prometheus exporter: %w", err)
		}
		t.Registry = reg
		t.Provider = metric.NewMeterProvider(metric.WithReader(exporter))

	case ExporterStdout:
		w := cfg.Writer
		if w == nil {
			w = os.Stdout
		}
		exporter, err := stdoutmetric.New(stdoutmetric.WithWriter(w), stdoutmetric.WithPrettyPrint())
		if err != nil {
			slog.Error("Creating stdout exporter", "error", err)
			return nil, fmt.Errorf("create stdout metric exporter: %w", err)
		}
		t.Provider = metric.NewMeterProvider(metric.WithReader(metric.NewPeriodicReader(exporter)))

	case ExporterNone:
		t.Provider = metric.NewMeterProvider()

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownExporter, cfg.Exporter)
	}

	otel.SetMeterProvider(t.Provider)
	slog.Info("Metrics initialized", "exporter", cfg.Exporter)

	return t, nil
}

// Meter returns a meter from this provider
func (t *Telemetry) Meter(name string) api.Meter {
	return t.Provider.Meter(name)
}

// Close flushes pending metrics and stops the provider
func (t *Telemetry) Close(ctx context.Context) error {
	if t == nil || t.Provider == nil {
		return nil
	}
	if err := t.Provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown meter provider: %w", err)
	}
	return nil
}
