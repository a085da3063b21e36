package telemetry

import (
	"bytes"
	"context"
	"strings"
	"testing"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-ledger/internal/ledger"
	"inventory-ledger/internal/logging"
)

// matchesName tolerates exporter suffixes such as _total
func matchesName(name, want string) bool {
	return name == want || strings.HasPrefix(name, want+"_")
}

func findSample(samples []Sample, name string, labels map[string]string) (Sample, bool) {
	for _, s := range samples {
		if !matchesName(s.Name, name) {
			continue
		}
		ok := true
		for k, v := range labels {
			if s.Labels[k] != v {
				ok = false
				break
			}
		}
		if ok {
			return s, true
		}
	}
	return Sample{}, false
}

func setupLedgerTelemetry(t *testing.T) (*Telemetry, *LedgerTelemetry, *ledger.Ledger) {
	t.Helper()

	tel, err := InitMetrics(Config{Exporter: ExporterPrometheus, Registry: promclient.NewRegistry()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = tel.Close(context.Background()) })

	lt := NewLedgerTelemetry(tel.Meter(MeterName))
	require.NoError(t, lt.InitializeTelemetry(context.Background()))
	t.Cleanup(func() { _ = lt.Close() })

	l := ledger.New(
		ledger.WithProducts(ledger.SeedProducts()),
		ledger.WithRecorder(lt),
		ledger.WithLogger(logging.Discard()),
	)
	l.Subscribe(lt.ObserveSnapshot)
	lt.ObserveSnapshot(l.Snapshot())

	return tel, lt, l
}

func TestInitMetrics_Exporters(t *testing.T) {
	testCases := []struct {
		name        string
		exporter    string
		expectError bool
		hasRegistry bool
	}{
		{"Prometheus", ExporterPrometheus, false, true},
		{"Empty defaults to prometheus", "", false, true},
		{"Stdout", ExporterStdout, false, false},
		{"None", ExporterNone, false, false},
		{"Unknown", "otlp", true, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer

			tel, err := InitMetrics(Config{Exporter: tc.exporter, Writer: &buf})

			if tc.expectError {
				assert.ErrorIs(t, err, ErrUnknownExporter)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, tel.Provider)
			assert.Equal(t, tc.hasRegistry, tel.Registry != nil)
			assert.NoError(t, tel.Close(context.Background()))
		})
	}
}

func TestLedgerTelemetry_CountsOperationsByOutcome(t *testing.T) {
	// Arrange
	tel, _, l := setupLedgerTelemetry(t)

	// Act
	require.True(t, l.FulfillOrder("1", 5))
	require.True(t, l.FulfillOrder("3", 2))
	require.False(t, l.FulfillOrder("1", 1000))
	require.False(t, l.ReceiveShipment("missing", 1))

	// Assert
	samples, err := Gather(tel.Registry)
	require.NoError(t, err)

	applied, ok := findSample(samples, "ledger_operations", map[string]string{"operation": "fulfill_order", "outcome": ledger.OutcomeApplied})
	require.True(t, ok)
	assert.Equal(t, 2.0, applied.Value)

	rejected, ok := findSample(samples, "ledger_operations", map[string]string{"operation": "fulfill_order", "outcome": ledger.OutcomeRejected})
	require.True(t, ok)
	assert.Equal(t, 1.0, rejected.Value)

	skipped, ok := findSample(samples, "ledger_operations", map[string]string{"operation": "receive_shipment", "outcome": ledger.OutcomeSkipped})
	require.True(t, ok)
	assert.Equal(t, 1.0, skipped.Value)
}

func TestLedgerTelemetry_GaugesFollowSnapshots(t *testing.T) {
	// Arrange
	tel, _, l := setupLedgerTelemetry(t)

	gauge := func(samples []Sample, name string) float64 {
		s, ok := findSample(samples, name, nil)
		require.True(t, ok, "missing gauge %s", name)
		return s.Value
	}

	samples, err := Gather(tel.Registry)
	require.NoError(t, err)
	assert.Equal(t, 8.0, gauge(samples, "ledger_products"))
	assert.Equal(t, 3.0, gauge(samples, "ledger_low_stock_products"))
	assert.Equal(t, 3.0, gauge(samples, "ledger_active_alerts"))
	assert.Equal(t, 292.0, gauge(samples, "ledger_units"))

	// Act
	require.True(t, l.ReceiveShipment("2", 50))

	// Assert
	samples, err = Gather(tel.Registry)
	require.NoError(t, err)
	assert.Equal(t, 2.0, gauge(samples, "ledger_low_stock_products"))
	assert.Equal(t, 2.0, gauge(samples, "ledger_active_alerts"))
	assert.Equal(t, 342.0, gauge(samples, "ledger_units"))
}

func TestRecordOperation_BeforeInitializeIsNoop(t *testing.T) {
	lt := NewLedgerTelemetry(nil)

	assert.NotPanics(t, func() { lt.RecordOperation("add_product", ledger.OutcomeApplied) })
	assert.NoError(t, lt.Close())
}

func TestWriteSamples(t *testing.T) {
	var buf bytes.Buffer

	err := WriteSamples(&buf, []Sample{
		{Name: "ledger_units", Labels: map[string]string{}, Value: 42},
		{Name: "ledger_operations", Labels: map[string]string{"outcome": "applied", "operation": "add_product"}, Value: 3},
	})

	require.NoError(t, err)
	assert.Equal(t,
		"ledger_units 42\nledger_operations{operation=\"add_product\",outcome=\"applied\"} 3\n",
		buf.String())
}
