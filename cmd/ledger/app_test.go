package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-ledger/internal/config"
	"inventory-ledger/internal/console"
)

func testConfig(exporter, seed string) *config.Config {
	return &config.Config{
		LogLevel:               "error",
		Environment:            "test",
		ActivityHistoryLimit:   "5",
		DefaultThreshold:       "12",
		SeedCatalog:            seed,
		MetricsExporter:        exporter,
		NotificationTTL:        "1m",
		WarningNotificationTTL: "1m",
	}
}

func TestNewApp_WiresConfiguration(t *testing.T) {
	// Arrange
	var out bytes.Buffer
	ctx := context.Background()

	// Act
	a, err := newApp(ctx, testConfig("prometheus", "true"), &out)

	// Assert
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.close(ctx) })

	assert.Equal(t, 12, a.ledger.Settings().DefaultThreshold)
	assert.Len(t, a.ledger.Snapshot().Products, 8)
	assert.NotNil(t, a.telemetry.Registry)

	for i := 0; i < 7; i++ {
		require.True(t, a.ledger.ReceiveShipment("1", 1))
	}
	assert.Len(t, a.ledger.Snapshot().Activities, 5)
	assert.Len(t, a.feed.Visible(), 7)
	assert.Contains(t, out.String(), "[success] Shipment of 1 units added to Laptop")
}

func TestNewApp_WithoutSeed(t *testing.T) {
	var out bytes.Buffer
	ctx := context.Background()

	a, err := newApp(ctx, testConfig("none", "false"), &out)

	require.NoError(t, err)
	t.Cleanup(func() { _ = a.close(ctx) })
	assert.Empty(t, a.ledger.Snapshot().Products)
	assert.Empty(t, a.ledger.Snapshot().Alerts)

	out.Reset()
	require.NoError(t, a.writeMetrics(&out))
	assert.Contains(t, out.String(), "not gathered in-process")
}

func TestNewApp_UnknownExporter(t *testing.T) {
	_, err := newApp(context.Background(), testConfig("carrier-pigeon", "true"), &bytes.Buffer{})

	assert.Error(t, err)
}

func TestWriteMetrics_Prometheus(t *testing.T) {
	var out bytes.Buffer
	ctx := context.Background()
	a, err := newApp(ctx, testConfig("prometheus", "true"), &out)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.close(ctx) })

	require.True(t, a.ledger.FulfillOrder("5", 10))

	out.Reset()
	require.NoError(t, a.writeMetrics(&out))
	assert.Contains(t, out.String(), `operation="fulfill_order"`)
	assert.Contains(t, out.String(), "ledger_units")
}

func executeRoot(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("METRICS_EXPORTER", "prometheus")
	t.Setenv("SEED_CATALOG", "true")
	t.Setenv("LOG_LEVEL", "error")
	t.Cleanup(func() { printMetrics = false })

	var out, errOut bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestRunCommand_ReadsStdin(t *testing.T) {
	out, err := executeRoot(t, "ship 2 10\nstats wh1\n", "run", "--metrics")

	require.NoError(t, err)
	assert.Contains(t, out, "[success] Shipment of 10 units added to Mouse")
	assert.Contains(t, out, "shipments received  1")
	assert.Contains(t, out, `operation="receive_shipment"`)
}

func TestRunCommand_ReportsFailedCommands(t *testing.T) {
	out, err := executeRoot(t, "ship 99 1\n", "run")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 command(s) failed")
	assert.Contains(t, out, `error: product "99": not found`)
}

func TestStatsCommand(t *testing.T) {
	out, err := executeRoot(t, "", "stats", "wh1")

	require.NoError(t, err)
	assert.Contains(t, out, "total products      4")
	assert.Contains(t, out, "Warehouse C")
}

func TestStatsCommand_UnknownWarehouse(t *testing.T) {
	out, err := executeRoot(t, "", "stats", "wh9")

	require.Error(t, err)
	assert.ErrorIs(t, err, console.ErrNotFound)
	assert.NotContains(t, out, "total products")
}
