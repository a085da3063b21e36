package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-ledger/internal/models"
)

func productIDs(products []models.Product) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

func TestDashboardStats_SeedCatalog(t *testing.T) {
	l, _ := newTestLedger(t, SeedProducts())
	require.True(t, l.ReceiveShipment("1", 5))
	require.True(t, l.FulfillOrder("5", 10))

	all := l.DashboardStats(models.AllWarehouses)
	assert.Equal(t, models.DashboardStats{
		WarehouseID:       "all",
		TotalProducts:     8,
		LowStockItems:     3,
		TotalQuantity:     287,
		ShipmentsReceived: 1,
		OrdersFulfilled:   1,
		ActiveAlerts:      3,
	}, all)

	wh1 := l.DashboardStats("wh1")
	assert.Equal(t, 4, wh1.TotalProducts)
	assert.Equal(t, 1, wh1.LowStockItems)
	assert.Equal(t, 108, wh1.TotalQuantity)

	assert.Equal(t, "all", l.DashboardStats("").WarehouseID)
}

func TestWarehouseStats_SkipsAllEntry(t *testing.T) {
	l, _ := newTestLedger(t, SeedProducts())
	require.True(t, l.FulfillOrder("6", 5))

	stats := l.WarehouseStats()

	require.Len(t, stats, 3)
	assert.Equal(t, models.WarehouseStats{
		Warehouse:     models.Warehouse{ID: "wh1", Name: "Warehouse A", Location: "Khargone"},
		TotalProducts: 4, TotalUnits: 103, LowStock: 1, OutOfStock: 0,
	}, stats[0])
	assert.Equal(t, 3, stats[1].TotalProducts)
	assert.Equal(t, 172, stats[1].TotalUnits)
	assert.Equal(t, 1, stats[1].LowStock)
	assert.Equal(t, 1, stats[1].OutOfStock)
	assert.Equal(t, 12, stats[2].TotalUnits)
}

func TestFilterProducts(t *testing.T) {
	l, _ := newTestLedger(t, SeedProducts())
	require.True(t, l.FulfillOrder("6", 5))

	testCases := []struct {
		name     string
		filter   models.ProductFilter
		expected []string
	}{
		{"No filter", models.ProductFilter{}, []string{"1", "2", "3", "4", "5", "6", "7", "8"}},
		{"All warehouses sentinel", models.ProductFilter{WarehouseID: "all", Status: models.StockStatusAll}, []string{"1", "2", "3", "4", "5", "6", "7", "8"}},
		{"Warehouse", models.ProductFilter{WarehouseID: "wh2"}, []string{"5", "6", "7"}},
		{"Search by name is case insensitive", models.ProductFilter{Search: "MO"}, []string{"2", "4"}},
		{"Search by id", models.ProductFilter{Search: "7"}, []string{"7"}},
		{"Low excludes out of stock", models.ProductFilter{Status: models.StockStatusLow}, []string{"2", "8"}},
		{"Out of stock", models.ProductFilter{Status: models.StockStatusOut}, []string{"6"}},
		{"Sufficient", models.ProductFilter{Status: models.StockStatusSufficient, WarehouseID: "wh1"}, []string{"1", "3", "4"}},
		{"No match", models.ProductFilter{Search: "tablet"}, []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, productIDs(l.FilterProducts(tc.filter)))
		})
	}
}

func TestAlertCounts(t *testing.T) {
	l, _ := newTestLedger(t, SeedProducts())
	snap := l.Snapshot()
	require.Len(t, snap.Alerts, 3)

	require.True(t, l.DismissAlert(snap.Alerts[0].ID))
	require.True(t, l.ReceiveShipment("2", 50))

	// The shipment reruns the scan, which raises a fresh alert for the dismissed product
	assert.Equal(t, models.AlertCounts{Total: 4, Active: 2, Resolved: 1, Dismissed: 1}, l.AlertCounts())
}
