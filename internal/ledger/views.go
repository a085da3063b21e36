package ledger

import (
	"strings"

	"inventory-ledger/internal/models"
)

// The functions below derive dashboard views from a snapshot. They never
// touch ledger state, so callers can compute them from any snapshot they hold.

func inWarehouse(p models.Product, warehouseID string) bool {
	return warehouseID == "" || warehouseID == models.AllWarehouses || p.WarehouseID == warehouseID
}

// ComputeDashboard summarises products in one warehouse ("all" for every one).
// Shipment and order counts come from the retained activity history.
func ComputeDashboard(s models.Snapshot, warehouseID string) models.DashboardStats {
	if warehouseID == "" {
		warehouseID = models.AllWarehouses
	}
	stats := models.DashboardStats{WarehouseID: warehouseID}

	for _, p := range s.Products {
		if !inWarehouse(p, warehouseID) {
			continue
		}
		stats.TotalProducts++
		stats.TotalQuantity += p.Quantity
		if p.IsLowStock() {
			stats.LowStockItems++
		}
	}

	for _, a := range s.Activities {
		switch a.Type {
		case models.ActivityTypeShipment:
			stats.ShipmentsReceived++
		case models.ActivityTypeOrder:
			stats.OrdersFulfilled++
		}
	}

	for _, a := range s.Alerts {
		if a.Status == models.AlertStatusActive {
			stats.ActiveAlerts++
		}
	}

	return stats
}

// ComputeWarehouseStats aggregates products per real warehouse, skipping "all"
func ComputeWarehouseStats(s models.Snapshot) []models.WarehouseStats {
	out := make([]models.WarehouseStats, 0, len(s.Warehouses))
	for _, w := range s.Warehouses {
		if w.ID == models.AllWarehouses {
			continue
		}
		ws := models.WarehouseStats{Warehouse: w}
		for _, p := range s.Products {
			if p.WarehouseID != w.ID {
				continue
			}
			ws.TotalProducts++
			ws.TotalUnits += p.Quantity
			if p.IsLowStock() {
				ws.LowStock++
			}
			if p.Quantity == 0 {
				ws.OutOfStock++
			}
		}
		out = append(out, ws)
	}
	return out
}

// FilterProducts applies the product table filters: warehouse, a
// case-insensitive search over name or id, and a stock status.
func FilterProducts(s models.Snapshot, filter models.ProductFilter) []models.Product {
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	out := make([]models.Product, 0, len(s.Products))
	for _, p := range s.Products {
		if !inWarehouse(p, filter.WarehouseID) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.ID), search) {
			continue
		}
		if !matchesStatus(p, filter.Status) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesStatus(p models.Product, status models.StockStatus) bool {
	switch status {
	case models.StockStatusLow:
		return p.IsLowStock() && p.Quantity > 0
	case models.StockStatusOut:
		return p.Quantity == 0
	case models.StockStatusSufficient:
		return !p.IsLowStock()
	default:
		return true
	}
}

// CountAlerts counts alerts per status
func CountAlerts(s models.Snapshot) models.AlertCounts {
	counts := models.AlertCounts{Total: len(s.Alerts)}
	for _, a := range s.Alerts {
		switch a.Status {
		case models.AlertStatusActive:
			counts.Active++
		case models.AlertStatusResolved:
			counts.Resolved++
		case models.AlertStatusDismissed:
			counts.Dismissed++
		}
	}
	return counts
}

// DashboardStats computes ComputeDashboard over the current state
func (l *Ledger) DashboardStats(warehouseID string) models.DashboardStats {
	return ComputeDashboard(l.Snapshot(), warehouseID)
}

// WarehouseStats computes ComputeWarehouseStats over the current state
func (l *Ledger) WarehouseStats() []models.WarehouseStats {
	return ComputeWarehouseStats(l.Snapshot())
}

// FilterProducts lists products of the current state matching filter
func (l *Ledger) FilterProducts(filter models.ProductFilter) []models.Product {
	return FilterProducts(l.Snapshot(), filter)
}

// AlertCounts counts alerts of the current state per status
func (l *Ledger) AlertCounts() models.AlertCounts {
	return CountAlerts(l.Snapshot())
}
