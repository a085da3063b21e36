package models

import "time"

// AllWarehouses is the synthetic warehouse id meaning "no filter"
const AllWarehouses = "all"

// Product represents a stocked item in one warehouse
type Product struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Category         string `json:"category"`
	Quantity         int    `json:"quantity"`
	ReorderThreshold int    `json:"reorderThreshold"`
	WarehouseID      string `json:"warehouseId"`
}

// IsLowStock reports whether the product is at or below its reorder threshold
func (p Product) IsLowStock() bool {
	return p.Quantity <= p.ReorderThreshold
}

// NewProduct is the input for creating a product
type NewProduct struct {
	Name             string `json:"name" validate:"required"`
	Category         string `json:"category" validate:"required"`
	Quantity         int    `json:"quantity" validate:"min=0"`
	ReorderThreshold int    `json:"reorderThreshold" validate:"min=0"`
	WarehouseID      string `json:"warehouseId" validate:"required"`
}

// ProductUpdate carries a partial product update; nil fields are left untouched
type ProductUpdate struct {
	Name             *string `json:"name,omitempty"`
	Category         *string `json:"category,omitempty"`
	Quantity         *int    `json:"quantity,omitempty"`
	ReorderThreshold *int    `json:"reorderThreshold,omitempty"`
	WarehouseID      *string `json:"warehouseId,omitempty"`
}

// Warehouse is static reference data
type Warehouse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// AlertStatus is the lifecycle state of an alert
type AlertStatus string

const (
	AlertStatusActive    AlertStatus = "active"
	AlertStatusResolved  AlertStatus = "resolved"
	AlertStatusDismissed AlertStatus = "dismissed"
)

// Alert is a low-stock alert. Product fields are copied at creation time.
type Alert struct {
	ID          string      `json:"id"`
	ProductID   string      `json:"productId"`
	ProductName string      `json:"productName"`
	Quantity    int         `json:"quantity"`
	Threshold   int         `json:"threshold"`
	Status      AlertStatus `json:"status"`
	Timestamp   time.Time   `json:"timestamp"`
}

// ActivityType classifies an activity entry
type ActivityType string

const (
	ActivityTypeShipment     ActivityType = "shipment"
	ActivityTypeOrder        ActivityType = "order"
	ActivityTypeProductAdded ActivityType = "product_added"
	ActivityTypeAlert        ActivityType = "alert"
)

// Activity is one entry of the bounded activity history
type Activity struct {
	ID          string       `json:"id"`
	Type        ActivityType `json:"type"`
	ProductName string       `json:"productName"`
	Quantity    int          `json:"quantity"`
	Message     string       `json:"message"`
	Timestamp   time.Time    `json:"timestamp"`
}

// Settings holds user preferences
type Settings struct {
	AlertSound       bool   `json:"alertSound"`
	DefaultThreshold int    `json:"defaultThreshold"`
	Theme            string `json:"theme"`
}

// DefaultSettings returns the settings a fresh ledger starts with
func DefaultSettings() Settings {
	return Settings{
		AlertSound:       true,
		DefaultThreshold: 10,
		Theme:            "light",
	}
}

// SettingsUpdate carries a partial settings update
type SettingsUpdate struct {
	AlertSound       *bool   `json:"alertSound,omitempty"`
	DefaultThreshold *int    `json:"defaultThreshold,omitempty"`
	Theme            *string `json:"theme,omitempty"`
}

// Severity of a user-facing notification
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Notification is a toast-style message emitted by ledger operations
type Notification struct {
	Severity Severity      `json:"severity"`
	Message  string        `json:"message"`
	Duration time.Duration `json:"duration,omitempty"` // display hint, zero means sink default
}

// Snapshot is a read-only copy of the whole ledger state
type Snapshot struct {
	Revision   int64       `json:"revision"`
	Products   []Product   `json:"products"`
	Alerts     []Alert     `json:"alerts"`
	Activities []Activity  `json:"activities"`
	Warehouses []Warehouse `json:"warehouses"`
	Settings   Settings    `json:"settings"`
}

// StockStatus filters products by stock level
type StockStatus string

const (
	StockStatusAll        StockStatus = "all"
	StockStatusLow        StockStatus = "low"
	StockStatusOut        StockStatus = "out"
	StockStatusSufficient StockStatus = "sufficient"
)

// ProductFilter selects products for listing
type ProductFilter struct {
	WarehouseID string      `json:"warehouseId"`
	Search      string      `json:"search"`
	Status      StockStatus `json:"status"`
}

// DashboardStats summarises the catalog for one warehouse or all of them
type DashboardStats struct {
	WarehouseID       string `json:"warehouseId"`
	TotalProducts     int    `json:"totalProducts"`
	LowStockItems     int    `json:"lowStockItems"`
	TotalQuantity     int    `json:"totalQuantity"`
	ShipmentsReceived int    `json:"shipmentsReceived"`
	OrdersFulfilled   int    `json:"ordersFulfilled"`
	ActiveAlerts      int    `json:"activeAlerts"`
}

// WarehouseStats aggregates the products stored in one warehouse
type WarehouseStats struct {
	Warehouse     Warehouse `json:"warehouse"`
	TotalProducts int       `json:"totalProducts"`
	TotalUnits    int       `json:"totalUnits"`
	LowStock      int       `json:"lowStock"`
	OutOfStock    int       `json:"outOfStock"`
}

// AlertCounts counts alerts per status
type AlertCounts struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Resolved  int `json:"resolved"`
	Dismissed int `json:"dismissed"`
}
