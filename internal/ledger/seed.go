package ledger

import "inventory-ledger/internal/models"

// DefaultWarehouses returns the warehouse reference data, "all" first
func DefaultWarehouses() []models.Warehouse {
	return []models.Warehouse{
		{ID: models.AllWarehouses, Name: "All Warehouses", Location: "All Locations"},
		{ID: "wh1", Name: "Warehouse A", Location: "Khargone"},
		{ID: "wh2", Name: "Warehouse B", Location: "kasrawad"},
		{ID: "wh3", Name: "Warehouse C", Location: "Borawan"},
	}
}

// SeedProducts returns the demo catalog
func SeedProducts() []models.Product {
	return []models.Product{
		{ID: "1", Name: "Laptop", Quantity: 45, ReorderThreshold: 20, Category: "Electronics", WarehouseID: "wh1"},
		{ID: "2", Name: "Mouse", Quantity: 8, ReorderThreshold: 15, Category: "Electronics", WarehouseID: "wh1"},
		{ID: "3", Name: "Keyboard", Quantity: 32, ReorderThreshold: 10, Category: "Electronics", WarehouseID: "wh1"},
		{ID: "4", Name: "Monitor", Quantity: 18, ReorderThreshold: 8, Category: "Electronics", WarehouseID: "wh1"},
		{ID: "5", Name: "USB Cable", Quantity: 150, ReorderThreshold: 50, Category: "Accessories", WarehouseID: "wh2"},
		{ID: "6", Name: "Desk Chair", Quantity: 5, ReorderThreshold: 10, Category: "Furniture", WarehouseID: "wh2"},
		{ID: "7", Name: "Standing Desk", Quantity: 22, ReorderThreshold: 5, Category: "Furniture", WarehouseID: "wh2"},
		{ID: "8", Name: "Webcam", Quantity: 12, ReorderThreshold: 15, Category: "Electronics", WarehouseID: "wh3"},
	}
}
