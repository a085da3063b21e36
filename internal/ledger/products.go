package ledger

import (
	"fmt"

	"inventory-ledger/internal/models"
)

// AddProduct creates a product with a fresh id and records a product_added activity.
// Input is only checked structurally; the caller owns field-level validation.
func (l *Ledger) AddProduct(input models.NewProduct) (models.Product, error) {
	if err := validateProduct(input); err != nil {
		l.logger.Warn("Rejected product creation", "name", input.Name, "error", err)
		l.apply("add_product", func(tx *txn) { tx.outcome = OutcomeInvalid })
		return models.Product{}, err
	}

	var product models.Product
	l.apply("add_product", func(tx *txn) {
		product = models.Product{
			ID:               l.newID("prod"),
			Name:             input.Name,
			Category:         input.Category,
			Quantity:         input.Quantity,
			ReorderThreshold: input.ReorderThreshold,
			WarehouseID:      input.WarehouseID,
		}
		l.products = append(l.products, product)
		tx.changed = true
		tx.productsChanged = true

		l.addActivity(tx, models.ActivityTypeProductAdded, product.Name, product.Quantity,
			fmt.Sprintf("New product added: %s (%d units)", product.Name, product.Quantity))
		tx.notify(models.SeveritySuccess, fmt.Sprintf("Product %q added successfully", product.Name))

		l.logger.Info("Product added",
			"product_id", product.ID,
			"name", product.Name,
			"quantity", product.Quantity,
			"reorder_threshold", product.ReorderThreshold,
			"warehouse_id", product.WarehouseID)
	})

	return product, nil
}

// UpdateProduct merges updates into an existing product. An unknown id is a
// silent no-op and reports false with a nil error. When the merged product is
// no longer low on stock, its active alerts resolve.
func (l *Ledger) UpdateProduct(id string, updates models.ProductUpdate) (bool, error) {
	var (
		found bool
		err   error
	)

	l.apply("update_product", func(tx *txn) {
		i := l.productIndex(id)
		if i < 0 {
			tx.outcome = OutcomeSkipped
			l.logger.Debug("Update skipped, product not found", "product_id", id)
			return
		}
		found = true

		current := l.products[i]
		merged := mergeProduct(current, updates)
		if err = validateProduct(asNewProduct(merged)); err != nil {
			tx.outcome = OutcomeInvalid
			l.logger.Warn("Rejected product update", "product_id", id, "error", err)
			return
		}

		l.products[i] = merged
		tx.changed = true
		tx.productsChanged = true
		tx.notify(models.SeveritySuccess, fmt.Sprintf("Product %q updated successfully", current.Name))

		resolved := 0
		if !merged.IsLowStock() {
			resolved = l.transitionActiveAlerts(id, models.AlertStatusResolved)
		}

		l.logger.Info("Product updated",
			"product_id", id,
			"old_quantity", current.Quantity,
			"new_quantity", merged.Quantity,
			"reorder_threshold", merged.ReorderThreshold,
			"alerts_resolved", resolved)
	})

	return found, err
}

// DeleteProduct removes a product. Alerts that reference it are left in place.
func (l *Ledger) DeleteProduct(id string) bool {
	var removed bool

	l.apply("delete_product", func(tx *txn) {
		i := l.productIndex(id)
		if i < 0 {
			tx.outcome = OutcomeSkipped
			l.logger.Debug("Delete skipped, product not found", "product_id", id)
			return
		}

		product := l.products[i]
		l.products = append(l.products[:i:i], l.products[i+1:]...)
		removed = true
		tx.changed = true
		tx.productsChanged = true
		tx.notify(models.SeveritySuccess, fmt.Sprintf("Product %q deleted successfully", product.Name))

		l.logger.Info("Product deleted", "product_id", id, "name", product.Name)
	})

	return removed
}
