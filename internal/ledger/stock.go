package ledger

import (
	"fmt"
	"math"

	"inventory-ledger/internal/models"
)

// ReceiveShipment adds quantity units to a product's stock. It reports false
// without touching state when the product is unknown, quantity is not positive
// or the new stock would not fit in an int.
// Once stock is above the reorder threshold, the product's active alerts resolve.
func (l *Ledger) ReceiveShipment(productID string, quantity int) bool {
	var ok bool

	l.apply("receive_shipment", func(tx *txn) {
		i := l.productIndex(productID)
		if i < 0 {
			tx.outcome = OutcomeSkipped
			l.logger.Debug("Shipment skipped, product not found", "product_id", productID)
			return
		}
		product := &l.products[i]

		if quantity <= 0 {
			tx.outcome = OutcomeInvalid
			tx.notify(models.SeverityError, fmt.Sprintf("Error: Shipment quantity for %s must be positive", product.Name))
			l.logger.Warn("Rejected shipment with non-positive quantity",
				"product_id", productID,
				"quantity", quantity)
			return
		}

		if quantity > math.MaxInt-product.Quantity {
			tx.outcome = OutcomeRejected
			tx.notify(models.SeverityError, fmt.Sprintf("Error: Shipment quantity for %s is too large", product.Name))
			l.logger.Warn("Rejected shipment that would overflow stock",
				"product_id", productID,
				"quantity", product.Quantity,
				"delta", quantity)
			return
		}

		oldQuantity := product.Quantity
		product.Quantity += quantity
		ok = true
		tx.changed = true
		tx.productsChanged = true

		l.addActivity(tx, models.ActivityTypeShipment, product.Name, quantity,
			fmt.Sprintf("Received %d units of %s", quantity, product.Name))
		tx.notify(models.SeveritySuccess, fmt.Sprintf("Shipment of %d units added to %s", quantity, product.Name))

		resolved := 0
		if !product.IsLowStock() {
			resolved = l.transitionActiveAlerts(product.ID, models.AlertStatusResolved)
		}

		l.logger.Info("Shipment received",
			"product_id", productID,
			"old_quantity", oldQuantity,
			"new_quantity", product.Quantity,
			"delta", quantity,
			"alerts_resolved", resolved)
	})

	return ok
}

// FulfillOrder removes quantity units from stock. It is the only operation that
// rejects on a precondition: when stock is insufficient nothing changes, an
// error notification is emitted and false is returned.
func (l *Ledger) FulfillOrder(productID string, quantity int) bool {
	var ok bool

	l.apply("fulfill_order", func(tx *txn) {
		i := l.productIndex(productID)
		if i < 0 {
			tx.outcome = OutcomeSkipped
			l.logger.Debug("Order skipped, product not found", "product_id", productID)
			return
		}
		product := &l.products[i]

		if quantity <= 0 {
			tx.outcome = OutcomeInvalid
			tx.notify(models.SeverityError, fmt.Sprintf("Error: Order quantity for %s must be positive", product.Name))
			l.logger.Warn("Rejected order with non-positive quantity",
				"product_id", productID,
				"quantity", quantity)
			return
		}

		if quantity > product.Quantity {
			tx.outcome = OutcomeRejected
			tx.notify(models.SeverityError, fmt.Sprintf("Error: Not enough stock available for %s", product.Name))
			l.logger.Warn("Insufficient stock for order",
				"product_id", productID,
				"available", product.Quantity,
				"requested", quantity)
			return
		}

		oldQuantity := product.Quantity
		product.Quantity -= quantity
		ok = true
		tx.changed = true
		tx.productsChanged = true

		l.addActivity(tx, models.ActivityTypeOrder, product.Name, quantity,
			fmt.Sprintf("Fulfilled %d orders of %s", quantity, product.Name))
		tx.notify(models.SeveritySuccess, fmt.Sprintf("Order fulfilled: %d units of %s", quantity, product.Name))

		// Recorded independently of the Alert the scan creates for the same condition.
		if product.IsLowStock() {
			tx.notify(models.SeverityWarning, fmt.Sprintf("Low stock for %s – only %d left!", product.Name, product.Quantity))
			l.addActivity(tx, models.ActivityTypeAlert, product.Name, product.Quantity,
				fmt.Sprintf("Low stock alert: %s – only %d left!", product.Name, product.Quantity))
		}

		l.logger.Info("Order fulfilled",
			"product_id", productID,
			"old_quantity", oldQuantity,
			"new_quantity", product.Quantity,
			"delta", -quantity)
	})

	return ok
}
