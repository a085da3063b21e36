package ledger

import "inventory-ledger/internal/models"

// scanLowStock creates an active alert for every product at or below its
// threshold that has none. It is level-triggered, so rerunning it without a
// state change creates nothing. Callers hold mu.
func (l *Ledger) scanLowStock() int {
	created := 0
	for _, p := range l.products {
		if !p.IsLowStock() || l.hasActiveAlert(p.ID) {
			continue
		}
		alert := models.Alert{
			ID:          l.newID("alert"),
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    p.Quantity,
			Threshold:   p.ReorderThreshold,
			Status:      models.AlertStatusActive,
			Timestamp:   l.now(),
		}
		l.alerts = append(l.alerts, alert)
		created++

		l.logger.Info("Low stock alert raised",
			"alert_id", alert.ID,
			"product_id", p.ID,
			"quantity", p.Quantity,
			"threshold", p.ReorderThreshold)
	}
	return created
}

func (l *Ledger) hasActiveAlert(productID string) bool {
	for _, a := range l.alerts {
		if a.ProductID == productID && a.Status == models.AlertStatusActive {
			return true
		}
	}
	return false
}

// transitionActiveAlerts moves every active alert of a product to status
func (l *Ledger) transitionActiveAlerts(productID string, status models.AlertStatus) int {
	n := 0
	for i := range l.alerts {
		if l.alerts[i].ProductID == productID && l.alerts[i].Status == models.AlertStatusActive {
			l.alerts[i].Status = status
			n++
		}
	}
	return n
}

// ResolveAlert marks an active alert as resolved. Terminal or unknown alerts are left alone.
// The notification is emitted either way.
func (l *Ledger) ResolveAlert(alertID string) bool {
	return l.closeAlert("resolve_alert", alertID, models.AlertStatusResolved,
		models.SeveritySuccess, "Alert marked as resolved")
}

// DismissAlert marks an active alert as dismissed. Terminal or unknown alerts are left alone.
func (l *Ledger) DismissAlert(alertID string) bool {
	return l.closeAlert("dismiss_alert", alertID, models.AlertStatusDismissed,
		models.SeverityInfo, "Alert dismissed")
}

func (l *Ledger) closeAlert(operation, alertID string, status models.AlertStatus, severity models.Severity, message string) bool {
	var changed bool

	l.apply(operation, func(tx *txn) {
		tx.notify(severity, message)

		for i := range l.alerts {
			if l.alerts[i].ID != alertID {
				continue
			}
			if l.alerts[i].Status != models.AlertStatusActive {
				break
			}
			l.alerts[i].Status = status
			changed = true
			tx.changed = true

			l.logger.Info("Alert closed",
				"alert_id", alertID,
				"product_id", l.alerts[i].ProductID,
				"status", string(status))
			return
		}

		tx.outcome = OutcomeSkipped
		l.logger.Debug("Alert transition skipped", "alert_id", alertID, "target_status", string(status))
	})

	return changed
}

// ActiveAlertFor returns the active alert of a product, if any
func (l *Ledger) ActiveAlertFor(productID string) (models.Alert, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, a := range l.alerts {
		if a.ProductID == productID && a.Status == models.AlertStatusActive {
			return a, true
		}
	}
	return models.Alert{}, false
}
