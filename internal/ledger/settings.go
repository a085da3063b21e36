package ledger

import "inventory-ledger/internal/models"

// UpdateSettings merges a partial update into the settings. No validation is done.
func (l *Ledger) UpdateSettings(update models.SettingsUpdate) models.Settings {
	var settings models.Settings

	l.apply("update_settings", func(tx *txn) {
		if update.AlertSound != nil {
			l.settings.AlertSound = *update.AlertSound
		}
		if update.DefaultThreshold != nil {
			l.settings.DefaultThreshold = *update.DefaultThreshold
		}
		if update.Theme != nil {
			l.settings.Theme = *update.Theme
		}
		settings = l.settings
		tx.changed = true
		tx.notify(models.SeveritySuccess, "Settings updated successfully")

		l.logger.Info("Settings updated",
			"alert_sound", settings.AlertSound,
			"default_threshold", settings.DefaultThreshold,
			"theme", settings.Theme)
	})

	return settings
}
