package ledger

import "inventory-ledger/internal/models"

// history is the bounded activity log. Entries are stored oldest first and
// the oldest ones are dropped once the limit is exceeded.
type history struct {
	limit   int
	entries []models.Activity
}

func (h *history) push(a models.Activity) {
	h.entries = append(h.entries, a)
	if overflow := len(h.entries) - h.limit; overflow > 0 {
		h.entries = append(h.entries[:0:0], h.entries[overflow:]...)
	}
}

// newestFirst returns a copy ordered from the latest entry back
func (h *history) newestFirst() []models.Activity {
	out := make([]models.Activity, len(h.entries))
	for i, a := range h.entries {
		out[len(h.entries)-1-i] = a
	}
	return out
}

// addActivity stamps and records an activity inside a transaction
func (l *Ledger) addActivity(tx *txn, kind models.ActivityType, productName string, quantity int, message string) {
	l.history.push(models.Activity{
		ID:          l.newID("activity"),
		Type:        kind,
		ProductName: productName,
		Quantity:    quantity,
		Message:     message,
		Timestamp:   l.now(),
	})
	tx.changed = true
}
