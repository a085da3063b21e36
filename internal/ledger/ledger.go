package ledger

import (
	"log/slog"
	"sync"
	"time"

	"inventory-ledger/internal/models"
	"inventory-ledger/internal/notify"
)

// Observer receives a snapshot after every operation that changed state.
// Skipped, rejected and invalid operations produce no snapshot; their outcome
// is reported to the OperationRecorder and any notification to the sink.
type Observer func(models.Snapshot)

// SubscriptionID identifies a registered observer
type SubscriptionID uint64

// Ledger owns the product catalog, alert lifecycle and activity history.
//
// Every operation runs as one transaction under mu. Notifications queued during
// the transaction are delivered after it commits, followed by the post-commit
// snapshot to observers. Delivery is serialized by dispatchMu, so sinks and
// observers see operations in commit order. They may read the ledger but must
// not call mutating operations from inside a callback.
type Ledger struct {
	mu         sync.Mutex
	dispatchMu sync.Mutex

	products   []models.Product
	alerts     []models.Alert // oldest first
	history    history
	warehouses []models.Warehouse
	settings   models.Settings
	revision   int64

	subMu       sync.Mutex
	nextSubID   SubscriptionID
	subscribers []subscriber

	sink     notify.Sink
	recorder OperationRecorder
	now      func() time.Time
	newID    func(prefix string) string
	logger   *slog.Logger
}

type subscriber struct {
	id SubscriptionID
	fn Observer
}

// txn collects the side effects of one operation
type txn struct {
	operation       string
	outcome         string
	changed         bool
	productsChanged bool
	notifications   []models.Notification
}

func (tx *txn) notify(severity models.Severity, message string) {
	tx.notifications = append(tx.notifications, models.Notification{Severity: severity, Message: message})
}

// New creates a ledger and runs the initial low-stock scan over seeded products
func New(opts ...Option) *Ledger {
	l := &Ledger{
		history:    history{limit: DefaultHistoryLimit},
		warehouses: DefaultWarehouses(),
		settings:   models.DefaultSettings(),
		sink:       notify.Discard,
		now:        time.Now,
		newID:      uuidID,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}

	created := l.scanLowStock()

	l.logger.Info("Inventory ledger initialized",
		"products_count", len(l.products),
		"warehouses_count", len(l.warehouses),
		"history_limit", l.history.limit,
		"alerts_created", created)

	return l
}

// apply runs fn as a single transaction and then dispatches its effects
func (l *Ledger) apply(operation string, fn func(tx *txn)) *txn {
	tx := &txn{operation: operation, outcome: OutcomeApplied}

	l.mu.Lock()
	fn(tx)
	if tx.productsChanged {
		if l.scanLowStock() > 0 {
			tx.changed = true
		}
	}
	var snap models.Snapshot
	if tx.changed {
		l.revision++
		snap = l.snapshotLocked()
	}

	l.dispatchMu.Lock()
	l.mu.Unlock()
	defer l.dispatchMu.Unlock()

	for _, n := range tx.notifications {
		l.sink.Notify(n)
	}
	if l.recorder != nil {
		l.recorder.RecordOperation(tx.operation, tx.outcome)
	}
	if tx.changed {
		for _, sub := range l.subscriberList() {
			sub.fn(snap)
		}
	}

	l.logger.Debug("Ledger operation completed",
		"operation", tx.operation,
		"outcome", tx.outcome,
		"changed", tx.changed,
		"revision", snap.Revision)

	return tx
}

// Subscribe registers an observer and returns its id
func (l *Ledger) Subscribe(fn Observer) SubscriptionID {
	l.subMu.Lock()
	defer l.subMu.Unlock()

	l.nextSubID++
	id := l.nextSubID
	l.subscribers = append(l.subscribers, subscriber{id: id, fn: fn})

	l.logger.Debug("Observer subscribed", "subscription_id", id)
	return id
}

// Unsubscribe removes an observer; it reports whether the id was registered
func (l *Ledger) Unsubscribe(id SubscriptionID) bool {
	l.subMu.Lock()
	defer l.subMu.Unlock()

	for i, sub := range l.subscribers {
		if sub.id == id {
			l.subscribers = append(l.subscribers[:i:i], l.subscribers[i+1:]...)
			l.logger.Debug("Observer unsubscribed", "subscription_id", id)
			return true
		}
	}
	return false
}

func (l *Ledger) subscriberList() []subscriber {
	l.subMu.Lock()
	defer l.subMu.Unlock()
	return append([]subscriber(nil), l.subscribers...)
}

// Snapshot returns a copy of the whole state
func (l *Ledger) Snapshot() models.Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

func (l *Ledger) snapshotLocked() models.Snapshot {
	alerts := make([]models.Alert, len(l.alerts))
	for i, a := range l.alerts {
		alerts[len(l.alerts)-1-i] = a
	}
	return models.Snapshot{
		Revision:   l.revision,
		Products:   append([]models.Product{}, l.products...),
		Alerts:     alerts,
		Activities: l.history.newestFirst(),
		Warehouses: append([]models.Warehouse{}, l.warehouses...),
		Settings:   l.settings,
	}
}

// Product looks up a product by id
func (l *Ledger) Product(id string) (models.Product, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if i := l.productIndex(id); i >= 0 {
		return l.products[i], true
	}
	return models.Product{}, false
}

// Warehouses returns the warehouse reference data, including the "all" entry
func (l *Ledger) Warehouses() []models.Warehouse {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.Warehouse{}, l.warehouses...)
}

// Settings returns the current settings
func (l *Ledger) Settings() models.Settings {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.settings
}

func (l *Ledger) productIndex(id string) int {
	for i := range l.products {
		if l.products[i].ID == id {
			return i
		}
	}
	return -1
}
