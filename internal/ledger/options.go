package ledger

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"inventory-ledger/internal/models"
	"inventory-ledger/internal/notify"
)

// DefaultHistoryLimit is the number of activities retained
const DefaultHistoryLimit = 50

// Operation outcomes reported to an OperationRecorder
const (
	OutcomeApplied  = "applied"
	OutcomeSkipped  = "skipped"
	OutcomeRejected = "rejected"
	OutcomeInvalid  = "invalid"
)

// OperationRecorder is told about every finished ledger operation
type OperationRecorder interface {
	RecordOperation(operation, outcome string)
}

// Option configures a Ledger
type Option func(*Ledger)

// WithProducts seeds the catalog. The low-stock scan runs over it at construction.
func WithProducts(products []models.Product) Option {
	return func(l *Ledger) {
		l.products = append([]models.Product(nil), products...)
	}
}

// WithWarehouses replaces the warehouse reference data
func WithWarehouses(warehouses []models.Warehouse) Option {
	return func(l *Ledger) {
		l.warehouses = append([]models.Warehouse(nil), warehouses...)
	}
}

// WithSettings sets the initial settings
func WithSettings(settings models.Settings) Option {
	return func(l *Ledger) {
		l.settings = settings
	}
}

// WithHistoryLimit bounds the activity history; values below 1 are ignored
func WithHistoryLimit(limit int) Option {
	return func(l *Ledger) {
		if limit > 0 {
			l.history.limit = limit
		}
	}
}

// WithSink sets the notification sink
func WithSink(sink notify.Sink) Option {
	return func(l *Ledger) {
		if sink != nil {
			l.sink = sink
		}
	}
}

// WithRecorder sets the operation recorder
func WithRecorder(recorder OperationRecorder) Option {
	return func(l *Ledger) {
		l.recorder = recorder
	}
}

// WithClock replaces the time source
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		if now != nil {
			l.now = now
		}
	}
}

// WithIDGenerator replaces the id generator; it receives a kind prefix such as "prod"
func WithIDGenerator(gen func(prefix string) string) Option {
	return func(l *Ledger) {
		if gen != nil {
			l.newID = gen
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) {
		if logger != nil {
			l.logger = logger
		}
	}
}

func uuidID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
