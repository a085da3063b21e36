package notify

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"inventory-ledger/internal/cache"
	"inventory-ledger/internal/models"
)

// Sink receives user-facing notifications emitted by ledger operations
type Sink interface {
	Notify(n models.Notification)
}

// SinkFunc adapts a function to the Sink interface
type SinkFunc func(n models.Notification)

// Notify calls f(n)
func (f SinkFunc) Notify(n models.Notification) { f(n) }

// Discard drops every notification
var Discard Sink = SinkFunc(func(models.Notification) {})

// LogSink writes notifications through slog
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a sink logging to logger, or to the default logger when nil
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

// Notify logs the notification at a level matching its severity
func (s *LogSink) Notify(n models.Notification) {
	s.logger.Log(context.Background(), levelFor(n.Severity), n.Message, "severity", string(n.Severity))
}

func levelFor(severity models.Severity) slog.Level {
	switch severity {
	case models.SeverityError:
		return slog.LevelError
	case models.SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// Multi fans a notification out to several sinks in order
type Multi []Sink

// Notify forwards n to every sink
func (m Multi) Notify(n models.Notification) {
	for _, sink := range m {
		if sink != nil {
			sink.Notify(n)
		}
	}
}

// Recorder keeps every notification in memory
type Recorder struct {
	mu            sync.Mutex
	notifications []models.Notification
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Notify records n
func (r *Recorder) Notify(n models.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, n)
}

// All returns a copy of everything recorded so far
func (r *Recorder) All() []models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Notification, len(r.notifications))
	copy(out, r.notifications)
	return out
}

// Last returns the most recent notification
func (r *Recorder) Last() (models.Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notifications) == 0 {
		return models.Notification{}, false
	}
	return r.notifications[len(r.notifications)-1], true
}

// Reset forgets everything recorded
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = nil
}

// FeedConfig holds display durations for the feed
type FeedConfig struct {
	DefaultDuration time.Duration
	WarningDuration time.Duration
}

// Feed keeps notifications visible for their display duration, like a toast stack
type Feed struct {
	entries         *cache.TTLCache[models.Notification]
	warningDuration time.Duration
	seq             atomic.Uint64
}

// NewFeed creates a feed. Expired entries are swept lazily by Visible.
func NewFeed(cfg FeedConfig) *Feed {
	if cfg.DefaultDuration <= 0 {
		cfg.DefaultDuration = 4 * time.Second
	}
	if cfg.WarningDuration <= 0 {
		cfg.WarningDuration = cfg.DefaultDuration
	}
	return &Feed{
		entries:         cache.NewTTLCache[models.Notification](cfg.DefaultDuration, 0),
		warningDuration: cfg.WarningDuration,
	}
}

// WithClock replaces the time source, used by tests
func (f *Feed) WithClock(now func() time.Time) *Feed {
	f.entries.WithClock(now)
	return f
}

// Notify adds n to the feed
func (f *Feed) Notify(n models.Notification) {
	ttl := n.Duration
	if ttl <= 0 && n.Severity == models.SeverityWarning {
		ttl = f.warningDuration
	}
	key := strconv.FormatUint(f.seq.Add(1), 10)
	f.entries.SetWithTTL(key, n, ttl)
}

// Visible returns notifications still on screen, oldest first
func (f *Feed) Visible() []models.Notification {
	f.entries.PerformCleanup()
	return f.entries.Values()
}

// Clear dismisses every visible notification
func (f *Feed) Clear() {
	f.entries.Clear()
}
