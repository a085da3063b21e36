package notify

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-ledger/internal/models"
)

func TestLogSink_MapsSeverityToLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	sink := NewLogSink(logger)

	sink.Notify(models.Notification{Severity: models.SeverityError, Message: "boom"})
	sink.Notify(models.Notification{Severity: models.SeverityWarning, Message: "careful"})
	sink.Notify(models.Notification{Severity: models.SeveritySuccess, Message: "done"})

	out := buf.String()
	assert.Contains(t, out, "level=ERROR msg=boom")
	assert.Contains(t, out, "level=WARN msg=careful")
	assert.Contains(t, out, "level=INFO msg=done severity=success")
}

func TestMulti_ForwardsToEverySink(t *testing.T) {
	first, second := NewRecorder(), NewRecorder()
	multi := Multi{first, nil, second}

	multi.Notify(models.Notification{Severity: models.SeverityInfo, Message: "hello"})

	assert.Len(t, first.All(), 1)
	assert.Len(t, second.All(), 1)
}

func TestRecorder_LastAndReset(t *testing.T) {
	rec := NewRecorder()
	_, ok := rec.Last()
	assert.False(t, ok)

	rec.Notify(models.Notification{Severity: models.SeverityInfo, Message: "a"})
	rec.Notify(models.Notification{Severity: models.SeveritySuccess, Message: "b"})

	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, "b", last.Message)

	rec.Reset()
	assert.Empty(t, rec.All())
}

func TestFeed_WarningsOutliveRegularNotifications(t *testing.T) {
	// Arrange
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	feed := NewFeed(FeedConfig{DefaultDuration: 4 * time.Second, WarningDuration: 5 * time.Second}).WithClock(clock)

	// Act
	feed.Notify(models.Notification{Severity: models.SeveritySuccess, Message: "Order fulfilled"})
	feed.Notify(models.Notification{Severity: models.SeverityWarning, Message: "Low stock"})

	// Assert
	assert.Len(t, feed.Visible(), 2)

	now = now.Add(4500 * time.Millisecond)
	visible := feed.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "Low stock", visible[0].Message)

	now = now.Add(time.Second)
	assert.Empty(t, feed.Visible())
}

func TestFeed_ExplicitDurationWins(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	feed := NewFeed(FeedConfig{}).WithClock(func() time.Time { return now })

	feed.Notify(models.Notification{Severity: models.SeverityInfo, Message: "sticky", Duration: time.Minute})
	now = now.Add(30 * time.Second)

	assert.Len(t, feed.Visible(), 1)
	feed.Clear()
	assert.Empty(t, feed.Visible())
}
