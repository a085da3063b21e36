package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestFromEnv_Defaults tests the defaults used when nothing is set
func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{
		"LOG_LEVEL", "ENVIRONMENT", "ACTIVITY_HISTORY_LIMIT", "DEFAULT_THRESHOLD",
		"SEED_CATALOG", "METRICS_EXPORTER", "NOTIFICATION_TTL", "WARNING_NOTIFICATION_TTL",
	} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 50, cfg.HistoryLimit())
	assert.Equal(t, 10, cfg.Threshold())
	assert.True(t, cfg.SeedEnabled())
	assert.Equal(t, "prometheus", cfg.MetricsExporter)
	assert.Equal(t, 4*time.Second, cfg.NotificationDuration())
	assert.Equal(t, 5*time.Second, cfg.WarningNotificationDuration())
}

// TestFromEnv_Overrides tests values read from the environment
func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("ACTIVITY_HISTORY_LIMIT", "5")
	t.Setenv("DEFAULT_THRESHOLD", "3")
	t.Setenv("SEED_CATALOG", "false")
	t.Setenv("METRICS_EXPORTER", "stdout")
	t.Setenv("NOTIFICATION_TTL", "1s")

	cfg := FromEnv()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 5, cfg.HistoryLimit())
	assert.Equal(t, 3, cfg.Threshold())
	assert.False(t, cfg.SeedEnabled())
	assert.Equal(t, "stdout", cfg.MetricsExporter)
	assert.Equal(t, time.Second, cfg.NotificationDuration())
}

// TestConfig_InvalidValuesFallBack tests that unparsable values use defaults
func TestConfig_InvalidValuesFallBack(t *testing.T) {
	testCases := []struct {
		name   string
		config Config
		check  func(t *testing.T, c *Config)
	}{
		{
			name:   "Invalid history limit",
			config: Config{ActivityHistoryLimit: "lots"},
			check:  func(t *testing.T, c *Config) { assert.Equal(t, 50, c.HistoryLimit()) },
		},
		{
			name:   "Zero history limit",
			config: Config{ActivityHistoryLimit: "0"},
			check:  func(t *testing.T, c *Config) { assert.Equal(t, 50, c.HistoryLimit()) },
		},
		{
			name:   "Negative threshold",
			config: Config{DefaultThreshold: "-1"},
			check:  func(t *testing.T, c *Config) { assert.Equal(t, 10, c.Threshold()) },
		},
		{
			name:   "Invalid seed flag",
			config: Config{SeedCatalog: "maybe"},
			check:  func(t *testing.T, c *Config) { assert.True(t, c.SeedEnabled()) },
		},
		{
			name:   "Invalid warning TTL",
			config: Config{WarningNotificationTTL: "soon"},
			check:  func(t *testing.T, c *Config) { assert.Equal(t, 5*time.Second, c.WarningNotificationDuration()) },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := tc.config
			tc.check(t, &cfg)
		})
	}
}
