package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"inventory-ledger/internal/logging"
)

const (
	defaultActivityHistoryLimit   = 50
	defaultThreshold              = 10
	defaultNotificationTTL        = 4 * time.Second
	defaultWarningNotificationTTL = 5 * time.Second
)

// Config holds all configuration for the application
type Config struct {
	LogLevel               string
	Environment            string
	ActivityHistoryLimit   string
	DefaultThreshold       string
	SeedCatalog            string
	MetricsExporter        string
	NotificationTTL        string
	WarningNotificationTTL string
}

// LoadConfig loads configuration from .env file and environment variables
func LoadConfig() *Config {
	// Existing environment variables are not overridden by .env
	err := godotenv.Load()
	if err != nil {
		slog.Warn("Could not load .env file, continuing with system environment variables only", "error", err)
	} else {
		slog.Info("Successfully loaded .env file")
	}

	config := FromEnv()

	logging.SetupLogging(config.LogLevel)

	slog.Info("Configuration loaded",
		"environment", config.Environment,
		"logLevel", config.LogLevel,
		"activityHistoryLimit", config.ActivityHistoryLimit,
		"defaultThreshold", config.DefaultThreshold,
		"seedCatalog", config.SeedCatalog,
		"metricsExporter", config.MetricsExporter,
		"notificationTTL", config.NotificationTTL,
		"warningNotificationTTL", config.WarningNotificationTTL)

	return config
}

// FromEnv reads the configuration from the process environment only
func FromEnv() *Config {
	return &Config{
		LogLevel:               getEnvWithDefault("LOG_LEVEL", "info"),
		Environment:            getEnvWithDefault("ENVIRONMENT", "development"),
		ActivityHistoryLimit:   getEnvWithDefault("ACTIVITY_HISTORY_LIMIT", strconv.Itoa(defaultActivityHistoryLimit)),
		DefaultThreshold:       getEnvWithDefault("DEFAULT_THRESHOLD", strconv.Itoa(defaultThreshold)),
		SeedCatalog:            getEnvWithDefault("SEED_CATALOG", "true"),
		MetricsExporter:        getEnvWithDefault("METRICS_EXPORTER", "prometheus"),
		NotificationTTL:        getEnvWithDefault("NOTIFICATION_TTL", defaultNotificationTTL.String()),
		WarningNotificationTTL: getEnvWithDefault("WARNING_NOTIFICATION_TTL", defaultWarningNotificationTTL.String()),
	}
}

// getEnvWithDefault gets an environment variable with a default fallback
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// HistoryLimit returns the activity history bound
func (c *Config) HistoryLimit() int {
	limit, err := strconv.Atoi(c.ActivityHistoryLimit)
	if err != nil || limit < 1 {
		slog.Warn("Invalid activity history limit, using default", "provided", c.ActivityHistoryLimit, "error", err)
		return defaultActivityHistoryLimit
	}
	return limit
}

// Threshold returns the default reorder threshold for new products
func (c *Config) Threshold() int {
	threshold, err := strconv.Atoi(c.DefaultThreshold)
	if err != nil || threshold < 0 {
		slog.Warn("Invalid default threshold, using default", "provided", c.DefaultThreshold, "error", err)
		return defaultThreshold
	}
	return threshold
}

// SeedEnabled reports whether the demo catalog should be loaded
func (c *Config) SeedEnabled() bool {
	enabled, err := strconv.ParseBool(c.SeedCatalog)
	if err != nil {
		slog.Warn("Invalid seed catalog setting, using default", "provided", c.SeedCatalog, "error", err)
		return true
	}
	return enabled
}

// NotificationDuration returns how long a regular notification stays visible
func (c *Config) NotificationDuration() time.Duration {
	return parseDuration(c.NotificationTTL, defaultNotificationTTL, "notification TTL")
}

// WarningNotificationDuration returns how long a warning stays visible
func (c *Config) WarningNotificationDuration() time.Duration {
	return parseDuration(c.WarningNotificationTTL, defaultWarningNotificationTTL, "warning notification TTL")
}

func parseDuration(value string, fallback time.Duration, name string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		slog.Warn("Invalid duration, using default", "setting", name, "provided", value, "error", err)
		return fallback
	}
	return d
}
