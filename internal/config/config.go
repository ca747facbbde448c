package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Store backends accepted in STORE_BACKEND.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config holds runtime settings read from the environment.
type Config struct {
	Port         string `envconfig:"PORT" default:"8080"`
	DatabasePath string `envconfig:"DATABASE_PATH" default:"palindromes.db"`
	StoreBackend string `envconfig:"STORE_BACKEND" default:"sqlite"`
	RedisURL     string `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	EventsEnabled    bool `envconfig:"EVENTS_ENABLED" default:"true"`
	TelemetryEnabled bool `envconfig:"TELEMETRY_ENABLED" default:"false"`

	OtelConfig
}

// OtelConfig holds the OTEL_* variables.
type OtelConfig struct {
	ServiceName    string `envconfig:"OTEL_SERVICE_NAME" default:"palindrome"`
	ServiceVersion string `envconfig:"OTEL_SERVICE_VERSION" default:"0.1.0"`
	Environment    string `envconfig:"OTEL_ENVIRONMENT" default:"development"`
	Exporter       string `envconfig:"OTEL_EXPORTER" default:"stdout"`
}

// Load reads the configuration from environment variables and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	switch cfg.StoreBackend {
	case BackendSQLite, BackendMemory, BackendRedis:
	default:
		return nil, fmt.Errorf("unsupported STORE_BACKEND %q (use %q, %q or %q)",
			cfg.StoreBackend, BackendSQLite, BackendMemory, BackendRedis)
	}

	return &cfg, nil
}
