package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all service configuration.
type Config struct {
	Server  ServerConfig
	Console ConsoleConfig
	Logging LogConfig
	Metrics MetricsConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// AllowedOrigins lists extra origins permitted to open WebSocket
	// streams. Same-origin requests are always allowed; "*" allows any.
	AllowedOrigins []string `envconfig:"WS_ALLOWED_ORIGINS"`
}

// ConsoleConfig holds console session configuration.
type ConsoleConfig struct {
	Shell      string `envconfig:"CONSOLE_SHELL" default:""`
	WorkingDir string `envconfig:"CONSOLE_WORKDIR" default:""`
	Cols       int    `envconfig:"CONSOLE_COLS" default:"80"`
	Rows       int    `envconfig:"CONSOLE_ROWS" default:"24"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// MetricsConfig holds Prometheus metrics configuration.
type MetricsConfig struct {
	Enabled bool `envconfig:"METRICS_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Console: ConsoleConfig{
			Cols: 80,
			Rows: 24,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}
