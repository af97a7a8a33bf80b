// Package config loads calculator settings from defaults, an optional
// YAML/JSON file, NLCALC_* environment variables and command-line overrides.
package config

import "time"

// Config is the full application configuration.
type Config struct {
	Chart     ChartConfig     `koanf:"chart"`
	History   HistoryConfig   `koanf:"history"`
	Server    ServerConfig    `koanf:"server"`
	Log       LogConfig       `koanf:"log"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

// ChartConfig controls graph output.
type ChartConfig struct {
	Dir     string `koanf:"dir" validate:"required"`
	Samples int    `koanf:"samples" validate:"gte=2,lte=10000"`
}

// HistoryConfig bounds the history ledger.
type HistoryConfig struct {
	Size int `koanf:"size" validate:"gte=1,lte=100000"`
}

// ServerConfig is used by the serve command only. Log level and rate
// limits are reloaded when the config file changes.
type ServerConfig struct {
	Addr            string        `koanf:"addr" validate:"required,listen_addr"`
	RateLimit       float64       `koanf:"rate_limit" validate:"gte=0"`
	RateBurst       int           `koanf:"rate_burst" validate:"gte=1"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

type LogConfig struct {
	Level       string `koanf:"level" validate:"oneof=debug info warn error"`
	Development bool   `koanf:"development"`
}

// TelemetryConfig switches OTLP export of traces, metrics and logs. The
// exporters read their endpoints from the standard OTEL_* variables.
type TelemetryConfig struct {
	Enabled bool `koanf:"enabled"`
}
