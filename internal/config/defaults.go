package config

import "time"

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Chart: ChartConfig{
			Dir:     "charts",
			Samples: 101,
		},
		History: HistoryConfig{
			Size: 50,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			RateLimit:       10,
			RateBurst:       20,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// defaultMap flattens Default into koanf keys.
func defaultMap() map[string]any {
	d := Default()
	return map[string]any{
		"chart.dir":               d.Chart.Dir,
		"chart.samples":           d.Chart.Samples,
		"history.size":            d.History.Size,
		"server.addr":             d.Server.Addr,
		"server.rate_limit":       d.Server.RateLimit,
		"server.rate_burst":       d.Server.RateBurst,
		"server.read_timeout":     d.Server.ReadTimeout,
		"server.write_timeout":    d.Server.WriteTimeout,
		"server.shutdown_timeout": d.Server.ShutdownTimeout,
		"log.level":               d.Log.Level,
		"log.development":         d.Log.Development,
		"telemetry.enabled":       d.Telemetry.Enabled,
	}
}
