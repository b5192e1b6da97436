package config

import (
	"fmt"
	"net"

	"github.com/robfig/cron/v3"
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns the first error found, prefixed with the offending section.
func Validate(cfg *Config) error {
	if err := validateServer(&cfg.Server); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := validateStore(&cfg.Store); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if err := validateQuery(&cfg.Query); err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if err := validateRetention(&cfg.Retention); err != nil {
		return fmt.Errorf("retention: %w", err)
	}
	if err := validateRateLimit(&cfg.RateLimit); err != nil {
		return fmt.Errorf("rate_limit: %w", err)
	}
	if err := validateTelemetry(&cfg.Telemetry); err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	return nil
}

func validateServer(cfg *ServerConfig) error {
	if _, _, err := net.SplitHostPort(cfg.ListenAddress); err != nil {
		return fmt.Errorf("invalid listen_address %q: %w", cfg.ListenAddress, err)
	}
	if cfg.ReadTimeout < 0 || cfg.WriteTimeout < 0 || cfg.IdleTimeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	if cfg.MaxHeaderBytes < 0 {
		return fmt.Errorf("max_header_bytes must not be negative, got %d", cfg.MaxHeaderBytes)
	}
	return nil
}

func validateStore(cfg *StoreConfig) error {
	if cfg.Path == "" {
		return fmt.Errorf("path must not be empty")
	}
	if cfg.MaxOpenConns < 1 {
		return fmt.Errorf("max_open_conns must be >= 1, got %d", cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns < 0 {
		return fmt.Errorf("max_idle_conns must be >= 0, got %d", cfg.MaxIdleConns)
	}
	if cfg.MaxIdleConns > cfg.MaxOpenConns {
		return fmt.Errorf("max_idle_conns (%d) must not exceed max_open_conns (%d)",
			cfg.MaxIdleConns, cfg.MaxOpenConns)
	}
	return nil
}

func validateQuery(cfg *QueryConfig) error {
	if cfg.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}
	return nil
}

func validateRetention(cfg *RetentionConfig) error {
	if cfg.Days < 0 {
		return fmt.Errorf("days must be >= 0, got %d", cfg.Days)
	}
	if cfg.Schedule != "" {
		if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
			return fmt.Errorf("invalid cron schedule %q: %w", cfg.Schedule, err)
		}
	}
	return nil
}

func validateRateLimit(cfg *RateLimitConfig) error {
	if !cfg.Enabled {
		return nil
	}
	if cfg.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests_per_second must be positive, got %g", cfg.RequestsPerSecond)
	}
	if cfg.Burst < 1 {
		return fmt.Errorf("burst must be >= 1, got %d", cfg.Burst)
	}
	return nil
}

func validateTelemetry(cfg *TelemetryConfig) error {
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level %q", cfg.Logging.Level)
	}
	switch cfg.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid logging format %q", cfg.Logging.Format)
	}
	if cfg.Metrics.Enabled && cfg.Metrics.Path == "" {
		return fmt.Errorf("metrics path must not be empty when metrics are enabled")
	}
	return nil
}
