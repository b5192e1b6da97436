package config

import "time"

// Config is the root configuration structure for the trace query service.
type Config struct {
	// Server contains HTTP server configuration including listen address,
	// timeouts, and connection limits.
	Server ServerConfig `yaml:"server"`

	// Store contains configuration for the SQLite trace store.
	Store StoreConfig `yaml:"store"`

	// Query contains configuration consumed by the session query route:
	// the request timeout override and the warning-emission toggle.
	Query QueryConfig `yaml:"query"`

	// Retention contains configuration for pruning old traces.
	Retention RetentionConfig `yaml:"retention"`

	// RateLimit contains configuration for the session query rate limiter.
	RateLimit RateLimitConfig `yaml:"rate_limit"`

	// Telemetry contains configuration for logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig contains configuration for the HTTP server.
type ServerConfig struct {
	// ListenAddress is the address and port to listen on.
	// Format: "host:port". Default: "127.0.0.1:3030"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out response
	// writes. Default: 30s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum time to wait for the next request when
	// keep-alives are enabled. Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful
	// shutdown. Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes limits the size of request headers.
	// Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`
}

// StoreConfig contains configuration for the SQLite trace store.
type StoreConfig struct {
	// Path is the database file path. Default: "data/traces.db"
	Path string `yaml:"path"`

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int `yaml:"max_idle_conns"`

	// WALMode enables Write-Ahead Logging for better concurrency.
	// Default: true
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is how long to wait when the database is locked.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// QueryConfig contains the externally tunable knobs of the session query
// route. The advisory engine itself has no configuration: its rule constants
// are fixed.
type QueryConfig struct {
	// Timeout is the per-request deadline for executing an optimized
	// session query against the store. Default: 30s
	Timeout time.Duration `yaml:"timeout"`

	// SuppressWarnings disables the warning-level events emitted when a
	// query is rewritten. The engine assumes warnings are always desired;
	// this gate is applied by the route, not by the engine.
	// Default: false
	SuppressWarnings bool `yaml:"suppress_warnings"`
}

// RetentionConfig contains configuration for pruning old traces.
type RetentionConfig struct {
	// Days is the number of days to retain traces. 0 disables pruning.
	// Default: 90
	Days int `yaml:"days"`

	// Schedule is a cron expression for when pruning runs.
	// Default: "0 3 * * *" (daily at 3 AM)
	Schedule string `yaml:"schedule"`
}

// RateLimitConfig contains configuration for the session query rate limiter.
type RateLimitConfig struct {
	// Enabled controls whether the rate limiter is active.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// RequestsPerSecond is the sustained request rate allowed per client.
	// Default: 10
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	// Burst is the maximum burst size. Default: 20
	Burst int64 `yaml:"burst"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format ("json", "text"). Default: "json"
	Format string `yaml:"format"`

	// FilePath is the log file path. Empty logs to stdout. When set,
	// files are rotated.
	FilePath string `yaml:"file_path"`

	// MaxSizeMB is the file size in MB that triggers rotation.
	// Default: 100
	MaxSizeMB int `yaml:"max_size_mb"`

	// MaxBackups is the number of rotated files to retain. Default: 3
	MaxBackups int `yaml:"max_backups"`

	// MaxAgeDays is the number of days to retain rotated files.
	// Default: 28
	MaxAgeDays int `yaml:"max_age_days"`

	// Compress enables gzip compression of rotated files. Default: true
	Compress bool `yaml:"compress"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected and served.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric namespace. Default: "langfuse"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem. Default: "sessionquery"
	Subsystem string `yaml:"subsystem"`

	// Path is the HTTP path the metrics handler is mounted on.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// ScoreBuckets overrides the histogram buckets for estimate scores.
	ScoreBuckets []float64 `yaml:"score_buckets"`
}
