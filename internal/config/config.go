// Package config provides centralized configuration management for the
// reminder service. It loads settings from environment variables with
// sensible defaults and validates everything on startup to fail fast on
// misconfiguration.
package config

import "time"

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server    ServerConfig
	SMTP      SMTPConfig
	Dispatch  DispatchConfig
	Reconcile ReconcileConfig
	Upload    UploadConfig
	Rate      RateLimitConfig
	Logging   LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" envAlt:"PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 30s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"30s"`

	// WriteTimeout is the maximum duration for writing response (default: 5m,
	// a dispatch run waits on every SMTP send)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"5m"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 5m)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"5m"`
}

// SMTPConfig holds outgoing mail settings. The defaults match a Gmail
// account with an app password.
type SMTPConfig struct {
	// Host is the SMTP server hostname (default: smtp.gmail.com)
	Host string `env:"EMAIL_HOST" default:"smtp.gmail.com"`

	// Port is the SMTP submission port (default: 587)
	Port int `env:"EMAIL_PORT" default:"587"`

	// User is the SMTP account; also the recipient of test messages
	User string `env:"EMAIL_USER"`

	// Password is the SMTP password or app password
	Password string `env:"EMAIL_PASSWORD"`

	// FromName is the display name on outgoing mail (default: Cartera Lomarosa)
	FromName string `env:"EMAIL_FROM_NAME" default:"Cartera Lomarosa"`

	// FromAddress is the envelope sender; defaults to User when empty
	FromAddress string `env:"EMAIL_FROM_ADDRESS"`

	// Timeout bounds each SMTP connection (default: 30s)
	Timeout time.Duration `env:"EMAIL_TIMEOUT" default:"30s"`
}

// DispatchConfig holds send-run settings.
type DispatchConfig struct {
	// MaxWorkers is the number of concurrent SMTP sends (default: 3)
	MaxWorkers int `env:"MAX_WORKERS" default:"3"`

	// BatchLimit caps messages per run against provider daily limits
	// (default: 450; 0 disables the cap)
	BatchLimit int `env:"DISPATCH_BATCH_LIMIT" default:"450"`

	// Grouping is per-customer or per-customer-and-status (default: per-customer)
	Grouping string `env:"GROUPING_POLICY" default:"per-customer"`
}

// ReconcileConfig holds reconciliation settings.
type ReconcileConfig struct {
	// StatusWindow is all or due-or-overdue-only (default: all)
	StatusWindow string `env:"STATUS_WINDOW_POLICY" default:"all"`

	// LedgerSheet is the worksheet the aging export lands on
	LedgerSheet string `env:"LEDGER_SHEET" default:"Cartera por edades"`

	// LedgerHeaderRow is the 1-based header row on that sheet (default: 12)
	LedgerHeaderRow int `env:"LEDGER_HEADER_ROW" default:"12"`
}

// UploadConfig holds multipart upload settings.
type UploadConfig struct {
	// MaxFileSize is the maximum allowed file size in bytes (default: 20MB)
	MaxFileSize int64 `env:"UPLOAD_MAX_FILE_SIZE" default:"20971520"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 60)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"60"`

	// DispatchLimit is requests per minute for the dispatch endpoint (default: 5)
	DispatchLimit int `env:"RATE_LIMIT_DISPATCH" default:"5"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return ":" + itoa(c.Port)
	}
	return c.Host + ":" + itoa(c.Port)
}

// Sender returns the effective envelope sender address.
func (c *SMTPConfig) Sender() string {
	if c.FromAddress != "" {
		return c.FromAddress
	}
	return c.User
}

// itoa converts an int to string without importing strconv in this file.
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var b [20]byte
	n := len(b)
	neg := i < 0
	if neg {
		i = -i
	}
	for i > 0 {
		n--
		b[n] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		n--
		b[n] = '-'
	}
	return string(b[n:])
}
