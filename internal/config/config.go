// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// Config gathers every runtime setting of the server: the HTTP
// listener, flash-cookie signing and rate limiting, zerolog output, the
// AI chat API, the submission event bus, and Prometheus exposure.
//
// Call Load to populate it; see Load for the precedence between
// defaults, the YAML file, and environment variables. A loaded Config
// is never mutated again and may be read from any goroutine.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
	Chat     ChatConfig     `koanf:"chat"`
	Events   EventsConfig   `koanf:"events"`
	Metrics  MetricsConfig  `koanf:"metrics"`
}

// ServerConfig holds HTTP server settings.
//
// Environment variables:
//   - HTTP_HOST: Bind address (default: 0.0.0.0)
//   - HTTP_PORT or PORT: Listen port (default: 5000)
//   - HTTP_READ_TIMEOUT: Request read timeout (default: 30s)
//   - HTTP_WRITE_TIMEOUT: Response write timeout (default: 30s)
//   - SHUTDOWN_TIMEOUT: Graceful shutdown window (default: 10s)
//   - STATIC_DIR: Directory served under /static/ (default: static)
//   - ENVIRONMENT: "development", "staging", or "production" (default: development)
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	StaticDir       string        `koanf:"static_dir"`
	Environment     string        `koanf:"environment"`
}

// Secret key provenance recorded by Load.
const (
	// SecretSourceConfigured means the signing secret came from SECRET_KEY
	// or the config file. Flash cookies survive restarts.
	SecretSourceConfigured = "configured"

	// SecretSourceGenerated means the signing secret was generated at
	// startup. Flash cookies are invalidated by a restart.
	SecretSourceGenerated = "generated"
)

// SecurityConfig holds cookie signing, CORS, and rate limiting settings.
//
// Environment variables:
//   - SECRET_KEY: Signing secret for flash cookies (generated when unset)
//   - CORS_ORIGINS: Comma-separated allowed origins (default: *)
//   - RATE_LIMIT_REQUESTS: Requests per window (default: 100)
//   - RATE_LIMIT_WINDOW: Window duration (default: 1m)
//   - DISABLE_RATE_LIMIT: Disable rate limiting entirely (default: false)
//   - FORM_RATE_LIMIT_REQUESTS: POST requests per window (default: 10)
//   - FORM_RATE_LIMIT_WINDOW: Form window duration (default: 1m)
//   - TRUSTED_PROXIES: Comma-separated proxy IPs for RealIP resolution
type SecurityConfig struct {
	// SecretKey signs flash cookies. Left empty, Load generates 24 random
	// bytes the way the site always has, so a restart logs visitors'
	// pending flashes out rather than ever running unsigned.
	SecretKey string `koanf:"secret_key"`

	// SecretSource records where SecretKey came from: "configured" or
	// "generated". Populated by Load, not by any provider.
	SecretSource string `koanf:"-"`

	CORSOrigins           []string      `koanf:"cors_origins"`
	RateLimitRequests     int           `koanf:"rate_limit_requests"`
	RateLimitWindow       time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled     bool          `koanf:"rate_limit_disabled"`
	FormRateLimitRequests int           `koanf:"form_rate_limit_requests"`
	FormRateLimitWindow   time.Duration `koanf:"form_rate_limit_window"`
	TrustedProxies        []string      `koanf:"trusted_proxies"`
}

// LoggingConfig selects zerolog's level and output format.
//
// Environment variables:
//   - LOG_LEVEL: trace, debug, info, warn, or error (default: info)
//   - LOG_FORMAT: json for machines, console for a terminal (default: json)
//   - LOG_CALLER: stamp each line with its file:line (default: false)
type LoggingConfig struct {
	// Level is the minimum level a line needs to be emitted.
	Level string `koanf:"level"`

	// Format picks json or console output. Deployments want json;
	// console is for a developer watching the process.
	Format string `koanf:"format"`

	// Caller annotates lines with their call site, at a small cost.
	Caller bool `koanf:"caller"`
}

// ChatConfig holds settings for the AI chat API and its WebSocket stream.
//
// Environment variables:
//   - CHAT_MAX_MESSAGE_LENGTH: Longest accepted chat message (default: 2000)
//   - CHAT_STREAM_ENABLED: Enable the WebSocket stream (default: true)
//   - CHAT_STREAM_MESSAGES_PER_MINUTE: Per-connection send budget (default: 60)
type ChatConfig struct {
	MaxMessageLength        int  `koanf:"max_message_length"`
	StreamEnabled           bool `koanf:"stream_enabled"`
	StreamMessagesPerMinute int  `koanf:"stream_messages_per_minute"`
}

// EventsConfig holds settings for the in-process submission event bus.
//
// Environment variables:
//   - EVENTS_BUFFER_SIZE: Channel buffer per subscriber (default: 64)
//   - EVENTS_MAX_RETRIES: Handler retries before giving up (default: 3)
//   - EVENTS_RETRY_INTERVAL: Initial retry backoff (default: 100ms)
//   - EVENTS_CLOSE_TIMEOUT: Router close timeout (default: 30s)
type EventsConfig struct {
	BufferSize    int           `koanf:"buffer_size"`
	MaxRetries    int           `koanf:"max_retries"`
	RetryInterval time.Duration `koanf:"retry_interval"`
	CloseTimeout  time.Duration `koanf:"close_timeout"`
}

// MetricsConfig holds Prometheus exposure settings.
//
// Environment variables:
//   - METRICS_ENABLED: Serve /metrics (default: true)
type MetricsConfig struct {
	Enabled bool `koanf:"enabled"`
}

// Load reads configuration from three layers, later layers winning:
// built-in defaults, then the YAML file named by CONFIG_PATH (or found
// on the default search path), then environment variables.
//
// Load never returns a Config with an empty signing secret: when none
// is configured it generates one, records SecretSource, and the process
// runs with restart-scoped flash cookies.
func Load() (*Config, error) {
	return loadKoanf()
}

// generatedSecretBytes is the entropy of a generated flash-signing secret.
const generatedSecretBytes = 24

// ensureSecretKey populates Security.SecretKey when no secret was configured
// and records the provenance either way. An explicitly configured empty
// string counts as unset.
func (c *Config) ensureSecretKey() error {
	if c.Security.SecretKey != "" {
		c.Security.SecretSource = SecretSourceConfigured
		return nil
	}

	buf := make([]byte, generatedSecretBytes)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("failed to generate secret key: %w", err)
	}

	c.Security.SecretKey = hex.EncodeToString(buf)
	c.Security.SecretSource = SecretSourceGenerated
	return nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

// WildcardCORS reports whether any configured CORS origin is the
// wildcard. Startup warns about this combination in production.
func (c *Config) WildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}
