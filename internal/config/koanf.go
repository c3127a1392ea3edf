// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths is searched in order when CONFIG_PATH is unset;
// the first existing file wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/bandstand/config.yaml",
	"/etc/bandstand/config.yml",
}

// ConfigPathEnvVar points at an explicit config file, overriding the
// search paths.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns the baseline every load starts from. The
// defaults alone validate, so a bare `bandstand` with no file and no
// environment boots a working development server.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            5000,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			StaticDir:       "static",
			Environment:     "development",
		},
		Security: SecurityConfig{
			CORSOrigins:           []string{"*"},
			RateLimitRequests:     100,
			RateLimitWindow:       1 * time.Minute,
			FormRateLimitRequests: 10,
			FormRateLimitWindow:   1 * time.Minute,
		},
		Logging: LoggingConfig{Level: "info", Format: "json"},
		Chat: ChatConfig{
			MaxMessageLength:        2000,
			StreamEnabled:           true,
			StreamMessagesPerMinute: 60,
		},
		Events: EventsConfig{
			BufferSize:    64,
			MaxRetries:    3,
			RetryInterval: 100 * time.Millisecond,
			CloseTimeout:  30 * time.Second,
		},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// loadKoanf assembles the configuration from three layers, lowest
// precedence first: built-in defaults, then an optional YAML file, then
// environment variables. The flat variable names the site has always
// used (SECRET_KEY, PORT, LOG_LEVEL) map onto the nested structure via
// envKeyPaths, so a deployment that predates the YAML file keeps
// working untouched.
func loadKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}

	if path := resolveConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envToPath), nil); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	// Env vars arrive as single strings; split the list-valued ones.
	if err := expandListValues(k); err != nil {
		return nil, fmt.Errorf("split list values: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decode configuration: %w", err)
	}

	// An empty SECRET_KEY env var counts as unset.
	if err := cfg.ensureSecretKey(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// resolveConfigFile decides which config file to read, or "" for none.
func resolveConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// listValuedKeys are the settings an operator may supply as one
// comma-separated env var.
var listValuedKeys = []string{"security.cors_origins", "security.trusted_proxies"}

// expandListValues splits comma-separated string values into slices.
// Values that are already slices (from the YAML file) pass through.
func expandListValues(k *koanf.Koanf) error {
	for _, key := range listValuedKeys {
		raw, ok := k.Get(key).(string)
		if !ok || raw == "" {
			continue
		}

		var items []string
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				items = append(items, part)
			}
		}
		if len(items) == 0 {
			continue
		}

		if err := k.Set(key, items); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
	}
	return nil
}

// envKeyPaths maps the flat environment names onto koanf paths. Names
// outside this table are ignored so stray variables cannot leak into
// the configuration.
var envKeyPaths = map[string]string{
	// Server (PORT kept for parity with the old dev server)
	"http_host":          "server.host",
	"http_port":          "server.port",
	"port":               "server.port",
	"http_read_timeout":  "server.read_timeout",
	"http_write_timeout": "server.write_timeout",
	"shutdown_timeout":   "server.shutdown_timeout",
	"static_dir":         "server.static_dir",
	"environment":        "server.environment",

	// Security
	"secret_key":               "security.secret_key",
	"cors_origins":             "security.cors_origins",
	"rate_limit_requests":      "security.rate_limit_requests",
	"rate_limit_window":        "security.rate_limit_window",
	"disable_rate_limit":       "security.rate_limit_disabled",
	"form_rate_limit_requests": "security.form_rate_limit_requests",
	"form_rate_limit_window":   "security.form_rate_limit_window",
	"trusted_proxies":          "security.trusted_proxies",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Chat
	"chat_max_message_length":         "chat.max_message_length",
	"chat_stream_enabled":             "chat.stream_enabled",
	"chat_stream_messages_per_minute": "chat.stream_messages_per_minute",

	// Events
	"events_buffer_size":    "events.buffer_size",
	"events_max_retries":    "events.max_retries",
	"events_retry_interval": "events.retry_interval",
	"events_close_timeout":  "events.close_timeout",

	// Metrics
	"metrics_enabled": "metrics.enabled",
}

// envToPath is the env.Provider callback; it returns the koanf path
// for a variable, or "" to drop it.
func envToPath(key string) string {
	return envKeyPaths[strings.ToLower(key)]
}
