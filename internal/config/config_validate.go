// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

package config

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Validate checks every section of the loaded configuration and returns
// the first problem found. Error messages name the environment variable
// an operator would set to fix them.
func (c *Config) Validate() error {
	for _, check := range []func() error{
		c.validateServer,
		c.validateSecurity,
		c.validateChat,
		c.validateEvents,
		c.validateLogging,
	} {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}

	timeouts := []struct {
		name string
		d    time.Duration
	}{
		{"HTTP_READ_TIMEOUT", c.Server.ReadTimeout},
		{"HTTP_WRITE_TIMEOUT", c.Server.WriteTimeout},
		{"SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout},
	}
	for _, tc := range timeouts {
		if tc.d <= 0 {
			return fmt.Errorf("%s must be positive", tc.name)
		}
	}

	return c.validateEnvironment()
}

// environments the server knows how to run as.
var environments = []string{"development", "staging", "production"}

func (c *Config) validateEnvironment() error {
	if !slices.Contains(environments, c.Server.Environment) {
		return fmt.Errorf("ENVIRONMENT must be one of: %s", strings.Join(environments, ", "))
	}
	return nil
}

// minConfiguredSecretBytes is the minimum length for an operator-supplied
// signing secret. Generated secrets always exceed it.
const minConfiguredSecretBytes = 16

func (c *Config) validateSecurity() error {
	if err := c.validateSecretKey(); err != nil {
		return err
	}
	return c.validateRateLimits()
}

func (c *Config) validateSecretKey() error {
	if c.Security.SecretKey == "" {
		return fmt.Errorf("secret key must not be empty after load")
	}
	if c.Security.SecretSource == SecretSourceConfigured && len(c.Security.SecretKey) < minConfiguredSecretBytes {
		return fmt.Errorf("SECRET_KEY must be at least %d bytes", minConfiguredSecretBytes)
	}
	return nil
}

// Bounds shared by the global and form-specific limiters.
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if err := checkLimiter("RATE_LIMIT", c.Security.RateLimitRequests, c.Security.RateLimitWindow); err != nil {
		return err
	}
	return checkLimiter("FORM_RATE_LIMIT", c.Security.FormRateLimitRequests, c.Security.FormRateLimitWindow)
}

// checkLimiter verifies one request/window pair against the shared
// bounds, naming the offending variable with the given prefix.
func checkLimiter(prefix string, requests int, window time.Duration) error {
	if requests < minRateLimitRequests || requests > maxRateLimitRequests {
		return fmt.Errorf("%s_REQUESTS must be between %d and %d", prefix, minRateLimitRequests, maxRateLimitRequests)
	}
	if window < minRateLimitWindow || window > maxRateLimitWindow {
		return fmt.Errorf("%s_WINDOW must be between %v and %v", prefix, minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

func (c *Config) validateChat() error {
	if c.Chat.MaxMessageLength <= 0 {
		return fmt.Errorf("CHAT_MAX_MESSAGE_LENGTH must be positive")
	}
	if c.Chat.StreamEnabled && c.Chat.StreamMessagesPerMinute <= 0 {
		return fmt.Errorf("CHAT_STREAM_MESSAGES_PER_MINUTE must be positive when the stream is enabled")
	}
	return nil
}

func (c *Config) validateEvents() error {
	if c.Events.BufferSize < 1 {
		return fmt.Errorf("EVENTS_BUFFER_SIZE must be at least 1")
	}
	if c.Events.MaxRetries < 0 {
		return fmt.Errorf("EVENTS_MAX_RETRIES must not be negative")
	}
	if c.Events.RetryInterval <= 0 {
		return fmt.Errorf("EVENTS_RETRY_INTERVAL must be positive")
	}
	if c.Events.CloseTimeout <= 0 {
		return fmt.Errorf("EVENTS_CLOSE_TIMEOUT must be positive")
	}
	return nil
}

var (
	logLevels  = []string{"trace", "debug", "info", "warn", "error"}
	logFormats = []string{"json", "console"}
)

func (c *Config) validateLogging() error {
	if !slices.Contains(logLevels, c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of: %s", strings.Join(logLevels, ", "))
	}
	// Format is optional; the logging package falls back to json.
	if c.Logging.Format != "" && !slices.Contains(logFormats, c.Logging.Format) {
		return fmt.Errorf("LOG_FORMAT must be one of: %s", strings.Join(logFormats, ", "))
	}
	return nil
}
