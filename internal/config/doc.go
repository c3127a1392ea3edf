// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

/*
Package config loads and validates every runtime setting for Bandstand.

Settings come from three layers with koanf v2, later layers winning:
built-in defaults, an optional YAML file (config.yaml on the search
path, or the file CONFIG_PATH names), and flat environment variables.
The defaults alone boot a working development server.

# Groups

  - ServerConfig: HTTP listener (host, port, timeouts, static dir)
  - SecurityConfig: flash-cookie signing secret, CORS, rate limiting
  - LoggingConfig: zerolog level, format, caller info
  - ChatConfig: AI chat API and WebSocket stream limits
  - EventsConfig: submission event bus tuning
  - MetricsConfig: Prometheus exposure

# Environment

Server:
  - HTTP_HOST: bind address (default 0.0.0.0)
  - HTTP_PORT or PORT: listen port (default 5000)
  - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT: request deadlines (default 30s)
  - SHUTDOWN_TIMEOUT: graceful shutdown window (default 10s)
  - STATIC_DIR: directory served under /static/ (default static)
  - ENVIRONMENT: development, staging, or production

Security:
  - SECRET_KEY: flash-cookie signing secret; generated at startup when
    unset, in which case flashes do not survive restarts
  - CORS_ORIGINS: comma-separated allowed origins (default *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW: API limiter (100 per minute)
  - FORM_RATE_LIMIT_REQUESTS, FORM_RATE_LIMIT_WINDOW: POST limiter (10 per minute)
  - DISABLE_RATE_LIMIT: switch limiting off
  - TRUSTED_PROXIES: comma-separated proxy IPs

Logging:
  - LOG_LEVEL: trace through error (default info)
  - LOG_FORMAT: json or console (default json)
  - LOG_CALLER: include file:line (default false)

Chat:
  - CHAT_MAX_MESSAGE_LENGTH: longest accepted message (default 2000)
  - CHAT_STREAM_ENABLED: serve the WebSocket stream (default true)
  - CHAT_STREAM_MESSAGES_PER_MINUTE: per-connection budget (default 60)

Events:
  - EVENTS_BUFFER_SIZE: subscriber channel buffer (default 64)
  - EVENTS_MAX_RETRIES: handler retries (default 3)
  - EVENTS_RETRY_INTERVAL: initial backoff (default 100ms)
  - EVENTS_CLOSE_TIMEOUT: router close timeout (default 30s)

Metrics:
  - METRICS_ENABLED: serve /metrics (default true)

Load validates before returning: out-of-range ports, broken timeouts,
unknown log levels or formats, and configured secrets shorter than 16
bytes are all rejected. The returned Config is never mutated afterwards
and may be shared across goroutines.
*/
package config
