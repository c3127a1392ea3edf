// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

/*
Package main is the entry point for the Bandstand server application.

Bandstand serves the band's public website: the content pages, contact
and newsletter forms with signed flash confirmations, and an AI chat
with four band personas over REST and WebSocket.

# Application Architecture

Every long-lived component runs under a Suture v4 supervisor:

	RootSupervisor ("bandstand")
	├── EventsSupervisor ("events-layer")
	│   └── Submission Bus (Watermill consumers for accepted forms)
	└── WebSupervisor ("web-layer")
	    └── HTTP Server (pages, forms, chat API, chat stream)

Startup wires the components in dependency order:

 1. Configuration: Koanf v2 layering env vars over an optional YAML file
 2. Logging: zerolog in JSON or console format
 3. Page Engine: html/template pages compiled at startup
 4. Flash Store: HMAC-signed one-shot cookies for form confirmations
 5. Persona Registry: the four chat personas and their reply pools
 6. Submission Bus: Watermill gochannel router with retry middleware
 7. HTTP Server: Chi router with security headers, rate limits, and CORS

# Configuration

Settings come from three layers; the first match wins:
  - Environment variables
  - Config file (config.yaml, or the path in CONFIG_PATH)
  - Built-in defaults

Common settings:
  - HTTP_HOST / HTTP_PORT: bind address (default 0.0.0.0:5000)
  - SECRET_KEY: flash cookie signing secret (generated when unset)
  - CORS_ORIGINS: comma-separated allowed origins (default *)
  - CHAT_STREAM_ENABLED: WebSocket chat stream (default true)
  - METRICS_ENABLED: Prometheus /metrics endpoint (default true)
  - LOG_LEVEL / LOG_FORMAT: zerolog level and output format

# Signal Handling

The server handles graceful shutdown on SIGINT and SIGTERM:
  - Stops accepting new connections
  - Waits for in-flight requests to complete (SHUTDOWN_TIMEOUT, default 10s)
  - Drains the submission bus so accepted forms reach their consumers

# Example Usage

Development:

	LOG_FORMAT=console ./bandstand

Production:

	export ENVIRONMENT=production
	export SECRET_KEY=$(openssl rand -base64 32)
	export CORS_ORIGINS=https://yourband.com
	./bandstand

Docker:

	docker run -d \
	  -e SECRET_KEY=your-secret \
	  -p 5000:5000 \
	  ghcr.io/tomtom215/bandstand

# Port 5000

The default port 5000 is the port the site has always run on; keeping it
means existing reverse proxy configs and uptime checks carry over
unchanged.
*/
package main
