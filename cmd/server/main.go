// Bandstand - Band Website & Fan Engagement Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bandstand

// main.go - Server Entry Point
//
// Startup order: configuration, logging, page engine, flash store,
// chat personas, submission bus, HTTP stack, supervisor tree. The
// supervisor owns every long-running component; main only builds
// them, wires the signal handler, and waits.

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"
	"time"

	"github.com/tomtom215/bandstand/internal/agents"
	"github.com/tomtom215/bandstand/internal/api"
	"github.com/tomtom215/bandstand/internal/config"
	"github.com/tomtom215/bandstand/internal/events"
	"github.com/tomtom215/bandstand/internal/flash"
	"github.com/tomtom215/bandstand/internal/logging"
	"github.com/tomtom215/bandstand/internal/metrics"
	"github.com/tomtom215/bandstand/internal/pages"
	"github.com/tomtom215/bandstand/internal/supervisor"
	"github.com/tomtom215/bandstand/internal/supervisor/services"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logging still has its defaults here; that is fine for a fatal.
		logging.Fatal().Err(err).Msg("Could not load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Str("version", version).Msg("Starting Bandstand with supervisor tree")
	logging.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("environment", cfg.Server.Environment).
		Str("static_dir", cfg.Server.StaticDir).
		Str("secret_source", cfg.Security.SecretSource).
		Msg("Configuration loaded")

	metrics.SetAppInfo(version, runtime.Version())
	warnOnRiskyConfig(cfg)

	// Compile page templates up front so a broken template fails the
	// deploy instead of the first request
	engine, err := pages.NewEngine()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to compile page templates")
	}
	logging.Info().Int("pages", len(pages.Catalog())).Msg("Page templates compiled")

	flashes, err := flash.NewStore([]byte(cfg.Security.SecretKey))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create flash store")
	}

	registry := agents.NewRegistry()
	logging.Info().Int("agents", len(registry.List())).Msg("Chat personas registered")

	// Submission bus carries accepted contact and newsletter forms to
	// their consumers off the request path
	busCfg := events.DefaultConfig()
	busCfg.BufferSize = cfg.Events.BufferSize
	busCfg.CloseTimeout = cfg.Events.CloseTimeout
	busCfg.Retry.MaxRetries = cfg.Events.MaxRetries
	busCfg.Retry.InitialInterval = cfg.Events.RetryInterval

	bus, err := events.NewBus(busCfg, nil)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create submission bus")
	}
	defer func() {
		if err := bus.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing submission bus")
		}
	}()
	bus.AddConsumer(events.ConsumerSubmissionLog, events.NewSubmissionLogConsumer())

	handlers := api.NewHandlers(engine, flashes, registry, bus, cfg)
	router := api.NewRouter(handlers, cfg)
	server := newHTTPServer(cfg, router.Setup())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// sutureslog speaks slog, so hand it the zerolog bridge. Restart
	// knobs stay at their defaults; only the drain window is ours.
	tree, err := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Could not build the supervisor tree")
	}

	tree.AddEventsService(services.NewBusService(bus))
	logging.Info().Msg("Submission bus registered with supervisor")

	tree.AddWebService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP service registered with supervisor")

	cancelOnSignal(cancel)

	logging.Info().Msg("Supervisor tree starting")
	errCh := tree.ServeBackground(ctx)

	// The gochannel pub/sub drops events published before consumers
	// attach, so wait for the bus before announcing readiness
	select {
	case <-bus.Running():
		logging.Info().Msg("Submission bus running")
	case <-time.After(5 * time.Second):
		logging.Warn().Msg("Submission bus did not report running within 5s")
	case <-ctx.Done():
	}

	go trackUptime(ctx, time.Now())

	drainSupervisor(ctx, tree, errCh)
	logging.Info().Msg("Bandstand stopped cleanly")
}

// newHTTPServer applies the configured address and timeouts. The idle
// timeout is fixed; visitors hold connections open only for the chat
// stream, which manages its own deadlines after the upgrade.
func newHTTPServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      h,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  time.Minute,
	}
}

// warnOnRiskyConfig calls out settings that are workable in development
// but bite in production.
func warnOnRiskyConfig(cfg *config.Config) {
	// Flash cookies signed with a generated secret do not survive a
	// restart and are rejected by other replicas.
	if cfg.Security.SecretSource == config.SecretSourceGenerated {
		logging.Warn().Msg("------------------------------------------------------------")
		logging.Warn().Msg("SECRET_KEY is not set, so a fresh signing secret was generated")
		logging.Warn().Msg("for this process. Pending form confirmations are lost on every")
		logging.Warn().Msg("restart, and replicas will reject each other's flash cookies.")
		logging.Warn().Msg("Give production a stable value:")
		logging.Warn().Msg("    SECRET_KEY=$(openssl rand -base64 32)")
		logging.Warn().Msg("------------------------------------------------------------")
	}

	if cfg.IsProduction() && cfg.WildcardCORS() {
		logging.Warn().Msg("------------------------------------------------------------")
		logging.Warn().Msg("CORS_ORIGINS=* in production lets any website call the API and")
		logging.Warn().Msg("open chat stream connections from its own pages. List the real")
		logging.Warn().Msg("origins instead:")
		logging.Warn().Msg("    CORS_ORIGINS=https://yourband.com,https://www.yourband.com")
		logging.Warn().Msg("------------------------------------------------------------")
	}

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true); intended for local development and load tests only")
	}
}

// cancelOnSignal cancels the root context on SIGINT or SIGTERM. Further
// signals are swallowed so a second Ctrl-C does not bypass the graceful
// drain.
func cancelOnSignal(cancel context.CancelFunc) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
		cancel()
	}()
}

// trackUptime refreshes the uptime gauge until the context ends.
func trackUptime(ctx context.Context, started time.Time) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.SetUptime(started)
		}
	}
}

// drainSupervisor waits out the supervisor tree: first for shutdown to
// begin, then for the error channel to close, then reports anything
// that ignored the stop deadline.
func drainSupervisor(ctx context.Context, tree *supervisor.Tree, errCh <-chan error) {
	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown requested, draining supervised services")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor reported an error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Error while draining supervisor")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services missed the shutdown deadline")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Still running at shutdown deadline")
		}
	}
}
