// Package main is the entry point for the service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prmf/premium-api/internal/adapters/clients"
	"github.com/prmf/premium-api/internal/adapters/clients/acl"
	"github.com/prmf/premium-api/internal/adapters/http"
	"github.com/prmf/premium-api/internal/adapters/http/handlers"
	"github.com/prmf/premium-api/internal/adapters/identity"
	"github.com/prmf/premium-api/internal/adapters/storage/memory"
	"github.com/prmf/premium-api/internal/adapters/storage/postgres"
	"github.com/prmf/premium-api/internal/adapters/storage/rates"
	"github.com/prmf/premium-api/internal/app"
	"github.com/prmf/premium-api/internal/platform/config"
	"github.com/prmf/premium-api/internal/platform/logging"
	"github.com/prmf/premium-api/internal/platform/telemetry"
	"github.com/prmf/premium-api/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	slog.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 5. Create health registry
	healthRegistry := ports.NewHealthRegistry()

	// 6. Create storage adapters per the configured driver
	rateStore, historyStore, closeStore, err := buildStores(ctx, cfg, logger, healthRegistry)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	defer closeStore()

	// 7. Create the identity provider per the configured mode
	identityProvider, err := buildIdentity(cfg, logger, healthRegistry)
	if err != nil {
		return fmt.Errorf("initializing identity: %w", err)
	}

	// 8. Create application services
	calculatorService := app.NewCalculatorService(app.CalculatorConfig{
		RateStore:    rateStore,
		HistoryStore: historyStore,
		Identity:     identityProvider,
		Logger:       logger,
	})

	historyService := app.NewHistoryService(app.HistoryConfig{
		HistoryStore: historyStore,
		Identity:     identityProvider,
		Logger:       logger,
	})

	// 9. Create handlers
	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)
	healthHandler := handlers.NewHealthHandler(healthRegistry, buildInfo)
	calculateHandler := handlers.NewCalculateHandler(calculatorService)
	historyHandler := handlers.NewHistoryHandler(historyService)

	// 10. Create HTTP server
	server := http.New(&cfg.Server, logger)

	// 11. Setup router with all middleware and routes
	routerCfg := http.NewDefaultRouterConfig(logger, &cfg.App, healthHandler, calculateHandler, historyHandler)
	http.SetupRouter(server.Engine(), routerCfg)

	// 12. Start server (non-blocking)
	serverErr := server.Start()

	// 13. Wait for shutdown signal
	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// buildStores creates the rate and history stores for the configured
// database driver and registers their health checks. The returned
// cleanup func is a no-op for the in-memory driver.
func buildStores(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	registry ports.HealthRegistry,
) (ports.RateStore, ports.HistoryStore, func(), error) {
	switch cfg.Database.Driver {
	case "postgres":
		store, err := postgres.Open(postgres.Config{
			DSN:             cfg.Database.DSN,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		}, logger)
		if err != nil {
			return nil, nil, nil, err
		}

		if cfg.Database.AutoMigrate {
			if err := store.Migrate(ctx); err != nil {
				store.Close()
				return nil, nil, nil, err
			}
		}

		if err := registry.Register(store); err != nil {
			store.Close()
			return nil, nil, nil, err
		}

		closeStore := func() {
			if err := store.Close(); err != nil {
				logger.Error("closing database", slog.Any("error", err))
			}
		}

		return store, store, closeStore, nil

	case "memory":
		rateStore := memory.NewRateStore()
		historyStore := memory.NewHistoryStore()

		if cfg.Database.RatesFile != "" {
			records, err := rates.LoadFile(cfg.Database.RatesFile)
			if err != nil {
				return nil, nil, nil, err
			}

			if err := rateStore.ReplaceAll(ctx, records); err != nil {
				return nil, nil, nil, err
			}

			logger.Info("loaded rate table",
				slog.String("path", cfg.Database.RatesFile),
				slog.Int("rates", len(records)),
			)
		} else {
			logger.Warn("in-memory rate table is empty; set database.rates_file to serve quotes")
		}

		if err := registry.Register(rateStore); err != nil {
			return nil, nil, nil, err
		}

		return rateStore, historyStore, func() {}, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}

// buildIdentity creates the identity provider for the configured mode.
// Mode "jwt" verifies bearer tokens locally; mode "remote" resolves
// them against the identity backend over HTTP.
func buildIdentity(
	cfg *config.Config,
	logger *slog.Logger,
	registry ports.HealthRegistry,
) (ports.IdentityProvider, error) {
	switch cfg.Identity.Mode {
	case "jwt":
		return identity.NewJWTVerifier(cfg.Identity.JWTSecret), nil

	case "remote":
		httpClient, err := clients.New(&clients.Config{
			BaseURL:     cfg.Identity.BaseURL,
			ServiceName: "identity-service",
			Timeout:     cfg.Client.Timeout,
			Retry:       cfg.Client.Retry,
			Circuit:     cfg.Client.CircuitBreaker,
			Logger:      logger,
		})
		if err != nil {
			return nil, fmt.Errorf("creating identity HTTP client: %w", err)
		}

		identityClient := acl.NewIdentityClient(acl.IdentityClientConfig{
			Client: httpClient,
			APIKey: cfg.Identity.APIKey,
			Logger: logger,
		})

		if err := registry.Register(identityClient); err != nil {
			return nil, fmt.Errorf("registering identity health check: %w", err)
		}

		return identityClient, nil

	default:
		return nil, fmt.Errorf("unknown identity mode %q", cfg.Identity.Mode)
	}
}

// waitForShutdown blocks until a shutdown signal is received or server error occurs.
// It then performs graceful shutdown of the HTTP server.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	// Listen for OS signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		// Server error during startup or runtime
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	// Graceful shutdown sequence
	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	// Stop accepting new requests, drain in-flight
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
