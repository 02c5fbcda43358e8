// Package main imports the premium rate table from a CSV export into the
// configured database. The table is managed externally; this command
// replaces its contents wholesale rather than merging.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/prmf/premium-api/internal/adapters/storage/postgres"
	"github.com/prmf/premium-api/internal/adapters/storage/rates"
	"github.com/prmf/premium-api/internal/platform/config"
	"github.com/prmf/premium-api/internal/platform/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	file := flag.String("file", "", "path to the rate table CSV (required)")
	migrate := flag.Bool("migrate", true, "run schema migration before importing")
	flag.Parse()

	if *file == "" {
		flag.Usage()
		return fmt.Errorf("-file is required")
	}

	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if cfg.Database.Driver != "postgres" {
		return fmt.Errorf("seeding requires database.driver=postgres, got %q", cfg.Database.Driver)
	}

	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name + "-seed",
		Version: cfg.App.Version,
	})
	slog.SetDefault(logger)

	records, err := rates.LoadFile(*file)
	if err != nil {
		return err
	}

	logger.Info("parsed rate table",
		slog.String("path", *file),
		slog.Int("rates", len(records)),
	)

	store, err := postgres.Open(postgres.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	if *migrate {
		if err := store.Migrate(ctx); err != nil {
			return fmt.Errorf("migrating schema: %w", err)
		}
	}

	if err := store.ReplaceAll(ctx, records); err != nil {
		return fmt.Errorf("importing rates: %w", err)
	}

	logger.Info("rate table imported", slog.Int("rates", len(records)))

	return nil
}
