package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/contaboo/property-importer/internal/config"
	"github.com/contaboo/property-importer/internal/core"
	"github.com/contaboo/property-importer/internal/logging"
	"github.com/contaboo/property-importer/internal/store"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	sources, err := config.LoadSources(cfg.Import.SourcesFile)
	if err != nil {
		slog.Error("failed to load source sequence", "error", err)
		os.Exit(1)
	}

	slog.Info("starting import run",
		"company", cfg.Import.CompanyID,
		"user", cfg.Import.UserID,
		"sources", len(sources.EnabledPaths()),
	)

	if err := run(context.Background(), cfg, sources); err != nil {
		slog.Error("import run failed", "error", err)
		os.Exit(1)
	}
}

// run performs one complete import: acquire the store, load the vocabulary
// mappings, drive the sources, and release everything unconditionally.
func run(ctx context.Context, cfg *config.Config, sources *config.SourceList) error {
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return err
	}
	poolConfig.MaxConns = int32(cfg.Database.MaxConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return err
	}

	st, err := store.New(ctx, pool)
	if err != nil {
		return err
	}
	defer st.Close(ctx)

	mappings, err := core.LoadMappings(ctx, st, cfg.Import.CompanyID)
	if err != nil {
		return err
	}
	slog.Info("lookup mappings loaded",
		"categories", len(mappings.Categories),
		"types", len(mappings.Types),
		"statuses", len(mappings.Statuses),
		"finishing", len(mappings.Finishing),
		"regions", len(mappings.Regions),
		"currencies", len(mappings.Currencies),
	)

	importer := core.NewImporter(st, mappings, core.RunContext{
		CompanyID: cfg.Import.CompanyID,
		UserID:    cfg.Import.UserID,
	}, slog.Default())

	result, err := importer.Run(ctx, sources.EnabledPaths())
	if err != nil {
		return err
	}

	slog.Info("import summary",
		"processed", result.Processed,
		"imported", result.Imported,
		"skipped", result.Skipped,
		"unique_properties", result.UniqueKeys,
	)
	return nil
}
