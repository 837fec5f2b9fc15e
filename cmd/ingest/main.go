// Command ingest normalizes the source directory once and writes the canonical dataset.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/MrJamesThe3rd/morsel/internal/app"
	"github.com/MrJamesThe3rd/morsel/internal/config"
	"github.com/MrJamesThe3rd/morsel/internal/logger"
	"github.com/MrJamesThe3rd/morsel/internal/metrics"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	flag.StringVar(&cfg.Ingest.SourceDir, "source", cfg.Ingest.SourceDir, "directory of daily sales files")
	flag.StringVar(&cfg.Canonical.Path, "out", cfg.Canonical.Path, "canonical CSV path when CANONICAL_STORE=csv")
	flag.BoolVar(&cfg.Ingest.SkipMalformed, "skip-malformed", cfg.Ingest.SkipMalformed, "skip sources that fail to normalize")
	flag.Parse()

	logger.Init(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	if err := run(cfg); err != nil {
		slog.Error("ingest failed", "source_dir", cfg.Ingest.SourceDir, "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := app.OpenRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	svc := app.NewDatasetService(cfg, repo, metrics.New(prometheus.NewRegistry()))

	ds, err := svc.Ingest(ctx, cfg.Ingest.SourceDir)
	if err != nil {
		return err
	}

	slog.Info("canonical dataset written",
		"store", cfg.Canonical.Store,
		"records", len(ds.Records),
		"sources", ds.Sources)

	return nil
}
