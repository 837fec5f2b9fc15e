package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/MrJamesThe3rd/morsel/internal/app"
	"github.com/MrJamesThe3rd/morsel/internal/config"
	"github.com/MrJamesThe3rd/morsel/internal/export"
	morselHttp "github.com/MrJamesThe3rd/morsel/internal/http"
	datasetHandler "github.com/MrJamesThe3rd/morsel/internal/http/dataset"
	exportHandler "github.com/MrJamesThe3rd/morsel/internal/http/export"
	seriesHandler "github.com/MrJamesThe3rd/morsel/internal/http/series"
	"github.com/MrJamesThe3rd/morsel/internal/logger"
	"github.com/MrJamesThe3rd/morsel/internal/metrics"
	"github.com/MrJamesThe3rd/morsel/internal/query"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Init(os.Stdout, cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := metrics.New(reg)

	repo, closeRepo, err := app.OpenRepository(ctx, cfg)
	if err != nil {
		slog.Error("failed to open canonical store", "store", cfg.Canonical.Store, "error", err)
		os.Exit(1)
	}
	defer closeRepo()

	var (
		datasetService = app.NewDatasetService(cfg, repo, m)
		queryService   = query.NewService(datasetService, cache.New(cfg.Query.CacheTTL, 2*cfg.Query.CacheTTL), m)
		exportService  = export.NewService(queryService)
	)

	if _, err := app.LoadInitial(ctx, cfg, datasetService); err != nil {
		slog.Error("failed to load dataset", "source_dir", cfg.Ingest.SourceDir, "error", err)
		closeRepo()
		os.Exit(1)
	}

	var (
		seriesH  = seriesHandler.NewHandler(queryService)
		datasetH = datasetHandler.NewHandler(datasetService, cfg.Ingest.SourceDir)
		exportH  = exportHandler.NewHandler(exportService)
	)

	router := morselHttp.New(seriesH, datasetH, exportH, morselHttp.Options{
		AllowedOrigins: cfg.Server.CORSOrigins,
		Gatherer:       reg,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "app", cfg.App.Name, "port", srv.Addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		closeRepo()
		os.Exit(1)
	}

	slog.Info("server stopped")
}
