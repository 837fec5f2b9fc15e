// Package app wires the canonical dataset repository and services shared by the commands.
package app

import (
	"context"
	"fmt"

	"github.com/MrJamesThe3rd/morsel/internal/config"
	"github.com/MrJamesThe3rd/morsel/internal/database"
	"github.com/MrJamesThe3rd/morsel/internal/dataset"
	"github.com/MrJamesThe3rd/morsel/internal/dataset/csvstore"
	"github.com/MrJamesThe3rd/morsel/internal/dataset/store"
	"github.com/MrJamesThe3rd/morsel/internal/importer"
	"github.com/MrJamesThe3rd/morsel/internal/metrics"
)

// OpenRepository returns the canonical store selected by CANONICAL_STORE and a func
// releasing its resources. The repository is nil for "none".
func OpenRepository(ctx context.Context, cfg *config.Config) (dataset.Repository, func(), error) {
	noop := func() {}

	switch cfg.Canonical.Store {
	case config.StoreNone:
		return nil, noop, nil
	case config.StoreCSV:
		return csvstore.New(cfg.Canonical.Path), noop, nil
	case config.StorePostgres:
		db, err := database.New(ctx, cfg.ConnectionString())
		if err != nil {
			return nil, noop, err
		}

		s := store.New(db)
		if err := s.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, noop, err
		}

		return s, func() { db.Close() }, nil
	}

	return nil, noop, fmt.Errorf("unknown canonical store %q", cfg.Canonical.Store)
}

// NewDatasetService builds a dataset service reading sources through the importer.
func NewDatasetService(cfg *config.Config, repo dataset.Repository, m *metrics.Metrics) *dataset.Service {
	return dataset.NewService(repo, importer.NewService(), m, dataset.Options{
		SkipMalformed: cfg.Ingest.SkipMalformed,
	})
}

// LoadInitial publishes the first dataset: a fresh ingest of SOURCE_DIR, or a restore
// from the canonical store when INGEST_ON_START is false.
func LoadInitial(ctx context.Context, cfg *config.Config, svc *dataset.Service) (*dataset.Dataset, error) {
	if cfg.Ingest.OnStart {
		return svc.Ingest(ctx, cfg.Ingest.SourceDir)
	}

	return svc.Restore(ctx)
}
