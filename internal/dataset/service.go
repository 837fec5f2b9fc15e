package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/morsel/internal/metrics"
	"github.com/MrJamesThe3rd/morsel/internal/normalize"
	"github.com/MrJamesThe3rd/morsel/internal/sales"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=dataset
type Repository interface {
	Save(ctx context.Context, records []sales.Record) error
	Load(ctx context.Context) ([]sales.Record, error)
}

// SourceReader reads every source table in a directory.
type SourceReader interface {
	ReadDir(dir string) ([]sales.Table, error)
}

type Options struct {
	// SkipMalformed drops a whole source file when one of its kept rows is malformed
	// instead of failing the run.
	SkipMalformed bool
}

var errNoRepository = errors.New("no canonical store configured")

type Service struct {
	repo    Repository
	sources SourceReader
	metrics *metrics.Metrics
	opts    Options

	// mu serializes ingest and restore runs so saves and publishes never interleave.
	mu      sync.Mutex
	current atomic.Pointer[Dataset]
}

// NewService creates a dataset service. repo may be nil when the canonical dataset is not persisted.
func NewService(repo Repository, sources SourceReader, m *metrics.Metrics, opts Options) *Service {
	return &Service{
		repo:    repo,
		sources: sources,
		metrics: m,
		opts:    opts,
	}
}

// Current returns the published dataset, or nil before the first successful Ingest or Restore.
func (s *Service) Current() *Dataset {
	return s.current.Load()
}

// Ingest reads and normalizes every source in dir, persists the result and publishes it.
// On failure nothing is published and the previous dataset stays current.
func (s *Service) Ingest(ctx context.Context, dir string) (*Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()

	ds, err := s.ingest(ctx, dir)

	s.metrics.IngestDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		s.metrics.IngestRuns.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, err
	}

	s.metrics.IngestRuns.WithLabelValues(metrics.OutcomeOK).Inc()
	s.publish(ds)

	slog.Info("dataset ingested",
		"dataset_id", ds.ID,
		"sources", len(ds.Sources),
		"records", len(ds.Records),
		"elapsed", time.Since(start))

	return ds, nil
}

func (s *Service) ingest(ctx context.Context, dir string) (*Dataset, error) {
	tables, err := s.sources.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading sources: %w", err)
	}

	records := make([]sales.Record, 0)

	var used []string

	for _, t := range tables {
		recs, err := normalize.NormalizeTable(t)
		if err != nil {
			if !s.opts.SkipMalformed {
				return nil, fmt.Errorf("normalizing sources: %w", err)
			}

			slog.Warn("skipping malformed source", "source", t.Source, "error", err)
			s.metrics.SkippedSources.Inc()

			continue
		}

		slog.Debug("source normalized", "source", t.Source, "rows", len(t.Rows), "kept", len(recs))

		records = append(records, recs...)
		used = append(used, t.Source)
	}

	if s.repo != nil {
		if err := s.repo.Save(ctx, records); err != nil {
			return nil, fmt.Errorf("saving canonical dataset: %w", err)
		}
	}

	return &Dataset{
		ID:       uuid.New(),
		Records:  records,
		Sources:  used,
		LoadedAt: time.Now().UTC(),
	}, nil
}

// Restore publishes the canonical dataset previously saved to the repository.
func (s *Service) Restore(ctx context.Context) (*Dataset, error) {
	if s.repo == nil {
		return nil, errNoRepository
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading canonical dataset: %w", err)
	}

	ds := &Dataset{
		ID:       uuid.New(),
		Records:  records,
		LoadedAt: time.Now().UTC(),
	}
	s.publish(ds)

	slog.Info("dataset restored", "dataset_id", ds.ID, "records", len(records))

	return ds, nil
}

func (s *Service) publish(ds *Dataset) {
	s.current.Store(ds)
	s.metrics.DatasetRecords.Set(float64(len(ds.Records)))
}
