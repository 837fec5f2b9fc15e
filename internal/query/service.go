package query

import (
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/MrJamesThe3rd/morsel/internal/dataset"
	"github.com/MrJamesThe3rd/morsel/internal/metrics"
	"github.com/MrJamesThe3rd/morsel/internal/sales"
)

// ErrNoDataset is returned when no dataset has been published yet.
var ErrNoDataset = errors.New("no dataset loaded")

// DatasetSource returns the currently published dataset.
type DatasetSource interface {
	Current() *dataset.Dataset
}

// Result is a series computed against a specific dataset.
type Result struct {
	DatasetID uuid.UUID
	Selector  string
	Series    sales.Series
}

// Service answers series queries against the published dataset. Results are cached per
// dataset ID and selector, so a new ingestion never serves stale series.
type Service struct {
	datasets DatasetSource
	cache    *cache.Cache
	metrics  *metrics.Metrics
}

func NewService(datasets DatasetSource, c *cache.Cache, m *metrics.Metrics) *Service {
	return &Service{
		datasets: datasets,
		cache:    c,
		metrics:  m,
	}
}

// Series returns the revenue series for selector. The returned series is owned by the caller.
func (s *Service) Series(selector string) (*Result, error) {
	start := time.Now()
	defer func() {
		s.metrics.QueryDuration.Observe(time.Since(start).Seconds())
	}()

	if _, err := ParseSelector(selector); err != nil {
		s.metrics.Queries.WithLabelValues("unknown", metrics.OutcomeError).Inc()
		return nil, err
	}

	ds := s.datasets.Current()
	if ds == nil {
		s.metrics.Queries.WithLabelValues(selector, metrics.OutcomeError).Inc()
		return nil, ErrNoDataset
	}

	key := ds.ID.String() + "/" + selector

	if cached, ok := s.cache.Get(key); ok {
		s.metrics.Queries.WithLabelValues(selector, metrics.OutcomeCacheHit).Inc()
		return result(ds.ID, selector, cached.(sales.Series)), nil
	}

	series, err := Query(ds.Records, selector)
	if err != nil {
		s.metrics.Queries.WithLabelValues(selector, metrics.OutcomeError).Inc()
		return nil, err
	}

	s.cache.SetDefault(key, series)
	s.metrics.Queries.WithLabelValues(selector, metrics.OutcomeOK).Inc()

	return result(ds.ID, selector, series), nil
}

func result(id uuid.UUID, selector string, series sales.Series) *Result {
	return &Result{
		DatasetID: id,
		Selector:  selector,
		Series:    slices.Clone(series),
	}
}
