// Package metrics holds the Prometheus collectors for ingestion and queries.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "morsel"

// Outcome label values.
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeCacheHit = "cache_hit"
)

type Metrics struct {
	IngestRuns     *prometheus.CounterVec
	IngestDuration prometheus.Histogram
	DatasetRecords prometheus.Gauge
	SkippedSources prometheus.Counter
	Queries        *prometheus.CounterVec
	QueryDuration  prometheus.Histogram
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		IngestRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingest_runs_total",
			Help:      "Ingestion runs by outcome.",
		}, []string{"outcome"}),
		IngestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ingest_duration_seconds",
			Help:      "Time spent reading and normalizing sources.",
			Buckets:   prometheus.DefBuckets,
		}),
		DatasetRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_records",
			Help:      "Canonical records in the published dataset.",
		}),
		SkippedSources: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingest_skipped_sources_total",
			Help:      "Source files skipped because a kept row was malformed.",
		}),
		Queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Series queries by region selector and outcome.",
		}, []string{"region", "outcome"}),
		QueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Time spent computing a series.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		}),
	}

	reg.MustRegister(
		m.IngestRuns,
		m.IngestDuration,
		m.DatasetRecords,
		m.SkippedSources,
		m.Queries,
		m.QueryDuration,
	)

	return m
}
