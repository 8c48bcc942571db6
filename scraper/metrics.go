package scraper

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the scraper.
type Metrics struct {
	Registry              *prometheus.Registry
	PagesFetchedTotal     prometheus.Counter
	FetchDuration         prometheus.Histogram
	EntriesExtractedTotal prometheus.Counter
	ErrorsTotal           *prometheus.CounterVec
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	pagesFetched := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scraper_pages_fetched_total",
			Help: "Total catalog pages fetched successfully.",
		},
	)
	fetchDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scraper_fetch_duration_seconds",
			Help:    "Wall time of one catalog page fetch.",
			Buckets: prometheus.DefBuckets,
		},
	)
	entriesExtracted := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scraper_entries_extracted_total",
			Help: "Total number of catalog entries extracted.",
		},
	)
	errorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_errors_total",
			Help: "Total number of scraper errors by type.",
		},
		[]string{"error_type"},
	)

	registry.MustRegister(pagesFetched, fetchDuration, entriesExtracted, errorsTotal)

	return &Metrics{
		Registry:              registry,
		PagesFetchedTotal:     pagesFetched,
		FetchDuration:         fetchDuration,
		EntriesExtractedTotal: entriesExtracted,
		ErrorsTotal:           errorsTotal,
	}
}

// IncPage increments the pages fetched counter.
func (m *Metrics) IncPage() {
	if m == nil {
		return
	}
	m.PagesFetchedTotal.Inc()
}

// ObserveFetchDuration records the wall time of one page fetch.
func (m *Metrics) ObserveFetchDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.FetchDuration.Observe(d.Seconds())
}

// IncEntries increments the entries extracted counter.
func (m *Metrics) IncEntries() {
	if m == nil {
		return
	}
	m.EntriesExtractedTotal.Inc()
}

// IncError increments the errors counter for a type label.
func (m *Metrics) IncError(errorType string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(errorType).Inc()
}
