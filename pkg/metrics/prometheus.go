// Package metrics provides Prometheus metrics for the clutch collector.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns all Prometheus metrics for a collection run.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	// Crawl progress
	gamesProcessed prometheus.Counter
	gamesSkipped   *prometheus.CounterVec
	eventsFetched  prometheus.Counter
	eventsSelected prometheus.Counter

	// Feed health
	fetchAttempts  prometheus.Counter
	fetchRetries   prometheus.Counter
	fetchExhausted prometheus.Counter
	fetchLatency   prometheus.Histogram

	// Persistence
	storeWrites      prometheus.Counter
	storeWriteErrors prometheus.Counter

	// Run state
	lastRunUnix prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "clutch",
		subsystem:        "collector",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics registers all metrics on the configured registry.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.gamesProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "games_processed_total",
		Help:      "Total number of games that yielded critical events",
	})

	m.gamesSkipped = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "games_skipped_total",
			Help:      "Total number of games skipped, by reason",
		},
		[]string{"reason"},
	)

	m.eventsFetched = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_fetched_total",
		Help:      "Total number of raw play-by-play actions fetched",
	})

	m.eventsSelected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_selected_total",
		Help:      "Total number of actions inside the critical window",
	})

	m.fetchAttempts = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_attempts_total",
		Help:      "Total number of feed request attempts",
	})

	m.fetchRetries = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_retries_total",
		Help:      "Total number of feed request retries after a failure",
	})

	m.fetchExhausted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_exhausted_total",
		Help:      "Total number of games where every fetch attempt failed",
	})

	m.fetchLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_latency_seconds",
		Help:      "Histogram of feed request latency in seconds",
		Buckets:   m.histogramBuckets,
	})

	m.storeWrites = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_writes_total",
		Help:      "Total number of successful snapshot writes",
	})

	m.storeWriteErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_write_errors_total",
		Help:      "Total number of failed snapshot writes",
	})

	m.lastRunUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_run_unix",
		Help:      "Unix timestamp of the last completed collection run",
	})
}

// Handler returns an HTTP handler exposing the global registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(customRegistry, promhttp.HandlerOpts{})
}

// Package-level helpers recording on the global manager.

// RecordGameProcessed increments the processed-games counter.
func RecordGameProcessed() {
	globalManager.gamesProcessed.Inc()
}

// RecordGameSkipped increments the skipped-games counter for a reason.
func RecordGameSkipped(reason string) {
	globalManager.gamesSkipped.WithLabelValues(reason).Inc()
}

// RecordEventsFetched adds to the fetched-actions counter.
func RecordEventsFetched(n int) {
	globalManager.eventsFetched.Add(float64(n))
}

// RecordEventsSelected adds to the selected-actions counter.
func RecordEventsSelected(n int) {
	globalManager.eventsSelected.Add(float64(n))
}

// RecordFetchAttempt increments the fetch-attempts counter.
func RecordFetchAttempt() {
	globalManager.fetchAttempts.Inc()
}

// RecordFetchRetry increments the fetch-retries counter.
func RecordFetchRetry() {
	globalManager.fetchRetries.Inc()
}

// RecordFetchExhausted increments the exhausted-fetches counter.
func RecordFetchExhausted() {
	globalManager.fetchExhausted.Inc()
}

// RecordFetchLatency observes a feed request latency in seconds.
func RecordFetchLatency(seconds float64) {
	globalManager.fetchLatency.Observe(seconds)
}

// RecordStoreWrite increments the snapshot-writes counter.
func RecordStoreWrite() {
	globalManager.storeWrites.Inc()
}

// RecordStoreWriteError increments the failed-writes counter.
func RecordStoreWriteError() {
	globalManager.storeWriteErrors.Inc()
}

// UpdateLastRunUnix records the completion time of a run.
func UpdateLastRunUnix(unix int64) {
	globalManager.lastRunUnix.Set(float64(unix))
}
