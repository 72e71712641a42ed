// Package metrics provides Prometheus metrics for the ladder ranking service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Core business metrics
	matchesRecorded prometheus.Counter
	settlements     prometheus.Counter
	settleLatency   prometheus.Histogram
	replays         prometheus.Counter
	replayDuration  prometheus.Histogram
	orphanedSkipped prometheus.Counter
	importSkipped   prometheus.Counter

	// Registry state gauges
	competitorsTotal prometheus.Gauge
	ledgerSize       prometheus.Gauge

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "ladder",
		subsystem:        "ranking",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := func(name, help string) prometheus.CounterOpts {
		return prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      name,
			Help:      help,
		}
	}
	gaugeOpts := func(name, help string) prometheus.GaugeOpts {
		return prometheus.GaugeOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      name,
			Help:      help,
		}
	}
	histOpts := func(name, help string) prometheus.HistogramOpts {
		return prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      name,
			Help:      help,
			Buckets:   m.histogramBuckets,
		}
	}

	m.matchesRecorded = prometheus.NewCounter(factory("matches_recorded_total", "Total number of matches recorded"))
	m.settlements = prometheus.NewCounter(factory("settlements_total", "Total number of rating-period settlements applied"))
	m.settleLatency = prometheus.NewHistogram(histOpts("settle_duration_ms", "Settlement duration in milliseconds"))
	m.replays = prometheus.NewCounter(factory("replays_total", "Total number of full-history replays"))
	m.replayDuration = prometheus.NewHistogram(histOpts("replay_duration_ms", "Replay duration in milliseconds"))
	m.orphanedSkipped = prometheus.NewCounter(factory("orphaned_matches_skipped_total", "Ledger records skipped during replay because a participant was removed"))
	m.importSkipped = prometheus.NewCounter(factory("import_rows_skipped_total", "Rows skipped during bulk import"))

	m.competitorsTotal = prometheus.NewGauge(gaugeOpts("competitors_total", "Number of registered competitors"))
	m.ledgerSize = prometheus.NewGauge(gaugeOpts("ledger_records_total", "Number of records in the match ledger"))

	m.httpRequests = prometheus.NewCounterVec(factory("http_requests_total", "Total HTTP requests"), []string{"endpoint", "method", "status"})
	m.httpRequestDuration = prometheus.NewHistogramVec(histOpts("http_request_duration_ms", "HTTP request duration in milliseconds"), []string{"endpoint", "method", "status"})

	m.registry.MustRegister(
		m.matchesRecorded,
		m.settlements,
		m.settleLatency,
		m.replays,
		m.replayDuration,
		m.orphanedSkipped,
		m.importSkipped,
		m.competitorsTotal,
		m.ledgerSize,
		m.httpRequests,
		m.httpRequestDuration,
	)
}

// GetRegistry returns the custom Prometheus registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers delegating to the global manager.

// RecordMatchRecorded increments the recorded-matches counter.
func RecordMatchRecorded() { globalManager.matchesRecorded.Inc() }

// RecordSettlement increments the settlements counter.
func RecordSettlement() { globalManager.settlements.Inc() }

// RecordSettleDuration records the duration of one settlement pass in ms.
func RecordSettleDuration(ms float64) { globalManager.settleLatency.Observe(ms) }

// RecordReplay increments the replays counter.
func RecordReplay() { globalManager.replays.Inc() }

// RecordReplayDuration records the duration of one replay in ms.
func RecordReplayDuration(ms float64) { globalManager.replayDuration.Observe(ms) }

// RecordOrphanedSkipped adds n to the orphaned-records-skipped counter.
func RecordOrphanedSkipped(n int) { globalManager.orphanedSkipped.Add(float64(n)) }

// RecordImportSkipped adds n to the import-rows-skipped counter.
func RecordImportSkipped(n int) { globalManager.importSkipped.Add(float64(n)) }

// UpdateCompetitorsTotal sets the registered-competitors gauge.
func UpdateCompetitorsTotal(n int) { globalManager.competitorsTotal.Set(float64(n)) }

// UpdateLedgerSize sets the ledger-records gauge.
func UpdateLedgerSize(n int) { globalManager.ledgerSize.Set(float64(n)) }

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration records an HTTP request duration in ms.
func RecordHTTPRequestDuration(endpoint, method, status string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(ms)
}
