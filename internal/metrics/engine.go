package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Search outcome labels.
const (
	StatusOK      = "ok"
	StatusInvalid = "invalid"
	StatusError   = "error"
)

// Metrics holds the engine's Prometheus instruments. A nil *Metrics is
// valid and records nothing, so callers never branch on whether
// metrics are wired.
type Metrics struct {
	searchesTotal   *prometheus.CounterVec
	searchDuration  prometheus.Histogram
	recordsScanned  prometheus.Counter
	resultsReturned prometheus.Histogram
	cacheTotal      *prometheus.CounterVec
	cacheEntries    *prometheus.GaugeVec
}

// New creates engine metrics and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		searchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scandex",
			Name:      "searches_total",
			Help:      "Total searches by outcome",
		}, []string{"status"}),

		searchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "scandex",
			Name:      "search_duration_seconds",
			Help:      "Full scan duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),

		recordsScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "scandex",
			Name:      "records_scanned_total",
			Help:      "Total records scanned across all searches",
		}),

		resultsReturned: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "scandex",
			Name:      "results_returned",
			Help:      "Results returned per search",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 6),
		}),

		cacheTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scandex",
			Name:      "cache_total",
			Help:      "Memo cache hits and misses",
		}, []string{"cache", "result"}),

		cacheEntries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "scandex",
			Name:      "cache_entries",
			Help:      "Current memo cache occupancy",
		}, []string{"cache"}),
	}

	reg.MustRegister(
		m.searchesTotal, m.searchDuration,
		m.recordsScanned, m.resultsReturned,
		m.cacheTotal, m.cacheEntries,
	)

	return m
}

// ObserveSearch records one completed search.
func (m *Metrics) ObserveSearch(status string, d time.Duration, scanned, returned int) {
	if m == nil {
		return
	}
	m.searchesTotal.WithLabelValues(status).Inc()
	m.searchDuration.Observe(d.Seconds())
	m.recordsScanned.Add(float64(scanned))
	m.resultsReturned.Observe(float64(returned))
}

// CacheTotal returns the hit/miss counter for wiring into the memo
// cache. Nil when metrics are off.
func (m *Metrics) CacheTotal() *prometheus.CounterVec {
	if m == nil {
		return nil
	}
	return m.cacheTotal
}

// SetCacheEntries updates the occupancy gauge for one cache.
func (m *Metrics) SetCacheEntries(cache string, n int) {
	if m == nil {
		return
	}
	m.cacheEntries.WithLabelValues(cache).Set(float64(n))
}
