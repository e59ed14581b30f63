// Package metrics exports suggestion and learning activity as Prometheus metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/poiesic/suggestor/core"
	"github.com/poiesic/suggestor/learning"
	"github.com/poiesic/suggestor/suggest"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "suggestor"

// PrometheusMonitor observes ranking requests and learning events.
type PrometheusMonitor struct {
	registry *prometheus.Registry

	// Suggestion metrics
	requests       prometheus.Counter
	fallbacks      prometheus.Counter
	results        prometheus.Histogram
	sourceLatency  *prometheus.HistogramVec
	sourceResults  *prometheus.CounterVec
	sourceFailures *prometheus.CounterVec

	// Learning metrics
	recorded      prometheus.Counter
	totalSearches prometheus.Gauge
	uniqueTerms   prometheus.Gauge
	sweeps        prometheus.Counter
	sweptTerms    prometheus.Counter
}

var (
	_ suggest.Monitor   = (*PrometheusMonitor)(nil)
	_ learning.Observer = (*PrometheusMonitor)(nil)
)

// Config configures the Prometheus monitor.
type Config struct {
	// Registry to use (if nil, creates a new one)
	Registry *prometheus.Registry

	// Buckets for source latency histograms (in seconds)
	LatencyBuckets []float64
}

// DefaultConfig returns default Prometheus configuration.
func DefaultConfig() Config {
	return Config{
		LatencyBuckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}
}

// NewPrometheusMonitor creates a monitor and registers its metrics.
func NewPrometheusMonitor(cfg Config) *PrometheusMonitor {
	if len(cfg.LatencyBuckets) == 0 {
		cfg.LatencyBuckets = DefaultConfig().LatencyBuckets
	}

	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	m := &PrometheusMonitor{registry: registry}

	m.requests = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "suggest",
		Name:      "requests_total",
		Help:      "Total number of suggestion requests",
	})
	m.fallbacks = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "suggest",
		Name:      "fallbacks_total",
		Help:      "Total number of requests answered with fallback suggestions",
	})
	m.results = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "suggest",
		Name:      "results",
		Help:      "Number of suggestions returned per request",
		Buckets:   []float64{0, 1, 2, 4, 8, 16},
	})
	m.sourceLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "source",
			Name:      "latency_seconds",
			Help:      "Suggestion source latency in seconds",
			Buckets:   cfg.LatencyBuckets,
		},
		[]string{"source"},
	)
	m.sourceResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "source",
			Name:      "suggestions_total",
			Help:      "Total candidates produced by each source",
		},
		[]string{"source"},
	)
	m.sourceFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "source",
			Name:      "failures_total",
			Help:      "Total failed source calls",
		},
		[]string{"source"},
	)

	m.recorded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "learning",
		Name:      "recorded_total",
		Help:      "Total searches recorded into the term library",
	})
	m.totalSearches = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "library",
		Name:      "total_searches",
		Help:      "Searches recorded over the library's lifetime",
	})
	m.uniqueTerms = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "library",
		Name:      "unique_terms",
		Help:      "Number of terms currently in the library",
	})
	m.sweeps = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "retention",
		Name:      "sweeps_total",
		Help:      "Total retention sweeps",
	})
	m.sweptTerms = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "retention",
		Name:      "removed_terms_total",
		Help:      "Total terms removed by retention sweeps",
	})

	registry.MustRegister(
		m.requests,
		m.fallbacks,
		m.results,
		m.sourceLatency,
		m.sourceResults,
		m.sourceFailures,
		m.recorded,
		m.totalSearches,
		m.uniqueTerms,
		m.sweeps,
		m.sweptTerms,
	)

	return m
}

func (m *PrometheusMonitor) Start(string) {
	m.requests.Inc()
}

func (m *PrometheusMonitor) SourceDone(source string, count int, elapsed time.Duration, err error) {
	m.sourceLatency.WithLabelValues(source).Observe(elapsed.Seconds())
	if err != nil {
		m.sourceFailures.WithLabelValues(source).Inc()
		return
	}
	m.sourceResults.WithLabelValues(source).Add(float64(count))
}

func (m *PrometheusMonitor) Fallback(string, error) {
	m.fallbacks.Inc()
}

func (m *PrometheusMonitor) Finish(_ string, results []*core.Suggestion) {
	m.results.Observe(float64(len(results)))
}

func (m *PrometheusMonitor) Recorded(_ string, stats core.LibraryStats) {
	m.recorded.Inc()
	m.totalSearches.Set(float64(stats.TotalSearches))
	m.uniqueTerms.Set(float64(stats.UniqueTermCount))
}

func (m *PrometheusMonitor) Swept(result learning.SweepResult) {
	m.sweeps.Inc()
	m.sweptTerms.Add(float64(result.Removed))
	m.uniqueTerms.Set(float64(result.Remaining))
}

// Handler returns an HTTP handler for the metrics endpoint.
func (m *PrometheusMonitor) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the Prometheus registry.
func (m *PrometheusMonitor) Registry() *prometheus.Registry {
	return m.registry
}
