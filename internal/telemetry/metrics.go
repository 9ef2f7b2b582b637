package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/serroba/url-shortener/internal/shortener"
)

// Metrics holds the Prometheus collectors exported on /metrics.
type Metrics struct {
	registry *prometheus.Registry

	// RequestsTotal counts finished requests by method, route template and status.
	RequestsTotal *prometheus.CounterVec
	// RequestDuration observes request latency by method and route template.
	RequestDuration *prometheus.HistogramVec
	// InflightRequests is the number of requests currently being served.
	InflightRequests prometheus.Gauge
	// ProbesTotal counts reachability probes by result.
	ProbesTotal *prometheus.CounterVec
	// ProbeDuration observes how long probes take.
	ProbeDuration prometheus.Histogram
}

// NewMetrics registers all collectors on a fresh registry, so several
// instances can coexist in tests.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency distributions.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		InflightRequests: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_inflight_requests",
				Help: "Current number of in-flight HTTP requests.",
			},
		),
		ProbesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "url_probes_total",
				Help: "Reachability probes by result.",
			},
			[]string{"result"},
		),
		ProbeDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "url_probe_duration_seconds",
				Help:    "Reachability probe latency.",
				Buckets: prometheus.DefBuckets,
			},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestsTotal,
		m.RequestDuration,
		m.InflightRequests,
		m.ProbesTotal,
		m.ProbeDuration,
	)

	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// InstrumentDoer records the outcome and latency of every request sent through next.
func (m *Metrics) InstrumentDoer(next shortener.Doer) shortener.Doer {
	return &instrumentedDoer{next: next, metrics: m}
}

type instrumentedDoer struct {
	next    shortener.Doer
	metrics *Metrics
}

func (d *instrumentedDoer) Do(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := d.next.Do(req)

	d.metrics.ProbeDuration.Observe(time.Since(start).Seconds())

	result := "reachable"
	if err != nil {
		result = "unreachable"
	}

	d.metrics.ProbesTotal.WithLabelValues(result).Inc()

	return resp, err
}
