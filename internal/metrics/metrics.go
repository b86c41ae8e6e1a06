package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcomes of a read that returns an empty result.
const (
	OutcomeAbsent   = "absent"
	OutcomeDegraded = "degraded"
)

// Metrics separates true absence from failures hidden behind empty results,
// and tracks HTTP traffic.
type Metrics struct {
	reg *prometheus.Registry

	emptyReads *prometheus.CounterVec
	requests   *prometheus.CounterVec
	latency    *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		reg: reg,
		emptyReads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "threads",
			Name:      "empty_reads_total",
			Help:      "Reads that returned an empty result, by operation and outcome (absent or degraded).",
		}, []string{"op", "outcome"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "threads",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern and status code.",
		}, []string{"route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "threads",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
	reg.MustRegister(
		m.emptyReads,
		m.requests,
		m.latency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Absent records a lookup that found nothing.
func (m *Metrics) Absent(op string) {
	if m == nil {
		return
	}
	m.emptyReads.WithLabelValues(op, OutcomeAbsent).Inc()
}

// Degraded records a read whose failure was converted to an empty result.
func (m *Metrics) Degraded(op string) {
	if m == nil {
		return
	}
	m.emptyReads.WithLabelValues(op, OutcomeDegraded).Inc()
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, status).Inc()
	m.latency.WithLabelValues(route).Observe(d.Seconds())
}

// EmptyReads exposes the counter for assertions.
func (m *Metrics) EmptyReads() *prometheus.CounterVec {
	return m.emptyReads
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}
