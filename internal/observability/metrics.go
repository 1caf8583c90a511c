package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ignis_frontend"

// Metrics holds the Prometheus collectors for page traffic and backend calls.
type Metrics struct {
	HTTPRequests *prometheus.CounterVec   // labels: route, status
	HTTPDuration *prometheus.HistogramVec // labels: route

	BackendRequests *prometheus.CounterVec   // labels: endpoint, outcome={success,http_error,network_error}
	BackendDuration *prometheus.HistogramVec // labels: endpoint

	ActiveSockets prometheus.Gauge
	AlertsSent    prometheus.Counter
}

func newCollectors(help bool) *Metrics {
	h := func(s string) string {
		if help {
			return s
		}
		return ""
	}
	return &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      h("Pages and API requests served, by route and status."),
		}, []string{"route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      h("Time spent serving a request, by route."),
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"route"}),
		BackendRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_requests_total",
			Help:      h("Calls to the IgnisShield backend, by endpoint and outcome."),
		}, []string{"endpoint", "outcome"}),
		BackendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      h("Backend round-trip time, by endpoint."),
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
		ActiveSockets: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "realtime_sockets_active",
			Help:      h("Open realtime hotspot WebSocket connections."),
		}),
		AlertsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_dispatched_total",
			Help:      h("Alerts the backend reported as dispatched for actions taken here."),
		}),
	}
}

// NewMetrics creates the collectors and registers them with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newCollectors(true)
	prometheus.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.BackendRequests,
		m.BackendDuration,
		m.ActiveSockets,
		m.AlertsSent,
	)
	return m
}

// NewMetricsForTesting creates unregistered collectors so tests can build as
// many as they like.
func NewMetricsForTesting() *Metrics {
	return newCollectors(false)
}
