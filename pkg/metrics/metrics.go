// Package metrics exposes request counters in Prometheus format. Each
// Metrics instance carries its own registry so multiple engines can coexist
// in one process.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

type Metrics struct {
	registry *prometheus.Registry
	handler  fasthttp.RequestHandler

	RequestsTotal *prometheus.CounterVec
	InFlight      prometheus.Gauge
	ResponseDelay prometheus.Histogram
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "loadbearer_requests_total",
			Help: "Number of requests served, by path.",
		}, []string{"path"}),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "loadbearer_in_flight_requests",
			Help: "Requests currently waiting on delivery.",
		}),
		ResponseDelay: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "loadbearer_response_delay_seconds",
			Help:    "Observed time from dispatch to delivery for deferred requests.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
		}),
	}
	registry.MustRegister(m.RequestsTotal, m.InFlight, m.ResponseDelay)

	m.handler = fasthttpadaptor.NewFastHTTPHandler(
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	)

	return m
}

// Handler serves the scrape endpoint.
func (m *Metrics) Handler() fasthttp.RequestHandler {
	return m.handler
}
