// Package metrics exposes Prometheus collectors for the HTTP service and
// the quoting workflow.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec

	quotes         *prometheus.CounterVec
	quoteUnitPrice *prometheus.HistogramVec
	unhealthy      prometheus.Counter
	skusMinted     prometheus.Counter
	publishes      *prometheus.CounterVec
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "printgenie_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "printgenie_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		quotes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "printgenie_quotes_total",
			Help: "Quotes computed, by pricing policy and rush level",
		}, []string{"policy", "rush"}),
		quoteUnitPrice: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "printgenie_quote_unit_price_inr",
			Help:    "Final unit price of computed quotes in INR",
			Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000},
		}, []string{"policy"}),
		unhealthy: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "printgenie_quotes_below_min_margin_total",
			Help: "Quotes whose margin fell below the configured minimum",
		}),
		skusMinted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "printgenie_skus_minted_total",
			Help: "SKU sequence numbers handed out",
		}),
		publishes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "printgenie_catalog_publishes_total",
			Help: "Catalog publish attempts by outcome",
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(
		m.requests, m.duration,
		m.quotes, m.quoteUnitPrice, m.unhealthy,
		m.skusMinted, m.publishes,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveQuote records one computed quote.
func (m *Metrics) ObserveQuote(policy, rush string, unitPrice float64, healthy bool) {
	m.quotes.WithLabelValues(policy, rush).Inc()
	m.quoteUnitPrice.WithLabelValues(policy).Observe(unitPrice)
	if !healthy {
		m.unhealthy.Inc()
	}
}

func (m *Metrics) SKUMinted() {
	m.skusMinted.Inc()
}

// Published records a publish attempt; outcome is "ok", "timeout" or "error".
func (m *Metrics) Published(outcome string) {
	m.publishes.WithLabelValues(outcome).Inc()
}

// Middleware records request counts and latency labelled by the chi route
// pattern so path parameters do not explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
