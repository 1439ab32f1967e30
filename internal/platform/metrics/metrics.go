// Package metrics expone los contadores Prometheus del servicio y de los jobs batch.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "safari"

// Metrics agrupa los collectors. Todos los métodos aceptan receiver nil
// para que los componentes funcionen sin métricas (tests, scripts).
type Metrics struct {
	registry *prometheus.Registry

	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	animalsCreated *prometheus.CounterVec
	mediaUploads   *prometheus.CounterVec
	normalizer     *prometheus.CounterVec
}

// New crea un registry propio (no el global) para poder instanciarlo varias veces en tests.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		animalsCreated: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "animals_created_total",
			Help:      "Animal records created, by source (api, import).",
		}, []string{"source"}),
		mediaUploads: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "media_uploads_total",
			Help:      "Media host uploads by kind and result.",
		}, []string{"kind", "result"}),
		normalizer: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_normalizer_entries_total",
			Help:      "Canonical entries processed by the catalog normalizer, by outcome.",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler sirve /metrics.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) AnimalCreated(source string) {
	if m == nil {
		return
	}
	m.animalsCreated.WithLabelValues(source).Inc()
}

func (m *Metrics) MediaUpload(kind string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.mediaUploads.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) NormalizerEntry(outcome string) {
	if m == nil {
		return
	}
	m.normalizer.WithLabelValues(outcome).Inc()
}
