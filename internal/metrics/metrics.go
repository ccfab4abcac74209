package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Request outcomes, matching the terminal states of a synchronizer request.
const (
	OutcomeCompleted = "completed"
	OutcomeCancelled = "cancelled"
	OutcomeFailed    = "failed"
)

// Recorder owns a private registry so tests and multiple instances never
// collide on the global one. A nil *Recorder records nothing.
type Recorder struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	resultTotal     prometheus.Gauge
	cacheLookups    *prometheus.CounterVec
}

// New registers the shelf collectors plus the Go runtime collectors.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shelf_search_requests_total",
				Help: "Shop search requests by outcome",
			},
			[]string{"outcome"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shelf_search_request_duration_seconds",
				Help:    "Duration of shop search requests",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"outcome"},
		),
		resultTotal: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "shelf_search_result_total",
				Help: "Total matches reported by the last applied response",
			},
		),
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shelf_cache_lookups_total",
				Help: "Response cache lookups by result",
			},
			[]string{"result"},
		),
	}
	r.registry.MustRegister(
		r.requestsTotal,
		r.requestDuration,
		r.resultTotal,
		r.cacheLookups,
		collectors.NewGoCollector(),
	)
	return r
}

// ObserveRequest records a finished request.
func (r *Recorder) ObserveRequest(outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.requestsTotal.WithLabelValues(outcome).Inc()
	r.requestDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// SetResultTotal records the total match count of the applied response.
func (r *Recorder) SetResultTotal(total int) {
	if r == nil {
		return
	}
	r.resultTotal.Set(float64(total))
}

// CacheLookup records a cache hit or miss.
func (r *Recorder) CacheLookup(hit bool) {
	if r == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(result).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
