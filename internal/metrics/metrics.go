// Package metrics provides Prometheus metrics for the estimator service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for the service.
var Registry = prometheus.NewRegistry()

// factory registers metrics to Registry directly.
var factory = promauto.With(Registry)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// EstimatesTotal counts engine invocations.
var EstimatesTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "roi",
	Name:      "estimates_total",
	Help:      "Total number of ROI estimates computed",
})

// ComputeDurationSeconds tracks time spent in the calculation engine.
var ComputeDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "roi",
	Name:      "compute_duration_seconds",
	Help:      "Time taken to compute one estimate",
	Buckets:   []float64{0.000001, 0.000005, 0.00001, 0.00005, 0.0001, 0.0005, 0.001},
})

// AnnualizedBenefit records the most recent annualized benefit.
var AnnualizedBenefit = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "roi",
	Name:      "last_annualized_benefit_yen",
	Help:      "Annualized benefit of the most recent estimate",
})

// ChartRendersTotal counts rendered charts by output format.
var ChartRendersTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "chart",
	Name:      "renders_total",
	Help:      "Total chart renders by output format",
}, []string{"format"})

// ChartRenderDurationSeconds tracks time spent drawing and encoding a chart.
var ChartRenderDurationSeconds = factory.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "chart",
	Name:      "render_duration_seconds",
	Help:      "Time taken to render a chart",
	Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
}, []string{"format"})

// CacheRequestsTotal counts chart cache lookups by result (hit or miss).
var CacheRequestsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "chart",
	Name:      "cache_requests_total",
	Help:      "Chart cache lookups by result",
}, []string{"result"})

// RequestErrorsTotal counts failed API requests by operation.
var RequestErrorsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "http",
	Name:      "request_errors_total",
	Help:      "Failed API requests by operation",
}, []string{"op"})

// Cache result label values.
const (
	CacheHit  = "hit"
	CacheMiss = "miss"
)

// ObserveCache records a cache lookup.
func ObserveCache(hit bool) {
	if hit {
		CacheRequestsTotal.WithLabelValues(CacheHit).Inc()
		return
	}
	CacheRequestsTotal.WithLabelValues(CacheMiss).Inc()
}
