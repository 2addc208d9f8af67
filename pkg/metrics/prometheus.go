package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	providerCalls   *prometheus.CounterVec
	providerLatency *prometheus.HistogramVec
	cacheLookups    *prometheus.CounterVec
	recommendations *prometheus.CounterVec
	renders         *prometheus.CounterVec
}

// New creates a Prometheus recorder registered on reg, or on the default
// registerer when reg is nil.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Recorder{
		providerCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockboard_provider_calls_total",
				Help: "External provider calls by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		providerLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockboard_provider_duration_seconds",
				Help:    "Duration of external provider calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		cacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockboard_cache_lookups_total",
				Help: "Memoization cache lookups by operation and result",
			},
			[]string{"operation", "result"},
		),
		recommendations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockboard_recommendations_total",
				Help: "Recommendations produced by label",
			},
			[]string{"recommendation"},
		),
		renders: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockboard_renders_total",
				Help: "Dashboard renders by transport",
			},
			[]string{"transport"},
		),
	}
}

// RecordProviderCall records one provider call and its latency.
func (r *Recorder) RecordProviderCall(op, outcome string, seconds float64) {
	r.providerCalls.WithLabelValues(op, outcome).Inc()
	r.providerLatency.WithLabelValues(op).Observe(seconds)
}

// RecordCacheLookup records a cache hit or miss.
func (r *Recorder) RecordCacheLookup(op string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(op, result).Inc()
}

// RecordRecommendation counts a produced recommendation.
func (r *Recorder) RecordRecommendation(rec string) {
	r.recommendations.WithLabelValues(rec).Inc()
}

// RecordRender counts a dashboard render.
func (r *Recorder) RecordRender(transport string) {
	r.renders.WithLabelValues(transport).Inc()
}

// Nop discards every observation.
type Nop struct{}

func (Nop) RecordProviderCall(string, string, float64) {}
func (Nop) RecordCacheLookup(string, bool)             {}
func (Nop) RecordRecommendation(string)                {}
func (Nop) RecordRender(string)                        {}
