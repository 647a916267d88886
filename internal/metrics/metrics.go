// internal/metrics/metrics.go
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	HTTPRequests        *prometheus.CounterVec
	GenerationRequests  *prometheus.CounterVec
	GenerationFallbacks *prometheus.CounterVec
	GenerationExhausted *prometheus.CounterVec
	GenerationDuration  *prometheus.HistogramVec
	WhispersPosted      prometheus.Counter
}

var (
	once   sync.Once
	global *Metrics
)

func Global() *Metrics {
	once.Do(func() {
		global = &Metrics{
			HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "sanctra",
				Name:      "http_requests_total",
				Help:      "Total HTTP requests by method and status",
			}, []string{"method", "status"}),
			GenerationRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "sanctra",
				Name:      "generation_requests_total",
				Help:      "Total AI generation requests that reached the provider chain",
			}, []string{"kind"}),
			GenerationFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "sanctra",
				Name:      "generation_fallbacks_total",
				Help:      "Provider attempts that fell through to the next tier",
			}, []string{"kind", "provider"}),
			GenerationExhausted: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "sanctra",
				Name:      "generation_exhausted_total",
				Help:      "Requests for which every provider in the chain declined",
			}, []string{"kind"}),
			GenerationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: "sanctra",
				Name:      "generation_duration_seconds",
				Help:      "Wall time of successful chain runs",
				Buckets:   []float64{1, 5, 10, 30, 60, 120, 240},
			}, []string{"kind"}),
			WhispersPosted: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "sanctra",
				Name:      "garden_whispers_total",
				Help:      "Total whispers posted to the Garden",
			}),
		}
		prometheus.MustRegister(
			global.HTTPRequests,
			global.GenerationRequests,
			global.GenerationFallbacks,
			global.GenerationExhausted,
			global.GenerationDuration,
			global.WhispersPosted,
		)
	})
	return global
}
