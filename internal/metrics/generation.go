package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	GenerationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "quickai",
			Name:      "generations_total",
			Help:      "Creation requests by type and outcome",
		},
		[]string{"type", "status"}, // status: success / quota / premium / rate_limited / external / persistence / invalid
	)

	GenerationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "quickai",
			Name:      "generation_duration_seconds",
			Help:      "External call duration including retries",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 40},
		},
		[]string{"type"},
	)

	RetriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "quickai",
			Name:      "retries_total",
			Help:      "Rate-limited external calls that were retried",
		},
		[]string{"type"},
	)

	FreeUsageRecordedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "quickai",
			Name:      "free_usage_recorded_total",
			Help:      "Free-tier usage increments written to the store",
		},
	)
)

func init() {
	prometheus.MustRegister(GenerationsTotal)
	prometheus.MustRegister(GenerationDuration)
	prometheus.MustRegister(RetriesTotal)
	prometheus.MustRegister(FreeUsageRecordedTotal)
}
