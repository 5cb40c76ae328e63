package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsPrefix is the prefix used for all metrics
const MetricsPrefix = "cryptoliveshow_"

var (
	// CoingeckoRequestsTotal counts HTTP attempts by status (success, error, rate_limited).
	CoingeckoRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "coingecko_requests_total",
			Help: "Total number of HTTP requests to the Coingecko simple price endpoint",
		},
		[]string{"status"},
	)

	RetryCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "coingecko_retry_attempts_total",
			Help: "Total number of retried Coingecko requests",
		},
	)

	// RefreshCyclesTotal counts finished refresh cycles by outcome.
	RefreshCyclesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "refresh_cycles_total",
			Help: "Total number of refresh cycles by outcome",
		},
		[]string{"outcome"},
	)

	RefreshCycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricsPrefix + "refresh_cycle_duration_seconds",
			Help:    "Time taken by a refresh cycle including retries",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
		},
	)
)

// MetricsWriter records fetch and cycle metrics. It satisfies both the
// HTTP status hook of the Coingecko client and the orchestrator's cycle recorder.
type MetricsWriter struct{}

func NewMetricsWriter() *MetricsWriter {
	return &MetricsWriter{}
}

// OnRequest records an HTTP request with its status
func (mw *MetricsWriter) OnRequest(status string) {
	CoingeckoRequestsTotal.WithLabelValues(status).Inc()
}

// OnRetry records an HTTP retry attempt
func (mw *MetricsWriter) OnRetry() {
	RetryCounter.Inc()
}

func (mw *MetricsWriter) RecordCycle(outcome string, duration time.Duration) {
	RefreshCyclesTotal.WithLabelValues(outcome).Inc()
	RefreshCycleDuration.Observe(duration.Seconds())
}
