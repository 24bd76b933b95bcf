// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the widget engine.
type Metrics struct {
	// Feed metrics
	FeedRefreshes   prometheus.Counter
	FeedFailures    prometheus.Counter
	TableCurrencies prometheus.Gauge

	// Conversion metrics
	ConversionsStarted prometheus.Counter
	Reversals          prometheus.Counter

	// Input metrics
	ValidationErrors *prometheus.CounterVec
}

// NewMetrics creates a Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "currency_swap"
	}

	return &Metrics{
		FeedRefreshes: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "refreshes_total",
			Help:      "Total number of successful price feed refreshes",
		}),
		FeedFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "failures_total",
			Help:      "Total number of failed price feed fetches",
		}),
		TableCurrencies: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "table_currencies",
			Help:      "Number of distinct currencies in the current price table",
		}),
		ConversionsStarted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "conversions_total",
			Help:      "Total number of conversion round trips started",
		}),
		Reversals: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "reversals_total",
			Help:      "Total number of currency swap reversals started",
		}),
		ValidationErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "input",
			Name:      "validation_errors_total",
			Help:      "Total number of flagged amount inputs by error kind",
		}, []string{"kind"}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordFeedRefresh records a successful refresh and the resulting
// table size.
func RecordFeedRefresh(currencies int) {
	DefaultMetrics.FeedRefreshes.Inc()
	DefaultMetrics.TableCurrencies.Set(float64(currencies))
}

// RecordFeedFailure increments the feed failure counter.
func RecordFeedFailure() {
	DefaultMetrics.FeedFailures.Inc()
}

// RecordConversion increments the conversions counter.
func RecordConversion() {
	DefaultMetrics.ConversionsStarted.Inc()
}

// RecordReversal increments the reversals counter.
func RecordReversal() {
	DefaultMetrics.Reversals.Inc()
}

// RecordValidationError records a flagged amount input.
func RecordValidationError(kind string) {
	DefaultMetrics.ValidationErrors.WithLabelValues(kind).Inc()
}
