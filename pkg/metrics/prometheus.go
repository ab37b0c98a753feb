package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	CyclesTotal       prometheus.Counter
	OffersFound       prometheus.Counter
	NotificationsSent prometheus.Counter
	CycleDuration     prometheus.Histogram
	ErrorsCount       *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		CyclesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_cycles_total",
			Help:      "The total number of completed search cycles",
		}),
		OffersFound: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "offers_found_total",
			Help:      "The total number of flight offers found",
		}),
		NotificationsSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_sent_total",
			Help:      "The total number of messages posted to Telegram",
		}),
		CycleDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_cycle_duration_seconds",
			Help:      "Time taken to run one search cycle",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
