package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	UpstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fundpulse",
			Subsystem: "upstream",
			Name:      "latency_seconds",
			Help:      "Latency of upstream provider calls",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"provider", "endpoint"},
	)

	UpstreamErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fundpulse",
			Subsystem: "upstream",
			Name:      "errors_total",
			Help:      "Failed upstream provider calls",
		},
		[]string{"provider", "endpoint"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(UpstreamLatency, UpstreamErrors)
	})
}

// ObserveCall records one upstream call. Use it as
// `defer metrics.ObserveCall("binance", "ticker", time.Now(), &err)`.
func ObserveCall(provider, endpoint string, start time.Time, errp *error) {
	UpstreamLatency.WithLabelValues(provider, endpoint).Observe(time.Since(start).Seconds())
	if errp != nil && *errp != nil {
		UpstreamErrors.WithLabelValues(provider, endpoint).Inc()
	}
}
