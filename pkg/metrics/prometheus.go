package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	cycles       *prometheus.CounterVec
	cycleSeconds prometheus.Histogram
	skippedTicks prometheus.Counter
	snapshots    prometheus.Gauge
	sentiment    *prometheus.GaugeVec
	cacheLookups *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	latency      *prometheus.HistogramVec

	lastSentiment string
}

// New creates a Prometheus metrics recorder registered on reg.
// A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Recorder{
		cycles: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fundpulse_cycles_total",
				Help: "Aggregation cycles by outcome",
			},
			[]string{"result"},
		),
		cycleSeconds: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "fundpulse_cycle_duration_seconds",
				Help:    "Duration of aggregation cycles in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
		),
		skippedTicks: f.NewCounter(
			prometheus.CounterOpts{
				Name: "fundpulse_skipped_ticks_total",
				Help: "Scheduler ticks skipped because a cycle was still running",
			},
		),
		snapshots: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "fundpulse_snapshots",
				Help: "Symbols in the latest published summary",
			},
		),
		sentiment: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fundpulse_sentiment",
				Help: "Set to 1 for the sentiment code of the latest summary",
			},
			[]string{"code"},
		),
		cacheLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fundpulse_cache_lookups_total",
				Help: "Cache lookups by cache and result",
			},
			[]string{"cache", "result"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fundpulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fundpulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordCycle records one finished aggregation cycle.
func (r *Recorder) RecordCycle(result string, seconds float64) {
	r.cycles.WithLabelValues(result).Inc()
	r.cycleSeconds.Observe(seconds)
}

func (r *Recorder) RecordSkippedTick() {
	r.skippedTicks.Inc()
}

func (r *Recorder) RecordSnapshots(n int) {
	r.snapshots.Set(float64(n))
}

// RecordSentiment flips the gauge from the previous code to the new one.
// Called from the single cycle goroutine only.
func (r *Recorder) RecordSentiment(code string) {
	if r.lastSentiment != "" && r.lastSentiment != code {
		r.sentiment.WithLabelValues(r.lastSentiment).Set(0)
	}
	r.sentiment.WithLabelValues(code).Set(1)
	r.lastSentiment = code
}

func (r *Recorder) RecordCacheLookup(cache, result string) {
	r.cacheLookups.WithLabelValues(cache, result).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
