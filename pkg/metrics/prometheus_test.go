package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func value(t *testing.T, m prometheus.Metric) float64 {
	t.Helper()
	var out dto.Metric
	require.NoError(t, m.Write(&out))
	switch {
	case out.Counter != nil:
		return out.GetCounter().GetValue()
	case out.Gauge != nil:
		return out.GetGauge().GetValue()
	}
	t.Fatalf("unsupported metric type")
	return 0
}

func TestRecorderCounters(t *testing.T) {
	r := New(prometheus.NewRegistry())

	r.RecordCycle("ok", 0.4)
	r.RecordCycle("ok", 0.2)
	r.RecordCycle("error", 1)
	r.RecordSkippedTick()
	r.RecordCacheLookup("news", "hit")
	r.RecordSnapshots(42)

	assert.Equal(t, 2.0, value(t, r.cycles.WithLabelValues("ok")))
	assert.Equal(t, 1.0, value(t, r.cycles.WithLabelValues("error")))
	assert.Equal(t, 1.0, value(t, r.skippedTicks))
	assert.Equal(t, 1.0, value(t, r.cacheLookups.WithLabelValues("news", "hit")))
	assert.Equal(t, 42.0, value(t, r.snapshots))
}

func TestRecorderSentimentSwitches(t *testing.T) {
	r := New(prometheus.NewRegistry())

	r.RecordSentiment("neutral")
	r.RecordSentiment("bearish_trap")

	assert.Equal(t, 0.0, value(t, r.sentiment.WithLabelValues("neutral")))
	assert.Equal(t, 1.0, value(t, r.sentiment.WithLabelValues("bearish_trap")))
}
