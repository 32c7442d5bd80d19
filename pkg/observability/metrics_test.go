package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryMetrics_Counter(t *testing.T) {
	m := NewInMemoryMetrics()

	m.Counter("api.request", 1, T("method", "GET"))
	m.Counter("api.request", 2, T("method", "GET"))
	m.Counter("api.request", 5, T("method", "POST"))

	assert.Equal(t, int64(3), m.GetCounter("api.request", T("method", "GET")))
	assert.Equal(t, int64(5), m.GetCounter("api.request", T("method", "POST")))
	assert.Zero(t, m.GetCounter("api.request", T("method", "DELETE")))
}

func TestInMemoryMetrics_TagOrderIrrelevant(t *testing.T) {
	m := NewInMemoryMetrics()

	m.Counter("c", 1, T("a", "1"), T("b", "2"))
	assert.Equal(t, int64(1), m.GetCounter("c", T("b", "2"), T("a", "1")))
}

func TestInMemoryMetrics_GaugeAndTiming(t *testing.T) {
	m := NewInMemoryMetrics()

	m.Gauge("queue.depth", 4)
	m.Gauge("queue.depth", 7)
	assert.Equal(t, 7.0, m.GetGauge("queue.depth"))

	m.Timing("op", 10*time.Millisecond)
	m.Timing("op", 20*time.Millisecond)
	timings := m.GetTimings("op")
	require.Len(t, timings, 2)
	assert.Equal(t, 10*time.Millisecond, timings[0])
}

func TestInMemoryMetrics_Reset(t *testing.T) {
	m := NewInMemoryMetrics()
	m.Counter("c", 1)
	m.Gauge("g", 1)
	m.Timing("t", time.Second)

	m.Reset()

	assert.Zero(t, m.GetCounter("c"))
	assert.Zero(t, m.GetGauge("g"))
	assert.Empty(t, m.GetTimings("t"))
}

func TestNoopMetrics_DoesNothing(t *testing.T) {
	var m Metrics = NoopMetrics{}
	assert.NotPanics(t, func() {
		m.Counter("c", 1)
		m.Gauge("g", 1)
		m.Timing("t", time.Second)
	})
}
