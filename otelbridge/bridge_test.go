package otelbridge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/neox5/metricbox/metric"
	"github.com/neox5/metricbox/registry"
)

// newTestMeter creates a meter backed by a ManualReader so tests can
// collect and inspect the data the bridge observes.
func newTestMeter(t *testing.T) (otelmetric.Meter, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	return provider.Meter("test"), reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	return rm
}

// findMetric walks the collected payload and returns the first metric with
// the given name, or nil.
func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func TestBridgeInstrumentKinds(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	var depth float64 = 2.5
	var ops uint64 = 10
	var delta int64 = -3
	var raw uint64 = 77

	reg.NewGroups().AddGroup("smp",
		metric.NewGauge("queue_depth", metric.Ref(&depth)),
		metric.NewCounter("polls", metric.Ref(&ops)),
		metric.NewDerive("backlog_delta", metric.Ref(&delta)),
		metric.NewAbsolute("wall_sample", metric.Ref(&raw)))

	meter, reader := newTestMeter(t)
	b, err := New(meter, reg)
	require.NoError(t, err)
	defer func() { _ = b.Close() }()

	rm := collect(t, reader)

	t.Run("gauge", func(t *testing.T) {
		m := findMetric(rm, "smp.queue_depth")
		require.NotNil(t, m)
		g, ok := m.Data.(metricdata.Gauge[float64])
		require.True(t, ok, "expected Gauge[float64], got %T", m.Data)
		require.Len(t, g.DataPoints, 1)
		assert.Equal(t, 2.5, g.DataPoints[0].Value)
	})

	t.Run("counter", func(t *testing.T) {
		m := findMetric(rm, "smp.polls")
		require.NotNil(t, m)
		s, ok := m.Data.(metricdata.Sum[int64])
		require.True(t, ok, "expected Sum[int64], got %T", m.Data)
		assert.True(t, s.IsMonotonic)
		require.Len(t, s.DataPoints, 1)
		assert.Equal(t, int64(10), s.DataPoints[0].Value)
	})

	t.Run("derive", func(t *testing.T) {
		m := findMetric(rm, "smp.backlog_delta")
		require.NotNil(t, m)
		s, ok := m.Data.(metricdata.Sum[int64])
		require.True(t, ok, "expected Sum[int64], got %T", m.Data)
		assert.False(t, s.IsMonotonic)
		require.Len(t, s.DataPoints, 1)
		assert.Equal(t, int64(-3), s.DataPoints[0].Value)
	})

	t.Run("absolute", func(t *testing.T) {
		m := findMetric(rm, "smp.wall_sample")
		require.NotNil(t, m)
		g, ok := m.Data.(metricdata.Gauge[int64])
		require.True(t, ok, "expected Gauge[int64], got %T", m.Data)
		require.Len(t, g.DataPoints, 1)
		assert.Equal(t, int64(77), g.DataPoints[0].Value)
	})
}

func TestBridgeReadsLiveValues(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	var pending int64 = 4
	reg.NewGroups().AddGroup("smp",
		metric.NewQueueLength("send_batch_queue_length", metric.Ref(&pending)))

	meter, reader := newTestMeter(t)
	b, err := New(meter, reg)
	require.NoError(t, err)
	defer func() { _ = b.Close() }()

	rm := collect(t, reader)
	m := findMetric(rm, "smp.send_batch_queue_length")
	require.NotNil(t, m)
	assert.Equal(t, 4.0, m.Data.(metricdata.Gauge[float64]).DataPoints[0].Value)

	pending = 11
	rm = collect(t, reader)
	m = findMetric(rm, "smp.send_batch_queue_length")
	require.NotNil(t, m)
	assert.Equal(t, 11.0, m.Data.(metricdata.Gauge[float64]).DataPoints[0].Value)
}

func TestBridgeAttributes(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	var n int64
	owner := metric.NewLabel("owner")

	reg.NewGroups(registry.WithShard(2)).AddGroup("smp",
		metric.NewCounter("polls", metric.Ref(&n),
			metric.WithLabels(owner.Instance("net"))))

	meter, reader := newTestMeter(t)
	b, err := New(meter, reg)
	require.NoError(t, err)
	defer func() { _ = b.Close() }()

	rm := collect(t, reader)
	m := findMetric(rm, "smp.polls")
	require.NotNil(t, m)

	dps := m.Data.(metricdata.Sum[int64]).DataPoints
	require.Len(t, dps, 1)

	v, ok := dps[0].Attributes.Value(attribute.Key("owner"))
	require.True(t, ok)
	assert.Equal(t, "net", v.AsString())

	v, ok = dps[0].Attributes.Value(attribute.Key("shard"))
	require.True(t, ok)
	assert.Equal(t, "2", v.AsString())
}

func TestBridgeSkipsDisabled(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	var n int64
	reg.NewGroups().AddGroup("io",
		metric.NewCounter("reads", metric.Ref(&n)),
		metric.NewCounter("reads_debug", metric.Ref(&n),
			metric.WithEnabled(false)))

	meter, reader := newTestMeter(t)
	b, err := New(meter, reg)
	require.NoError(t, err)
	defer func() { _ = b.Close() }()

	rm := collect(t, reader)
	assert.NotNil(t, findMetric(rm, "io.reads"))
	assert.Nil(t, findMetric(rm, "io.reads_debug"))
}

func TestBridgeClose(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	var n int64
	reg.NewGroups().AddGroup("io",
		metric.NewCounter("reads", metric.Ref(&n)))

	meter, reader := newTestMeter(t)
	b, err := New(meter, reg)
	require.NoError(t, err)

	rm := collect(t, reader)
	require.NotNil(t, findMetric(rm, "io.reads"))

	require.NoError(t, b.Close())

	rm = collect(t, reader)
	m := findMetric(rm, "io.reads")
	if m != nil {
		s, ok := m.Data.(metricdata.Sum[int64])
		require.True(t, ok)
		assert.Empty(t, s.DataPoints)
	}
}

func TestBridgeEmptyRegistry(t *testing.T) {
	t.Parallel()

	meter, reader := newTestMeter(t)
	b, err := New(meter, registry.New())
	require.NoError(t, err)

	rm := collect(t, reader)
	assert.Empty(t, rm.ScopeMetrics)
	assert.NoError(t, b.Close())
}
