package sysmetrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neox5/metricbox/metric"
	"github.com/neox5/metricbox/registry"
)

func findDef(defs []metric.Definition, name string) *metric.Definition {
	for i := range defs {
		if defs[i].Name() == name {
			return &defs[i]
		}
	}
	return nil
}

func TestRegisterDeclaresGroups(t *testing.T) {
	t.Parallel()

	r := registry.New()
	require.NoError(t, Register(r.NewGroups()))

	assert.Equal(t, []string{"process", "runtime"}, r.GroupNames())
}

func TestRuntimeGroup(t *testing.T) {
	t.Parallel()

	r := registry.New()
	require.NoError(t, Register(r.NewGroups()))
	defs := r.Group("runtime")

	tests := []struct {
		name     string
		typ      metric.DataType
		typeName string
	}{
		{name: "goroutines", typ: metric.DataTypeGauge, typeName: "gauge"},
		{name: "cores", typ: metric.DataTypeGauge, typeName: "gauge"},
		{name: "heap_alloc_bytes", typ: metric.DataTypeDerive, typeName: "bytes"},
		{name: "heap_sys_bytes", typ: metric.DataTypeDerive, typeName: "bytes"},
		{name: "stack_inuse_bytes", typ: metric.DataTypeDerive, typeName: "bytes"},
		{name: "total_alloc_bytes", typ: metric.DataTypeDerive, typeName: "total_bytes"},
		{name: "gc_cycles", typ: metric.DataTypeCounter, typeName: "counter"},
		{name: "gc_cpu_fraction", typ: metric.DataTypeGauge, typeName: "gauge"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := findDef(defs, tt.name)
			require.NotNil(t, d)
			assert.Equal(t, tt.typ, d.Type())
			assert.Equal(t, tt.typeName, d.TypeName())
			assert.NotEmpty(t, d.Description())
		})
	}
}

func TestRuntimeReadings(t *testing.T) {
	t.Parallel()

	r := registry.New()
	require.NoError(t, Register(r.NewGroups()))
	defs := r.Group("runtime")

	goroutines := findDef(defs, "goroutines")
	require.NotNil(t, goroutines)
	assert.GreaterOrEqual(t, goroutines.Value().Float64(), 1.0)

	heap := findDef(defs, "heap_alloc_bytes")
	require.NotNil(t, heap)
	assert.Positive(t, heap.Value().Int64())

	frac := findDef(defs, "gc_cpu_fraction")
	require.NotNil(t, frac)
	assert.GreaterOrEqual(t, frac.Value().Float64(), 0.0)
	assert.Less(t, frac.Value().Float64(), 1.0)
}

func TestProcessGroup(t *testing.T) {
	t.Parallel()

	r := registry.New()
	require.NoError(t, Register(r.NewGroups()))
	defs := r.Group("process")

	for _, name := range []string{"cpu_percent", "cpu_utilization", "resident_memory_bytes", "threads"} {
		d := findDef(defs, name)
		require.NotNil(t, d, "missing %s", name)
		assert.GreaterOrEqual(t, d.Value().Float64(), 0.0)
	}
}

func TestGroupsCloseWithdrawsSystemMetrics(t *testing.T) {
	t.Parallel()

	r := registry.New()
	g := r.NewGroups()
	require.NoError(t, Register(g))
	require.NotEmpty(t, r.GroupNames())

	g.Close()
	assert.Empty(t, r.GroupNames())
}
