// Package prombridge exposes registered metric definitions to the
// Prometheus client library. The bridge stays in-process: it translates
// definitions into const metrics for whatever consumer drives the
// prometheus.Gatherer, and leaves serving or pushing them to the caller.
package prombridge

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/neox5/metricbox/metric"
	"github.com/neox5/metricbox/registry"
)

// Collector reads the registry on every collection and reports each
// enabled definition as a const metric. It is an unchecked collector:
// definitions may appear and disappear between collections as components
// register and close their groups.
type Collector struct {
	reg       *registry.Registry
	namespace string
}

var _ prometheus.Collector = (*Collector)(nil)

// Option adjusts a Collector.
type Option func(*Collector)

// WithNamespace prefixes every metric name with the given namespace.
func WithNamespace(ns string) Option {
	return func(c *Collector) { c.namespace = ns }
}

// NewCollector creates a collector reading from the given registry.
func NewCollector(reg *registry.Registry, opts ...Option) *Collector {
	c := &Collector{reg: reg}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewRegistry creates a Prometheus registry with a collector for reg
// already registered.
func NewRegistry(reg *registry.Registry, opts ...Option) *prometheus.Registry {
	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(NewCollector(reg, opts...))
	return promRegistry
}

// Describe sends no descriptors; the set of metrics is not fixed, so the
// collector is registered as unchecked.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {}

// Collect reads every enabled definition and sends its current value.
// This is called on each collection.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	entries := c.reg.List()
	slog.Debug("prometheus collect", "metrics", len(entries))

	for _, e := range entries {
		if !e.Def.Enabled() {
			continue
		}

		labels := e.Def.Labels()
		labelNames := make([]string, len(labels))
		labelValues := make([]string, len(labels))
		for i, li := range labels {
			labelNames[i] = li.Key()
			labelValues[i] = li.Value()
		}

		desc := prometheus.NewDesc(
			prometheus.BuildFQName(c.namespace, e.Group, e.Def.Name()),
			e.Def.Description(),
			labelNames,
			nil,
		)

		m, err := prometheus.NewConstMetric(
			desc,
			valueType(e.Def.Type()),
			e.Def.Value().Float64(),
			labelValues...,
		)
		if err != nil {
			continue
		}

		ch <- m
	}
}

// valueType maps a data type to how Prometheus should treat the sample.
// Derives count as counters; they are cumulative even though they may
// decrease. Absolutes carry no rate semantics and go out untyped.
func valueType(t metric.DataType) prometheus.ValueType {
	switch t {
	case metric.DataTypeGauge:
		return prometheus.GaugeValue
	case metric.DataTypeCounter, metric.DataTypeDerive:
		return prometheus.CounterValue
	default:
		return prometheus.UntypedValue
	}
}
