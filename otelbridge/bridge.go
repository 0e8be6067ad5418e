// Package otelbridge registers metric definitions as OpenTelemetry
// observable instruments. The bridge stays in-process: readings happen in
// a single callback whenever the SDK collects, and what happens to the
// collected data is up to the reader the caller configured.
package otelbridge

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"

	"github.com/neox5/metricbox/metric"
	"github.com/neox5/metricbox/registry"
)

// Bridge holds the callback registration for a set of definitions.
//
// Instruments are created from the registry contents at build time;
// definitions registered afterwards are not picked up. Build the bridge
// after components have declared their metrics.
type Bridge struct {
	registration otelmetric.Registration
}

// instrument ties an observable to the definition it reads from.
type instrument struct {
	def     metric.Definition
	asInt   otelmetric.Int64Observable
	asFloat otelmetric.Float64Observable
	attrs   []attribute.KeyValue
}

// New creates observable instruments on the meter for every enabled
// definition in the registry and registers one callback reading them all.
//
// Gauges become float gauges. Counters and derives become cumulative
// instruments, derives the up-down kind since they may decrease.
// Absolutes become integer gauges, leaving interpretation to the backend.
func New(meter otelmetric.Meter, reg *registry.Registry) (*Bridge, error) {
	var instruments []instrument

	for _, e := range reg.List() {
		if !e.Def.Enabled() {
			continue
		}

		name := e.Group + "." + e.Def.Name()
		labels := e.Def.Labels()
		attrs := make([]attribute.KeyValue, 0, len(labels))
		for _, li := range labels {
			attrs = append(attrs, attribute.String(li.Key(), li.Value()))
		}

		inst := instrument{def: e.Def, attrs: attrs}

		switch e.Def.Type() {
		case metric.DataTypeGauge:
			gauge, err := meter.Float64ObservableGauge(
				name,
				otelmetric.WithDescription(e.Def.Description()),
			)
			if err != nil {
				return nil, fmt.Errorf("failed to create gauge %q: %w", name, err)
			}
			inst.asFloat = gauge

		case metric.DataTypeCounter:
			counter, err := meter.Int64ObservableCounter(
				name,
				otelmetric.WithDescription(e.Def.Description()),
			)
			if err != nil {
				return nil, fmt.Errorf("failed to create counter %q: %w", name, err)
			}
			inst.asInt = counter

		case metric.DataTypeDerive:
			counter, err := meter.Int64ObservableUpDownCounter(
				name,
				otelmetric.WithDescription(e.Def.Description()),
			)
			if err != nil {
				return nil, fmt.Errorf("failed to create up-down counter %q: %w", name, err)
			}
			inst.asInt = counter

		case metric.DataTypeAbsolute:
			gauge, err := meter.Int64ObservableGauge(
				name,
				otelmetric.WithDescription(e.Def.Description()),
			)
			if err != nil {
				return nil, fmt.Errorf("failed to create gauge %q: %w", name, err)
			}
			inst.asInt = gauge
		}

		instruments = append(instruments, inst)
		slog.Info("registered otel metric",
			"name", name,
			"type", e.Def.Type(),
			"attributes", len(attrs))
	}

	if len(instruments) == 0 {
		return &Bridge{}, nil
	}

	var observables []otelmetric.Observable
	for _, inst := range instruments {
		if inst.asInt != nil {
			observables = append(observables, inst.asInt)
		}
		if inst.asFloat != nil {
			observables = append(observables, inst.asFloat)
		}
	}

	registration, err := meter.RegisterCallback(
		func(ctx context.Context, observer otelmetric.Observer) error {
			for _, inst := range instruments {
				v := inst.def.Value()
				if inst.asInt != nil {
					observer.ObserveInt64(inst.asInt, v.Int64(),
						otelmetric.WithAttributes(inst.attrs...))
				}
				if inst.asFloat != nil {
					observer.ObserveFloat64(inst.asFloat, v.Float64(),
						otelmetric.WithAttributes(inst.attrs...))
				}
			}
			return nil
		},
		observables...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register callback: %w", err)
	}

	return &Bridge{registration: registration}, nil
}

// Close unregisters the callback; the instruments stop reporting.
func (b *Bridge) Close() error {
	if b.registration == nil {
		return nil
	}
	if err := b.registration.Unregister(); err != nil {
		return fmt.Errorf("failed to unregister callback: %w", err)
	}
	return nil
}
