// Package report periodically logs a snapshot of the registered metrics,
// one line per group.
package report

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/neox5/metricbox/metric"
	"github.com/neox5/metricbox/registry"
)

// Reporter logs registry snapshots on a fixed interval.
type Reporter struct {
	interval time.Duration
	reg      *registry.Registry
	logger   *slog.Logger
	wg       sync.WaitGroup
}

// New creates a reporter. A nil logger falls back to slog.Default.
func New(interval time.Duration, reg *registry.Registry, logger *slog.Logger) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{
		interval: interval,
		reg:      reg,
		logger:   logger,
	}
}

// Run starts the reporting loop in a background goroutine. Blocks until
// context is cancelled.
func (r *Reporter) Run(ctx context.Context) {
	r.wg.Go(func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		// Immediate first report
		r.report()

		for {
			select {
			case <-ctx.Done():
				r.logger.Info("reporter shutdown complete")
				return
			case <-ticker.C:
				r.report()
			}
		}
	})
}

// Wait blocks until the reporter goroutine exits.
func (r *Reporter) Wait() {
	r.wg.Wait()
}

// report logs one line per metric group with the current readings.
func (r *Reporter) report() {
	samples := r.reg.Snapshot()

	byGroup := make(map[string][]slog.Attr)
	var order []string
	for _, s := range samples {
		if _, ok := byGroup[s.Group]; !ok {
			order = append(order, s.Group)
		}
		byGroup[s.Group] = append(byGroup[s.Group], sampleAttr(s))
	}

	for _, group := range order {
		r.logger.LogAttrs(
			context.Background(),
			slog.LevelInfo,
			group,
			byGroup[group]...,
		)
	}
}

// sampleAttr renders one reading as a slog attribute, keyed by metric
// name plus labels.
func sampleAttr(s registry.Sample) slog.Attr {
	key := s.Name
	if len(s.Labels) > 0 {
		parts := make([]string, len(s.Labels))
		for i, li := range s.Labels {
			parts[i] = li.String()
		}
		key += "{" + strings.Join(parts, ",") + "}"
	}

	switch s.Value.Type() {
	case metric.DataTypeGauge:
		return slog.Float64(key, s.Value.Float64())
	case metric.DataTypeDerive:
		return slog.Int64(key, s.Value.Int64())
	default:
		return slog.Uint64(key, s.Value.Uint64())
	}
}
