// Package app wires the application components together.
package app

import (
	"fmt"
	"log/slog"

	"github.com/neox5/metricbox/internal/config"
	"github.com/neox5/metricbox/internal/report"
	"github.com/neox5/metricbox/internal/sim"
	"github.com/neox5/metricbox/registry"
	"github.com/neox5/metricbox/sysmetrics"
)

// App holds initialized application components.
type App struct {
	Config   *config.Config
	Registry *registry.Registry
	Workload *sim.Workload
	Reporter *report.Reporter
}

// New initializes the application from loaded configuration.
func New(cfg *config.Config) (*App, error) {
	reg := registry.New()

	// Create workload and register its metrics
	workload := sim.New(cfg.Workload)
	workload.Register(reg.NewGroups(registry.WithShard(cfg.Shard)))

	for _, q := range cfg.Workload.Queues {
		slog.Info("queue configured", "queue", q)
	}

	// Register built-in system metric groups if enabled
	if cfg.System.Enabled {
		if err := sysmetrics.Register(reg.NewGroups(registry.WithShard(cfg.Shard))); err != nil {
			return nil, fmt.Errorf("failed to register system metrics: %w", err)
		}
	}

	var reporter *report.Reporter
	if cfg.Report.Enabled {
		reporter = report.New(cfg.Report.Interval, reg, slog.Default())
	}

	return &App{
		Config:   cfg,
		Registry: reg,
		Workload: workload,
		Reporter: reporter,
	}, nil
}
