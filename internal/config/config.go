package config

import (
	"fmt"
	"log/slog"
	"time"

	"go.yaml.in/yaml/v4"
)

const (
	// Workload defaults
	DefaultStepInterval = 250 * time.Millisecond
	DefaultCapacity     = 64
	DefaultBatchBytes   = 2048

	// Report defaults
	DefaultReportInterval = 5 * time.Second
)

// Config holds the complete application configuration.
type Config struct {
	Shard     int            `yaml:"shard"`
	Namespace string         `yaml:"namespace,omitempty"`
	Workload  WorkloadConfig `yaml:"workload"`
	Report    ReportConfig   `yaml:"report"`
	System    SystemConfig   `yaml:"system"`
}

// WorkloadConfig defines the simulated transmit queues.
type WorkloadConfig struct {
	Step   time.Duration `yaml:"step"`
	Queues []QueueConfig `yaml:"queues"`
}

// QueueConfig defines one simulated queue.
type QueueConfig struct {
	Name       string     `yaml:"name"`
	Capacity   int        `yaml:"capacity"`
	BatchBytes int        `yaml:"batch_bytes"`
	Arrivals   RateConfig `yaml:"arrivals"`
	Drain      RateConfig `yaml:"drain"`
}

// LogValue implements slog.LogValuer for structured logging
func (q QueueConfig) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("name", q.Name),
		slog.Int("capacity", q.Capacity),
		slog.Int("batch_bytes", q.BatchBytes),
		slog.String("arrivals", q.Arrivals.String()),
		slog.String("drain", q.Drain.String()),
	}
	return slog.GroupValue(attrs...)
}

// RateConfig defines how many batches move per step, drawn uniformly from
// [Min, Max].
type RateConfig struct {
	Min int
	Max int
}

// UnmarshalYAML handles both simple (4) and ranged (min/max) forms.
func (r *RateConfig) UnmarshalYAML(value *yaml.Node) error {
	// Try simple fixed-rate form first
	var fixed int
	if err := value.Decode(&fixed); err == nil {
		r.Min = fixed
		r.Max = fixed
		return nil
	}

	// Fall back to ranged form
	type rateConfig struct {
		Min int `yaml:"min"`
		Max int `yaml:"max"`
	}
	var ranged rateConfig
	if err := value.Decode(&ranged); err != nil {
		return err
	}
	r.Min = ranged.Min
	r.Max = ranged.Max
	return nil
}

func (r RateConfig) String() string {
	return fmt.Sprintf("[%d,%d]", r.Min, r.Max)
}

// ReportConfig controls the periodic snapshot log.
type ReportConfig struct {
	Enabled  bool
	Interval time.Duration
}

// UnmarshalYAML handles both simple (10s) and detailed (enabled/interval)
// forms. Configuring a report at all enables it unless the detailed form
// says otherwise.
func (r *ReportConfig) UnmarshalYAML(value *yaml.Node) error {
	// Try simple duration form first
	var simple time.Duration
	if err := value.Decode(&simple); err == nil {
		r.Enabled = true
		r.Interval = simple
		return nil
	}

	// Fall back to detailed form
	type reportConfig struct {
		Enabled  *bool         `yaml:"enabled"`
		Interval time.Duration `yaml:"interval"`
	}
	var detailed reportConfig
	if err := value.Decode(&detailed); err != nil {
		return err
	}
	r.Enabled = detailed.Enabled == nil || *detailed.Enabled
	r.Interval = detailed.Interval
	return nil
}

// SystemConfig controls the built-in runtime and process metric groups.
type SystemConfig struct {
	Enabled bool `yaml:"enabled"`
}
