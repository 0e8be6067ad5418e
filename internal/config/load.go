package config

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v4"
)

// Load reads, parses and validates a YAML configuration file. Defaults
// are applied during validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate applies defaults and checks the configuration.
func (c *Config) Validate() error {
	if c.Shard < 0 {
		return fmt.Errorf("shard cannot be negative")
	}
	if err := c.Workload.validate(); err != nil {
		return err
	}
	if c.Report.Enabled && c.Report.Interval <= 0 {
		c.Report.Interval = DefaultReportInterval
	}
	return nil
}

func (w *WorkloadConfig) validate() error {
	if w.Step <= 0 {
		w.Step = DefaultStepInterval
	}

	if len(w.Queues) == 0 {
		return fmt.Errorf("at least one queue must be defined")
	}

	seen := make(map[string]bool, len(w.Queues))
	for i := range w.Queues {
		q := &w.Queues[i]
		if q.Name == "" {
			return fmt.Errorf("queue at index %d: name cannot be empty", i)
		}
		if seen[q.Name] {
			return fmt.Errorf("duplicate queue name %q", q.Name)
		}
		seen[q.Name] = true

		if q.Capacity <= 0 {
			q.Capacity = DefaultCapacity
		}
		if q.BatchBytes <= 0 {
			q.BatchBytes = DefaultBatchBytes
		}
		if err := validateRate(q.Name, "arrivals", q.Arrivals); err != nil {
			return err
		}
		if err := validateRate(q.Name, "drain", q.Drain); err != nil {
			return err
		}
	}
	return nil
}

func validateRate(queue, field string, r RateConfig) error {
	if r.Min < 0 {
		return fmt.Errorf("queue %q: %s min cannot be negative", queue, field)
	}
	if r.Min > r.Max {
		return fmt.Errorf("queue %q: %s min cannot exceed max", queue, field)
	}
	return nil
}
