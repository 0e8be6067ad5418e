// Package sysmetrics declares metric groups for the Go runtime and the
// running process, so every program using the registry gets baseline
// resource metrics without writing its own probes.
package sysmetrics

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/neox5/metricbox/metric"
)

// sampleTTL bounds how often the expensive probes run. One collection
// cycle touches many definitions; they all share one refresh.
const sampleTTL = time.Second

// Register declares the "runtime" and "process" metric groups on the
// builder. It fails when the process handle for resource probing cannot
// be created.
func Register(b metric.GroupsBuilder) error {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return fmt.Errorf("failed to get process handle: %w", err)
	}
	s := &sampler{proc: proc}

	b.AddGroup("runtime",
		metric.NewGauge("goroutines",
			metric.Func(runtime.NumGoroutine),
			metric.WithDescription("Number of live goroutines")),
		metric.NewGauge("cores",
			metric.Func(func() int { return runtime.GOMAXPROCS(-1) }),
			metric.WithDescription("Schedulable processor count")),
		metric.NewCurrentBytes("heap_alloc_bytes",
			metric.Func(func() uint64 { return s.memStats().HeapAlloc }),
			metric.WithDescription("Bytes of allocated heap objects")),
		metric.NewCurrentBytes("heap_sys_bytes",
			metric.Func(func() uint64 { return s.memStats().HeapSys }),
			metric.WithDescription("Bytes of heap memory obtained from the OS")),
		metric.NewCurrentBytes("stack_inuse_bytes",
			metric.Func(func() uint64 { return s.memStats().StackInuse }),
			metric.WithDescription("Bytes in stack spans currently in use")),
		metric.NewTotalBytes("total_alloc_bytes",
			metric.Func(func() uint64 { return s.memStats().TotalAlloc }),
			metric.WithDescription("Cumulative bytes allocated on the heap")),
		metric.NewCounter("gc_cycles",
			metric.Func(func() uint64 { return uint64(s.memStats().NumGC) }),
			metric.WithDescription("Completed GC cycles")),
		metric.NewGauge("gc_cpu_fraction",
			metric.Func(func() float64 { return s.memStats().GCCPUFraction }),
			metric.WithDescription("Fraction of CPU time used by the GC")),
	)

	b.AddGroup("process",
		metric.NewGauge("cpu_percent",
			metric.Func(func() float64 { return s.procStats().cpu }),
			metric.WithDescription("Process CPU usage in percent of one core")),
		metric.NewGauge("cpu_utilization",
			metric.Func(func() float64 {
				maxCPU := float64(runtime.GOMAXPROCS(-1) * 100)
				if maxCPU == 0 {
					return 0
				}
				return s.procStats().cpu / maxCPU
			}),
			metric.WithDescription("Process CPU usage as a share of all cores")),
		metric.NewCurrentBytes("resident_memory_bytes",
			metric.Func(func() uint64 { return s.procStats().rss }),
			metric.WithDescription("Resident set size")),
		metric.NewGauge("threads",
			metric.Func(func() int32 { return s.procStats().threads }),
			metric.WithDescription("OS threads in the process")),
	)

	return nil
}

// sampler caches one round of probes so that reading a dozen definitions
// in the same collection costs one refresh, not a dozen.
type sampler struct {
	proc *process.Process

	mu      sync.Mutex
	taken   time.Time
	ms      runtime.MemStats
	cpu     float64
	rss     uint64
	threads int32
}

func (s *sampler) memStats() runtime.MemStats {
	s.refresh()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ms
}

type procSample struct {
	cpu     float64
	rss     uint64
	threads int32
}

func (s *sampler) procStats() procSample {
	s.refresh()
	s.mu.Lock()
	defer s.mu.Unlock()
	return procSample{cpu: s.cpu, rss: s.rss, threads: s.threads}
}

// refresh re-runs the probes when the cached sample is older than
// sampleTTL. Probe failures keep the previous reading.
func (s *sampler) refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if time.Since(s.taken) < sampleTTL {
		return
	}
	s.taken = time.Now()

	runtime.ReadMemStats(&s.ms)

	cpu, err := s.proc.CPUPercent()
	if err != nil {
		slog.Warn("failed to get CPU percent", "error", err)
	} else {
		s.cpu = cpu
	}

	mem, err := s.proc.MemoryInfo()
	if err != nil {
		slog.Warn("failed to get memory info", "error", err)
	} else {
		s.rss = mem.RSS
	}

	threads, err := s.proc.NumThreads()
	if err != nil {
		slog.Warn("failed to get thread count", "error", err)
	} else {
		s.threads = threads
	}
}
