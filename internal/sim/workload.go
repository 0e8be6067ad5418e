// Package sim runs a simulated transmit path. Each queue receives batches
// at one random rate and drains them at another, so the process has live,
// moving state for its metric definitions to expose.
package sim

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/neox5/simv/clock"
	"github.com/neox5/simv/source"
	"github.com/neox5/simv/value"

	"github.com/neox5/metricbox/internal/config"
	"github.com/neox5/metricbox/metric"
)

var queueOwner = metric.NewLabel("owner")

// Queue is one simulated transmit queue.
type Queue struct {
	name       string
	capacity   int64
	batchBytes uint64
	arrivals   value.Value[int]
	drain      value.Value[int]

	pending atomic.Int64
	sent    atomic.Uint64
	bytes   atomic.Uint64
	dropped atomic.Uint64
}

func newQueue(clk clock.Clock, cfg config.QueueConfig) *Queue {
	return &Queue{
		name:       cfg.Name,
		capacity:   int64(cfg.Capacity),
		batchBytes: uint64(cfg.BatchBytes),
		arrivals:   value.New(source.NewRandomIntSource(clk, cfg.Arrivals.Min, cfg.Arrivals.Max)),
		drain:      value.New(source.NewRandomIntSource(clk, cfg.Drain.Min, cfg.Drain.Max)),
	}
}

// step moves one round of batches through the queue using the current
// random rates.
func (q *Queue) step() {
	q.advance(int64(q.arrivals.Value()), int64(q.drain.Value()))
}

// advance applies one round of arrivals and drains. Batches beyond
// capacity are dropped; at most out batches leave the queue.
func (q *Queue) advance(in, out int64) {
	pending := q.pending.Load() + in
	if pending > q.capacity {
		q.dropped.Add(uint64(pending - q.capacity))
		pending = q.capacity
	}

	served := min(pending, out)
	pending -= served
	q.pending.Store(pending)

	q.sent.Add(uint64(served))
	q.bytes.Add(uint64(served) * q.batchBytes)
}

// declare registers the queue's metrics under the shared group.
func (q *Queue) declare(b metric.GroupsBuilder) {
	b.AddGroup("smp",
		metric.NewQueueLength("send_batch_queue_length", metric.AtomicInt64(&q.pending),
			metric.WithDescription("Number of batches waiting to be sent"),
			metric.WithLabels(queueOwner.Instance(q.name))),
		metric.NewTotalOperations("batches_sent", metric.AtomicUint64(&q.sent),
			metric.WithDescription("Batches handed to the transport"),
			metric.WithLabels(queueOwner.Instance(q.name))),
		metric.NewTotalBytes("bytes_sent", metric.AtomicUint64(&q.bytes),
			metric.WithDescription("Payload bytes handed to the transport"),
			metric.WithLabels(queueOwner.Instance(q.name))),
		metric.NewCounter("batches_dropped", metric.AtomicUint64(&q.dropped),
			metric.WithDescription("Batches rejected because the queue was full"),
			metric.WithLabels(queueOwner.Instance(q.name))),
		metric.NewGauge("capacity", metric.Ref(&q.capacity),
			metric.WithDescription("Maximum number of queued batches"),
			metric.WithLabels(queueOwner.Instance(q.name))),
	)
}

// Workload drives a set of queues on a fixed step interval. The random
// rates tick on their own simv clock.
type Workload struct {
	step   time.Duration
	clock  clock.Clock
	queues []*Queue
	wg     sync.WaitGroup
}

// New builds the workload from configuration.
func New(cfg config.WorkloadConfig) *Workload {
	clk := clock.NewPeriodicClock(cfg.Step)

	queues := make([]*Queue, len(cfg.Queues))
	for i, qc := range cfg.Queues {
		queues[i] = newQueue(clk, qc)
	}

	return &Workload{
		step:   cfg.Step,
		clock:  clk,
		queues: queues,
	}
}

// Register declares the metrics of every queue on the builder.
func (w *Workload) Register(b metric.GroupsBuilder) {
	for _, q := range w.queues {
		q.declare(b)
	}
}

// Run starts the rate clock and the stepping loop in a background
// goroutine. The loop stops when the context is cancelled.
func (w *Workload) Run(ctx context.Context) {
	w.clock.Start()

	w.wg.Go(func() {
		ticker := time.NewTicker(w.step)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				w.clock.Stop()
				slog.Info("workload shutdown complete")
				return
			case <-ticker.C:
				for _, q := range w.queues {
					q.step()
				}
			}
		}
	})
}

// Wait blocks until the stepping loop exits.
func (w *Workload) Wait() {
	w.wg.Wait()
}
