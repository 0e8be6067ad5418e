/*
Package metric declares named, labeled, typed measurements whose current
value is produced on demand by a bound source.

A Definition ties a metric name to a source of readings: either a borrowed
reference to live state (Ref, AtomicInt64, AtomicUint64) or an owned
zero-argument function (Func). Nothing is sampled or stored at declaration
time; whoever consumes the definition later invokes it to obtain a fresh
Value. This keeps declaring a metric free of bookkeeping on the hot path:
a component updates its own counters and queue depths as plain fields, and
readings happen only when an export adapter asks for them.

Definitions are created through the factory functions NewGauge, NewDerive,
NewCounter and NewAbsolute, which fix the value semantics, or through the
convenience factories NewTotalBytes, NewCurrentBytes, NewQueueLength and
NewTotalOperations, which additionally set a conventional type name.
Options attach a description, labels, an instance id, or disable the
definition.

A component typically declares its metrics once, next to the state being
measured, and hands them to a registrar through a GroupsBuilder:

	var queueOwner = metric.NewLabel("owner")

	func (q *queue) setupMetrics(reg *registry.Registry) {
		q.metrics = reg.NewGroups(registry.WithShard(q.shard))
		q.metrics.AddGroup("smp",
			metric.NewQueueLength("send_batch_queue_length", metric.Ref(&q.pending),
				metric.WithDescription("Number of batches waiting to be sent"),
				metric.WithLabels(queueOwner.Instance(q.owner))))
	}

The definitions stay valid for as long as the referenced state does;
tearing the component down closes the groups handle, which withdraws its
definitions from the registrar.
*/
package metric
