package report

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neox5/metricbox/metric"
	"github.com/neox5/metricbox/registry"
)

// syncBuffer guards the log buffer; the reporter goroutine writes while
// the test reads.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestLogger() (*slog.Logger, *syncBuffer) {
	buf := &syncBuffer{}
	return slog.New(slog.NewTextHandler(buf, nil)), buf
}

func TestReportLogsGroupLines(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	var pending int64 = 4
	var hits uint64 = 9
	owner := metric.NewLabel("owner")

	reg.NewGroups(registry.WithShard(0)).AddGroup("smp",
		metric.NewQueueLength("send_batch_queue_length", metric.Ref(&pending),
			metric.WithLabels(owner.Instance("net"))))
	reg.NewGroups().AddGroup("cache",
		metric.NewCounter("hits", metric.Ref(&hits)))

	logger, buf := newTestLogger()
	r := New(time.Second, reg, logger)
	r.report()

	out := buf.String()
	assert.Contains(t, out, "msg=smp")
	assert.Contains(t, out, "msg=cache")
	assert.Contains(t, out, `send_batch_queue_length{owner=net,shard=0}`)
	assert.Contains(t, out, "=4")
	assert.Contains(t, out, "hits=9")
}

func TestReportSkipsDisabled(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	var n int64
	reg.NewGroups().AddGroup("io",
		metric.NewCounter("reads", metric.Ref(&n)),
		metric.NewCounter("reads_debug", metric.Ref(&n),
			metric.WithEnabled(false)))

	logger, buf := newTestLogger()
	New(time.Second, reg, logger).report()

	out := buf.String()
	assert.Contains(t, out, "reads=")
	assert.NotContains(t, out, "reads_debug")
}

func TestReporterRunReportsAndStops(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	var n uint64 = 1
	reg.NewGroups().AddGroup("io",
		metric.NewCounter("reads", metric.Ref(&n)))

	logger, buf := newTestLogger()
	r := New(10*time.Millisecond, reg, logger)

	ctx, cancel := context.WithCancel(context.Background())
	r.Run(ctx)

	require.Eventually(t, func() bool {
		return len(buf.String()) > 0
	}, time.Second, 5*time.Millisecond)

	cancel()
	r.Wait()

	out := buf.String()
	assert.Contains(t, out, "msg=io")
	assert.Contains(t, out, "reporter shutdown complete")
}
