package runmetrics

import (
	"sync/atomic"

	"github.com/seqforge/trimwrap/pkg/plog"
)

// Metrics defines the interface for collecting and reporting run statistics.
type Metrics interface {
	AddCommandsRun(n int64)
	AddCommandsFailed(n int64)
	AddBytesDecompressed(n int64)
	AddBytesCompressed(n int64)
	Log()
}

// RunMetrics holds the atomic counters for tracking a trim run's progress.
// It is the concrete implementation of the Metrics interface. The byte
// counters are only fed by the native substitution engine; the shell engine
// cannot observe the bytes moving through its sub-processes.
type RunMetrics struct {
	CommandsRun       atomic.Int64
	CommandsFailed    atomic.Int64
	BytesDecompressed atomic.Int64
	BytesCompressed   atomic.Int64
}

func (m *RunMetrics) AddCommandsRun(n int64)       { m.CommandsRun.Add(n) }
func (m *RunMetrics) AddCommandsFailed(n int64)    { m.CommandsFailed.Add(n) }
func (m *RunMetrics) AddBytesDecompressed(n int64) { m.BytesDecompressed.Add(n) }
func (m *RunMetrics) AddBytesCompressed(n int64)   { m.BytesCompressed.Add(n) }

// Log prints a summary of the run.
func (m *RunMetrics) Log() {
	plog.Info("SUM",
		"commandsRun", m.CommandsRun.Load(),
		"commandsFailed", m.CommandsFailed.Load(),
		"bytesDecompressed", m.BytesDecompressed.Load(),
		"bytesCompressed", m.BytesCompressed.Load(),
	)
}

// NoopMetrics is an implementation of the Metrics interface that performs no operations.
// It can be used to disable metrics collection without changing the calling code.
type NoopMetrics struct{}

func (m *NoopMetrics) AddCommandsRun(n int64)       {}
func (m *NoopMetrics) AddCommandsFailed(n int64)    {}
func (m *NoopMetrics) AddBytesDecompressed(n int64) {}
func (m *NoopMetrics) AddBytesCompressed(n int64)   {}
func (m *NoopMetrics) Log()                         {}

// Statically assert that our types implement the interface.
var _ Metrics = (*RunMetrics)(nil)
var _ Metrics = (*NoopMetrics)(nil)
