package replicator

import (
	"sync"
	"time"
)

// Metrics tracks invocation outcomes across the life of the process.
// Clients are held open between invocations for connection reuse, so the
// counters can span many events; they never persist past the process.
type Metrics struct {
	mu sync.Mutex

	succeeded      int64
	failed         int64
	failuresByKind map[ErrorKind]int64
	totalDuration  time.Duration
}

// MetricsSnapshot is a point-in-time copy of the collected metrics
type MetricsSnapshot struct {
	Succeeded      int64
	Failed         int64
	FailuresByKind map[ErrorKind]int64
	TotalDuration  time.Duration
}

// NewMetrics creates an empty metrics collector
func NewMetrics() *Metrics {
	return &Metrics{
		failuresByKind: make(map[ErrorKind]int64),
	}
}

// RecordSuccess counts one successful invocation
func (m *Metrics) RecordSuccess(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.succeeded++
	m.totalDuration += duration
}

// RecordFailure counts one failed invocation by classification
func (m *Metrics) RecordFailure(kind ErrorKind, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failed++
	m.failuresByKind[kind]++
	m.totalDuration += duration
}

// Snapshot returns a copy of the current counters
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	byKind := make(map[ErrorKind]int64, len(m.failuresByKind))
	for k, v := range m.failuresByKind {
		byKind[k] = v
	}

	return MetricsSnapshot{
		Succeeded:      m.succeeded,
		Failed:         m.failed,
		FailuresByKind: byKind,
		TotalDuration:  m.totalDuration,
	}
}
