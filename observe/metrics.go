package observe

import "sync/atomic"

// MetricsSnapshot is a point-in-time copy of history counters.
type MetricsSnapshot struct {
	ActiveStores    int64
	ChangesObserved int64
	RecordsEvicted  int64
}

// Metrics tracks observation counters with atomic updates.
type Metrics struct {
	activeStores    atomic.Int64
	changesObserved atomic.Int64
	recordsEvicted  atomic.Int64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) RecordStore(delta int) {
	m.activeStores.Add(int64(delta))
}

func (m *Metrics) RecordChange() {
	m.changesObserved.Add(1)
}

func (m *Metrics) RecordEviction(count int) {
	m.recordsEvicted.Add(int64(count))
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		ActiveStores:    m.activeStores.Load(),
		ChangesObserved: m.changesObserved.Load(),
		RecordsEvicted:  m.recordsEvicted.Load(),
	}
}
