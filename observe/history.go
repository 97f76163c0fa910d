package observe

import "sync"

// DefaultHistoryLimit is the record cap used by NewHistory when no explicit
// limit is configured and by the process-wide default observer.
const DefaultHistoryLimit = 256

// History is an Observer that keeps a bounded FIFO of recent changes across
// every store that reports to it. When the limit is exceeded the oldest
// record is evicted first. A limit of zero disables recording entirely.
// All methods are safe for concurrent use.
type History struct {
	mu      sync.Mutex
	limit   int
	records []Change
	metrics *Metrics
}

// NewHistory creates a History bounded to limit records. Negative limits are
// treated as zero.
func NewHistory(limit int) *History {
	if limit < 0 {
		limit = 0
	}
	return &History{limit: limit, metrics: NewMetrics()}
}

func (h *History) OnCreate(ref StoreRef) {
	h.metrics.RecordStore(1)
}

func (h *History) OnChange(change Change) {
	h.metrics.RecordChange()

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.limit == 0 {
		return
	}
	h.records = append(h.records, change)
	if excess := len(h.records) - h.limit; excess > 0 {
		h.records = append(h.records[:0], h.records[excess:]...)
		h.metrics.RecordEviction(excess)
	}
}

func (h *History) OnDispose(ref StoreRef) {
	h.metrics.RecordStore(-1)
}

// SetLimit reconfigures the record cap. Shrinking below the current length
// evicts the oldest records immediately; zero drops all records and disables
// further recording until raised again.
func (h *History) SetLimit(limit int) {
	if limit < 0 {
		limit = 0
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.limit = limit
	if excess := len(h.records) - limit; excess > 0 {
		h.records = append(h.records[:0], h.records[excess:]...)
		h.metrics.RecordEviction(excess)
	}
}

// Limit returns the configured record cap.
func (h *History) Limit() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.limit
}

// Len returns the number of records currently held.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.records)
}

// Records returns a copy of the held records, oldest first.
func (h *History) Records() []Change {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Change, len(h.records))
	copy(out, h.records)
	return out
}

// Clear drops all held records without changing the limit.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = h.records[:0]
}

// Metrics returns a snapshot of the observation counters.
func (h *History) Metrics() MetricsSnapshot {
	return h.metrics.Snapshot()
}
