package observe

import "sync"

var (
	defaultMu       sync.RWMutex
	defaultObserver Observer = NewHistory(DefaultHistoryLimit)
)

// Default returns the process-wide observer. Stores constructed without an
// explicit observer report here. The initial default is a History bounded to
// DefaultHistoryLimit.
func Default() Observer {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultObserver
}

// SetDefault replaces the process-wide observer. Replacement is not
// retroactive: the new observer sees no events that fired before the swap,
// and stores that captured the previous default keep reporting to it.
// A nil observer resets the slot to NoOpObserver.
func SetDefault(observer Observer) {
	if observer == nil {
		observer = NoOpObserver{}
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultObserver = observer
}
