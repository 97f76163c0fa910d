package observe

// MultiObserver fans out events to multiple observers in registration order.
type MultiObserver struct {
	observers []Observer
}

// NewMultiObserver creates a MultiObserver that forwards events to all
// non-nil observers.
func NewMultiObserver(observers ...Observer) *MultiObserver {
	filtered := make([]Observer, 0, len(observers))
	for _, obs := range observers {
		if obs != nil {
			filtered = append(filtered, obs)
		}
	}
	return &MultiObserver{observers: filtered}
}

func (m *MultiObserver) OnCreate(ref StoreRef) {
	for _, obs := range m.observers {
		obs.OnCreate(ref)
	}
}

func (m *MultiObserver) OnChange(change Change) {
	for _, obs := range m.observers {
		obs.OnChange(change)
	}
}

func (m *MultiObserver) OnDispose(ref StoreRef) {
	for _, obs := range m.observers {
		obs.OnDispose(ref)
	}
}
