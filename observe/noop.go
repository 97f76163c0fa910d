package observe

// NoOpObserver discards all events with zero overhead.
type NoOpObserver struct{}

func (NoOpObserver) OnCreate(ref StoreRef)  {}
func (NoOpObserver) OnChange(change Change) {}
func (NoOpObserver) OnDispose(ref StoreRef) {}
