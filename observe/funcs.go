package observe

// Funcs adapts plain functions into an Observer. Nil fields are no-ops,
// so callers only fill in the hooks they care about.
type Funcs struct {
	Create  func(ref StoreRef)
	Change  func(change Change)
	Dispose func(ref StoreRef)
}

func (f Funcs) OnCreate(ref StoreRef) {
	if f.Create != nil {
		f.Create(ref)
	}
}

func (f Funcs) OnChange(change Change) {
	if f.Change != nil {
		f.Change(change)
	}
}

func (f Funcs) OnDispose(ref StoreRef) {
	if f.Dispose != nil {
		f.Dispose(ref)
	}
}
