package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/luma-ui/statekit/observe"
	"github.com/luma-ui/statekit/store"
)

type counterState struct {
	Count int
	Name  string
}

type captureObserver struct {
	creates  []observe.StoreRef
	changes  []observe.Change
	disposes []observe.StoreRef
}

func (c *captureObserver) OnCreate(ref observe.StoreRef)  { c.creates = append(c.creates, ref) }
func (c *captureObserver) OnChange(ch observe.Change)     { c.changes = append(c.changes, ch) }
func (c *captureObserver) OnDispose(ref observe.StoreRef) { c.disposes = append(c.disposes, ref) }

func TestNew_SeedsPrimaryState(t *testing.T) {
	obs := &captureObserver{}
	s, _ := store.New("counter", counterState{Count: 7}, store.WithObserver[counterState](obs))

	if got := s.State().Count; got != 7 {
		t.Errorf("State().Count = %d, want 7", got)
	}
	if len(obs.creates) != 1 {
		t.Fatalf("OnCreate fired %d times, want 1", len(obs.creates))
	}
	if obs.creates[0].Name != "counter" {
		t.Errorf("OnCreate ref name = %q, want %q", obs.creates[0].Name, "counter")
	}
	if obs.creates[0].ID == "" {
		t.Error("OnCreate ref ID is empty")
	}
}

func TestWriter_SetState_NotifiesInOrder(t *testing.T) {
	obs := &captureObserver{}
	var order []string
	s, w := store.New("counter", counterState{},
		store.WithObserver[counterState](observe.NewMultiObserver(obs, observe.Funcs{
			Change: func(observe.Change) { order = append(order, "observer") },
		})),
		store.WithChangeHook[counterState](func(prev, next any) { order = append(order, "hook") }),
	)
	s.Subscribe(func(observe.Change) { order = append(order, "subscriber") })

	w.SetState(counterState{Count: 1})

	if len(order) != 3 || order[0] != "hook" || order[1] != "observer" || order[2] != "subscriber" {
		t.Errorf("notification order = %v, want [hook observer subscriber]", order)
	}
	if len(obs.changes) != 1 {
		t.Fatalf("observer saw %d changes, want 1", len(obs.changes))
	}
	change := obs.changes[0]
	if prev, ok := change.Previous.(counterState); !ok || prev.Count != 0 {
		t.Errorf("change.Previous = %#v, want zero counterState", change.Previous)
	}
	if next, ok := change.Next.(counterState); !ok || next.Count != 1 {
		t.Errorf("change.Next = %#v, want Count 1", change.Next)
	}
	if change.Kind != s.PrimaryKind() {
		t.Errorf("change.Kind = %q, want primary kind %q", change.Kind, s.PrimaryKind())
	}
}

func TestWriter_EqualWriteIsNoOp(t *testing.T) {
	tests := []struct {
		name  string
		write func(w *store.Writer[counterState])
	}{
		{
			name:  "identical value via SetState",
			write: func(w *store.Writer[counterState]) { w.SetState(counterState{Count: 3, Name: "a"}) },
		},
		{
			name: "identical value via Update",
			write: func(w *store.Writer[counterState]) {
				w.Update(func(s counterState) counterState { return s })
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := &captureObserver{}
			hooks := 0
			s, w := store.New("counter", counterState{Count: 3, Name: "a"},
				store.WithObserver[counterState](obs),
				store.WithChangeHook[counterState](func(prev, next any) { hooks++ }),
			)
			notified := 0
			s.Subscribe(func(observe.Change) { notified++ })

			tt.write(w)

			if len(obs.changes) != 0 {
				t.Errorf("observer saw %d changes, want 0", len(obs.changes))
			}
			if hooks != 0 {
				t.Errorf("change hook fired %d times, want 0", hooks)
			}
			if notified != 0 {
				t.Errorf("subscriber notified %d times, want 0", notified)
			}
		})
	}
}

func TestWriter_CustomEquality(t *testing.T) {
	// Equality by Count only: a write changing just the Name is a no-op.
	s, w := store.New("counter", counterState{Count: 1, Name: "a"},
		store.WithObserver[counterState](observe.NoOpObserver{}),
		store.WithStateEquals[counterState](func(a, b counterState) bool { return a.Count == b.Count }),
	)
	notified := 0
	s.Subscribe(func(observe.Change) { notified++ })

	w.SetState(counterState{Count: 1, Name: "b"})
	if notified != 0 {
		t.Fatalf("name-only write notified %d times, want 0", notified)
	}

	w.SetState(counterState{Count: 2, Name: "b"})
	if notified != 1 {
		t.Fatalf("count write notified %d times, want 1", notified)
	}
}

func TestSecondaryKind_ReadBeforeWrite(t *testing.T) {
	session := store.DefineKind[string]("session")
	s, w := store.New("counter", counterState{}, store.WithObserver[counterState](observe.NoOpObserver{}))

	if _, ok := store.Lookup(s, session); ok {
		t.Error("Lookup reported a value before the first write")
	}

	_, err := store.Get(s, session)
	var notInit *store.NotInitializedError
	if !errors.As(err, &notInit) {
		t.Fatalf("Get error = %v, want *NotInitializedError", err)
	}
	if notInit.Kind != "session" || notInit.Store != "counter" {
		t.Errorf("error names kind %q store %q, want session/counter", notInit.Kind, notInit.Store)
	}

	store.Put(w, session, "abc")

	got, err := store.Get(s, session)
	if err != nil {
		t.Fatalf("Get after write: %v", err)
	}
	if got != "abc" {
		t.Errorf("Get = %q, want %q", got, "abc")
	}
	if v, ok := store.Lookup(s, session); !ok || v != "abc" {
		t.Errorf("Lookup = (%q, %t), want (abc, true)", v, ok)
	}
}

type signal interface {
	Level() int
}

type pulse struct {
	Strength int
}

func (p pulse) Level() int { return p.Strength }

func TestPut_PrimaryAssignableValueTargetsPrimaryKind(t *testing.T) {
	pulses := store.DefineKind[pulse]("pulses")
	s, w := store.New[signal]("signals", pulse{Strength: 1}, store.WithObserver[signal](observe.NoOpObserver{}))

	store.Put(w, pulses, pulse{Strength: 9})

	if got := s.State().Level(); got != 9 {
		t.Errorf("primary state level = %d, want 9", got)
	}
	if _, ok := store.Lookup(s, pulses); ok {
		t.Error("explicit kind slot was seeded; write should have targeted the primary kind")
	}
}

func TestStore_Dispose(t *testing.T) {
	obs := &captureObserver{}
	s, w := store.New("counter", counterState{}, store.WithObserver[counterState](obs))
	notified := 0
	s.Subscribe(func(observe.Change) { notified++ })

	s.Dispose()
	s.Dispose()

	if len(obs.disposes) != 1 {
		t.Errorf("OnDispose fired %d times, want 1", len(obs.disposes))
	}
	if !s.Disposed() {
		t.Error("Disposed() = false after Dispose")
	}

	w.SetState(counterState{Count: 5})
	if notified != 0 {
		t.Errorf("write after dispose notified %d times, want 0", notified)
	}
	if got := s.State().Count; got != 0 {
		t.Errorf("write after dispose mutated state to %d", got)
	}

	s.Subscribe(func(observe.Change) { notified++ })
	w.SetState(counterState{Count: 6})
	if notified != 0 {
		t.Error("subscription after dispose received events")
	}
}

func TestSubscribe_CancelStopsDelivery(t *testing.T) {
	s, w := store.New("counter", counterState{}, store.WithObserver[counterState](observe.NoOpObserver{}))
	first := 0
	second := 0
	cancel := s.Subscribe(func(observe.Change) { first++ })
	s.Subscribe(func(observe.Change) { second++ })

	w.SetState(counterState{Count: 1})
	cancel()
	cancel()
	w.SetState(counterState{Count: 2})

	if first != 1 {
		t.Errorf("canceled subscriber saw %d changes, want 1", first)
	}
	if second != 2 {
		t.Errorf("remaining subscriber saw %d changes, want 2", second)
	}
}

func TestWatch_DeliversChangesAndClosesOnDispose(t *testing.T) {
	s, w := store.New("counter", counterState{}, store.WithObserver[counterState](observe.NoOpObserver{}))
	feed := s.Watch(context.Background(), 4)

	w.SetState(counterState{Count: 1})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	change, err := feed.Receive(ctx)
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if next := change.Next.(counterState); next.Count != 1 {
		t.Errorf("feed change Next.Count = %d, want 1", next.Count)
	}

	s.Dispose()
	if !feed.IsClosed() {
		t.Error("feed still open after store dispose")
	}
}

func TestDefaultObserver_ReceivesChanges(t *testing.T) {
	history := observe.NewHistory(8)
	prev := observe.Default()
	observe.SetDefault(history)
	defer observe.SetDefault(prev)

	_, w := store.New("counter", counterState{})
	w.SetState(counterState{Count: 1})

	if got := history.Len(); got != 1 {
		t.Errorf("default history holds %d records, want 1", got)
	}
}
