package watch_test

import (
	"testing"

	"github.com/luma-ui/statekit/observe"
	"github.com/luma-ui/statekit/store"
	"github.com/luma-ui/statekit/watch"
)

type profileState struct {
	Count int
	Name  string
}

func newProfileStore(t *testing.T) (*store.Store[profileState], *store.Writer[profileState]) {
	t.Helper()
	return store.New("profile", profileState{}, store.WithObserver[profileState](observe.NoOpObserver{}))
}

func TestOnChange_FiresWithPreviousAndNext(t *testing.T) {
	s, w := newProfileStore(t)
	var got [][2]int
	watch.OnChange(s, func(prev, next profileState) {
		got = append(got, [2]int{prev.Count, next.Count})
	})

	w.SetState(profileState{Count: 1})
	w.SetState(profileState{Count: 2})

	if len(got) != 2 || got[0] != [2]int{0, 1} || got[1] != [2]int{1, 2} {
		t.Errorf("observed transitions %v, want [[0 1] [1 2]]", got)
	}
}

func TestOnChange_BuildFilterGatesRebuilds(t *testing.T) {
	s, w := newProfileStore(t)
	rebuilds := 0
	watch.OnChange(s, func(prev, next profileState) { rebuilds++ },
		watch.WithWhen(func(prev, next profileState) bool { return next.Count > prev.Count }),
	)

	w.SetState(profileState{Count: 2})
	w.SetState(profileState{Count: 1}) // decrease: filtered out
	w.SetState(profileState{Count: 5})

	if rebuilds != 2 {
		t.Errorf("rebuilds = %d, want 2", rebuilds)
	}
}

func TestListen_IndependentFromBuildFilter(t *testing.T) {
	s, w := newProfileStore(t)
	rebuilds := 0
	effects := 0

	watch.OnChange(s, func(prev, next profileState) { rebuilds++ },
		watch.WithWhen(func(prev, next profileState) bool { return prev.Name != next.Name }),
	)
	watch.Listen(s, func(next profileState) { effects++ },
		watch.WithWhen(func(prev, next profileState) bool { return next.Count >= 10 }),
	)

	w.SetState(profileState{Count: 10, Name: ""})  // effect only
	w.SetState(profileState{Count: 10, Name: "a"}) // rebuild and effect
	w.SetState(profileState{Count: 3, Name: "a"})  // neither
	w.SetState(profileState{Count: 3, Name: "b"})  // rebuild only

	if rebuilds != 2 {
		t.Errorf("rebuilds = %d, want 2", rebuilds)
	}
	if effects != 2 {
		t.Errorf("side effects = %d, want 2", effects)
	}
}

func TestOnKind_SeedWriteHasZeroPrevious(t *testing.T) {
	session := store.DefineKind[string]("session")
	s, w := newProfileStore(t)
	var prevs, nexts []string
	watch.OnKind(s, session, func(prev, next string) {
		prevs = append(prevs, prev)
		nexts = append(nexts, next)
	})

	store.Put(w, session, "abc")
	w.SetState(profileState{Count: 1}) // different kind: not delivered

	if len(nexts) != 1 || nexts[0] != "abc" || prevs[0] != "" {
		t.Errorf("observed (%v -> %v), want seed transition \"\" -> abc", prevs, nexts)
	}
}

func TestSelect_OnlyDerivedChangesNotify(t *testing.T) {
	s, w := newProfileStore(t)
	var counts []int
	watch.Select(s, func(p profileState) int { return p.Count }, func(prev, next int) {
		counts = append(counts, next)
	})

	w.SetState(profileState{Count: 0, Name: "a"}) // name change only: selector silent
	w.SetState(profileState{Count: 1, Name: "a"})
	w.SetState(profileState{Count: 1, Name: "b"}) // unrelated change
	w.SetState(profileState{Count: 2, Name: "b"})

	if len(counts) != 2 || counts[0] != 1 || counts[1] != 2 {
		t.Errorf("selector fired with %v, want [1 2]", counts)
	}
}

func TestSelect_CustomEquality(t *testing.T) {
	s, w := newProfileStore(t)
	fired := 0
	// Bucket counts by tens: 11 -> 19 is no change, 19 -> 20 is.
	watch.Select(s,
		func(p profileState) int { return p.Count },
		func(prev, next int) { fired++ },
		watch.WithSelectEquals(func(a, b int) bool { return a/10 == b/10 }),
	)

	w.SetState(profileState{Count: 11})
	w.SetState(profileState{Count: 19})
	w.SetState(profileState{Count: 20})

	if fired != 2 {
		t.Errorf("selector fired %d times, want 2", fired)
	}
}

func TestSubscription_CancelStopsDelivery(t *testing.T) {
	s, w := newProfileStore(t)
	fired := 0
	sub := watch.OnChange(s, func(prev, next profileState) { fired++ })

	w.SetState(profileState{Count: 1})
	sub.Cancel()
	sub.Cancel()
	w.SetState(profileState{Count: 2})

	if fired != 1 {
		t.Errorf("canceled subscription saw %d changes, want 1", fired)
	}
}
