package mutation_test

import (
	"context"
	"testing"
	"time"

	"github.com/luma-ui/statekit/mutation"
)

func TestWatch_DeliversTransitions(t *testing.T) {
	m := mutation.New(func(ctx context.Context) (int, error) {
		return 7, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	feed := m.Watch(ctx, 8)

	m.Call(context.Background())

	for _, want := range []mutation.Status{mutation.StatusLoading, mutation.StatusSuccess} {
		state, err := feed.Receive(ctx)
		if err != nil {
			t.Fatalf("Receive: %v", err)
		}
		if state.Status != want {
			t.Fatalf("Status = %v, want %v", state.Status, want)
		}
	}
}

func TestWatch_ClosesOnContextCancel(t *testing.T) {
	m := mutation.New(func(ctx context.Context) (int, error) {
		return 7, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	feed := m.Watch(ctx, 1)
	cancel()

	deadline := time.After(time.Second)
	for !feed.IsClosed() {
		select {
		case <-deadline:
			t.Fatal("feed not closed after context cancel")
		case <-time.After(time.Millisecond):
		}
	}
}
