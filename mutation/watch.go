package mutation

import (
	"context"

	"github.com/luma-ui/statekit/observe"
)

// Watch subscribes a Feed carrying the next state of every transition, for
// consumption from another goroutine such as a render loop. The feed
// closes when ctx is done. Publishing never blocks the transitioning
// goroutine; see observe.Feed for the drop semantics.
func (m *Mutation[T]) Watch(ctx context.Context, buffer int) *observe.Feed[State[T]] {
	feed := observe.NewFeed[State[T]](buffer)
	unsubscribe := m.Subscribe(func(prev, next State[T]) {
		feed.Publish(next)
	})

	if ctx != nil && ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			unsubscribe()
			feed.Close()
		}()
	}
	return feed
}
