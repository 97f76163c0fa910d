package observe

import (
	"github.com/docker/go-events"
)

// LifecyclePhase tags store lifecycle events forwarded to an event sink.
type LifecyclePhase string

const (
	PhaseCreate  LifecyclePhase = "create"
	PhaseDispose LifecyclePhase = "dispose"
)

// LifecycleEvent is the payload written to a sink for store create and
// dispose events. Changes are written as Change values directly.
type LifecycleEvent struct {
	Store StoreRef
	Phase LifecyclePhase
}

// SinkObserver bridges store events into an events.Sink, so change streams
// can be composed with the go-events queue, filter, and broadcaster
// primitives. Wrap the sink in events.NewQueue to decouple slow consumers
// from the write path. Sink write errors are dropped; pair with
// events.NewRetryingSink when delivery matters.
type SinkObserver struct {
	sink events.Sink
}

// NewSinkObserver creates a SinkObserver writing to sink.
func NewSinkObserver(sink events.Sink) *SinkObserver {
	return &SinkObserver{sink: sink}
}

func (o *SinkObserver) OnCreate(ref StoreRef) {
	_ = o.sink.Write(LifecycleEvent{Store: ref, Phase: PhaseCreate})
}

func (o *SinkObserver) OnChange(change Change) {
	_ = o.sink.Write(change)
}

func (o *SinkObserver) OnDispose(ref StoreRef) {
	_ = o.sink.Write(LifecycleEvent{Store: ref, Phase: PhaseDispose})
}

// Close closes the underlying sink.
func (o *SinkObserver) Close() error {
	return o.sink.Close()
}
