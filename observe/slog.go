package observe

import (
	"context"
	"log/slog"
)

// SlogObserver emits store events to a slog.Logger. Lifecycle events log at
// debug level, changes at debug with the kind and store attributes flattened
// as top-level slog attributes. Values are logged with slog.Any, so types
// with LogValue methods keep control over their representation.
type SlogObserver struct {
	logger *slog.Logger
}

// NewSlogObserver creates a SlogObserver that emits to the given logger.
// A nil logger falls back to slog.Default().
func NewSlogObserver(logger *slog.Logger) *SlogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogObserver{logger: logger}
}

func (o *SlogObserver) OnCreate(ref StoreRef) {
	o.logger.LogAttrs(context.Background(), slog.LevelDebug, "store.create",
		slog.String("store", ref.Name),
		slog.String("store_id", ref.ID),
	)
}

func (o *SlogObserver) OnChange(change Change) {
	o.logger.LogAttrs(context.Background(), slog.LevelDebug, "store.change",
		slog.String("store", change.Store.Name),
		slog.String("store_id", change.Store.ID),
		slog.String("kind", change.Kind),
		slog.Any("previous", change.Previous),
		slog.Any("next", change.Next),
	)
}

func (o *SlogObserver) OnDispose(ref StoreRef) {
	o.logger.LogAttrs(context.Background(), slog.LevelDebug, "store.dispose",
		slog.String("store", ref.Name),
		slog.String("store_id", ref.ID),
	)
}
