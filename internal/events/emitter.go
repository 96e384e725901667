package events

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
)

type subscription struct {
	handler EventHandler
	// types is nil for handlers that receive every event.
	types []string
}

func (s subscription) wants(eventType string) bool {
	return s.types == nil || slices.Contains(s.types, eventType)
}

// InMemoryEventEmitter dispatches events synchronously to the handlers
// registered in this process, in registration order.
type InMemoryEventEmitter struct {
	subs   []subscription
	mu     sync.RWMutex
	logger *slog.Logger
}

// NewInMemoryEventEmitter creates an emitter with no handlers.
func NewInMemoryEventEmitter(logger *slog.Logger) *InMemoryEventEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemoryEventEmitter{
		logger: logger.With("component", "in_memory_event_emitter"),
	}
}

// RegisterHandler subscribes handler to the given event types, or to every
// event when no type is given.
func (e *InMemoryEventEmitter) RegisterHandler(handler EventHandler, eventTypes ...string) {
	sub := subscription{handler: handler}
	if len(eventTypes) > 0 {
		sub.types = slices.Clone(eventTypes)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.subs = append(e.subs, sub)
	e.logger.Debug("registered event handler",
		"handler_count", len(e.subs),
		"event_types", eventTypes)
}

// EmitEvent delivers event to every subscribed handler. A failing handler
// does not stop delivery to the others; all handler errors are joined into
// the returned error.
func (e *InMemoryEventEmitter) EmitEvent(ctx context.Context, event *Event) error {
	e.mu.RLock()
	subs := slices.Clone(e.subs)
	e.mu.RUnlock()

	var errs []error
	delivered := 0
	for i, sub := range subs {
		if !sub.wants(event.Type) {
			continue
		}
		delivered++
		if err := sub.handler.HandleEvent(ctx, event); err != nil {
			e.logger.Error("handler failed to process event",
				"error", err,
				"handler_index", i,
				"event_id", event.ID,
				"event_type", event.Type)
			errs = append(errs, err)
		}
	}

	e.logger.Debug("emitted event",
		"event_id", event.ID,
		"event_type", event.Type,
		"delivered", delivered)

	return errors.Join(errs...)
}
