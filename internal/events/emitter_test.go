package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustEvent(t *testing.T, eventType string) *Event {
	t.Helper()
	event, err := NewEvent(eventType, DecisionPayload{CandidateID: "a"})
	require.NoError(t, err)
	return event
}

func TestInMemoryEventEmitter(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("no handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		assert.NoError(t, emitter.EmitEvent(context.Background(), mustEvent(t, TypeFeedLoaded)))
	})

	t.Run("catch-all handlers receive every event", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		handler1 := &MockEventHandler{}
		handler2 := &MockEventHandler{}
		emitter.RegisterHandler(handler1)
		emitter.RegisterHandler(handler2)

		event := mustEvent(t, TypeDecisionResolved)
		require.NoError(t, emitter.EmitEvent(context.Background(), event))
		require.NoError(t, emitter.EmitEvent(context.Background(), mustEvent(t, TypeFeedLoaded)))

		assert.Equal(t, 2, handler1.HandledCount)
		assert.Equal(t, 2, handler2.HandledCount)
	})

	t.Run("typed subscriptions filter events", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		decisions := &MockEventHandler{}
		loads := &MockEventHandler{}
		emitter.RegisterHandler(decisions, TypeDecisionResolved, TypeDecisionFailed)
		emitter.RegisterHandler(loads, TypeFeedLoaded)

		resolved := mustEvent(t, TypeDecisionResolved)
		require.NoError(t, emitter.EmitEvent(context.Background(), resolved))
		require.NoError(t, emitter.EmitEvent(context.Background(), mustEvent(t, TypeDecisionFailed)))
		require.NoError(t, emitter.EmitEvent(context.Background(), mustEvent(t, TypeFeedLoadFailed)))

		assert.Equal(t, 2, decisions.HandledCount)
		assert.Equal(t, 0, loads.HandledCount)
	})

	t.Run("failing handler does not block the others", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(nil)
		errFirst := errors.New("first failed")
		errSecond := errors.New("second failed")
		failing1 := &MockEventHandler{HandlerError: errFirst}
		success := &MockEventHandler{}
		failing2 := &MockEventHandler{HandlerError: errSecond}
		emitter.RegisterHandler(failing1)
		emitter.RegisterHandler(success)
		emitter.RegisterHandler(failing2)

		err := emitter.EmitEvent(context.Background(), mustEvent(t, TypeDecisionFailed))
		assert.ErrorIs(t, err, errFirst)
		assert.ErrorIs(t, err, errSecond)
		assert.Equal(t, 1, success.HandledCount)
		assert.Equal(t, 1, failing2.HandledCount)
	})
}
