package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	payload := DecisionPayload{
		CommitID:    uuid.New(),
		CandidateID: "64f1c2",
		Decision:    "interested",
	}

	event, err := NewEvent(TypeDecisionResolved, payload)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, TypeDecisionResolved, event.Type)
	assert.WithinDuration(t, time.Now(), event.CreatedAt, 2*time.Second)

	var decoded DecisionPayload
	require.NoError(t, event.UnmarshalPayload(&decoded))
	assert.Equal(t, payload, decoded)
}

func TestNewEventUnserializablePayload(t *testing.T) {
	_, err := NewEvent(TypeFeedLoaded, make(chan int))
	assert.Error(t, err)
}

// MockEventHandler implements the EventHandler interface for testing
type MockEventHandler struct {
	// The last event received by this handler
	LastEvent *Event
	// Error to return from HandleEvent
	HandlerError error
	// Count of events handled
	HandledCount int
}

// HandleEvent implements the EventHandler interface
func (h *MockEventHandler) HandleEvent(ctx context.Context, event *Event) error {
	h.LastEvent = event
	h.HandledCount++
	return h.HandlerError
}

func TestHandlerFunc(t *testing.T) {
	var got *Event
	h := HandlerFunc(func(ctx context.Context, event *Event) error {
		got = event
		return errors.New("boom")
	})

	event, err := NewEvent(TypeFeedLoaded, LoadPayload{Added: 2, Total: 2})
	require.NoError(t, err)

	assert.EqualError(t, h.HandleEvent(context.Background(), event), "boom")
	assert.Same(t, event, got)
}
