package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the feed.
const (
	TypeDecisionResolved = "decision.resolved"
	TypeDecisionFailed   = "decision.failed"
	TypeFeedLoaded       = "feed.loaded"
	TypeFeedLoadFailed   = "feed.load_failed"
)

// Event is a notification about something that happened in the feed.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`
	// Type is one of the Type* constants
	Type string `json:"type"`
	// Payload contains the event-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`
	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// DecisionPayload is the payload of decision.resolved and decision.failed events.
type DecisionPayload struct {
	CommitID      uuid.UUID `json:"commit_id"`
	CandidateID   string    `json:"candidate_id"`
	CandidateName string    `json:"candidate_name,omitempty"`
	Decision      string    `json:"decision"`
	Error         string    `json:"error,omitempty"`
}

// LoadPayload is the payload of feed.loaded and feed.load_failed events.
type LoadPayload struct {
	Added int    `json:"added"`
	Total int    `json:"total"`
	Error string `json:"error,omitempty"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *Event) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates a new Event with the specified type and payload.
func NewEvent(eventType string, payload interface{}) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *Event) error
}

// EventEmitter defines an interface for components that can emit events.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *Event) error
}

// HandlerFunc adapts an ordinary function to the EventHandler interface.
type HandlerFunc func(ctx context.Context, event *Event) error

// HandleEvent calls f(ctx, event).
func (f HandlerFunc) HandleEvent(ctx context.Context, event *Event) error {
	return f(ctx, event)
}
