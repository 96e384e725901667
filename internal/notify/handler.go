package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/swipefeed/internal/domain"
	"github.com/phrazzld/swipefeed/internal/events"
)

// EventTypes lists the events that produce a toast.
var EventTypes = []string{
	events.TypeDecisionResolved,
	events.TypeDecisionFailed,
	events.TypeFeedLoadFailed,
}

// ToastHandler implements events.EventHandler and turns feed events into
// toasts in an Inbox.
type ToastHandler struct {
	inbox  *Inbox
	logger *slog.Logger
}

// NewToastHandler creates a handler delivering into inbox.
func NewToastHandler(inbox *Inbox, logger *slog.Logger) *ToastHandler {
	if inbox == nil {
		panic("inbox cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ToastHandler{
		inbox:  inbox,
		logger: logger.With("component", "toast_event_handler"),
	}
}

// HandleEvent queues the toast matching the event. Events without a toast are
// ignored.
func (h *ToastHandler) HandleEvent(ctx context.Context, event *events.Event) error {
	switch event.Type {
	case events.TypeDecisionResolved, events.TypeDecisionFailed:
		return h.handleDecision(event)
	case events.TypeFeedLoadFailed:
		h.inbox.Push(NewToast(LevelError, MessageLoadFailed))
		return nil
	default:
		h.logger.Debug("ignoring event with unsupported type",
			"event_type", event.Type,
			"event_id", event.ID)
		return nil
	}
}

func (h *ToastHandler) handleDecision(event *events.Event) error {
	var payload events.DecisionPayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		h.logger.Error("failed to unmarshal payload", "error", err, "event_id", event.ID)
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	var toast Toast
	if event.Type == events.TypeDecisionFailed {
		toast = NewToast(LevelError, MessageSubmitFailed)
	} else {
		decision, err := domain.ParseDecision(payload.Decision)
		if err != nil {
			h.logger.Error("invalid decision in event", "error", err, "event_id", event.ID)
			return fmt.Errorf("invalid decision in event: %w", err)
		}
		toast = NewToast(LevelSuccess, decisionMessage(decision))
	}
	toast.CandidateID = payload.CandidateID

	h.inbox.Push(toast)
	return nil
}

func decisionMessage(d domain.Decision) string {
	if d == domain.DecisionInterested {
		return MessageLiked
	}
	return MessageDisliked
}

var _ events.EventHandler = (*ToastHandler)(nil)
