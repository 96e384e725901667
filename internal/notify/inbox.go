package notify

import (
	"log/slog"
	"sync"
)

// DefaultCapacity is used when NewInbox is given a non-positive capacity.
const DefaultCapacity = 20

// Inbox is a bounded FIFO of undelivered toasts. When full, the oldest toast
// is dropped to make room.
type Inbox struct {
	mu     sync.Mutex
	toasts chan Toast
	logger *slog.Logger
}

// NewInbox creates an inbox holding at most capacity toasts.
func NewInbox(capacity int, logger *slog.Logger) *Inbox {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Inbox{
		toasts: make(chan Toast, capacity),
		logger: logger.With("component", "notification_inbox"),
	}
}

// Push adds a toast, evicting the oldest one if the inbox is full.
func (i *Inbox) Push(t Toast) {
	i.mu.Lock()
	defer i.mu.Unlock()

	for {
		select {
		case i.toasts <- t:
			i.logger.Debug("toast queued",
				"toast_id", t.ID,
				"level", t.Level,
				"inbox_len", len(i.toasts))
			return
		default:
		}

		select {
		case dropped := <-i.toasts:
			i.logger.Debug("inbox full, dropping oldest toast",
				"toast_id", dropped.ID,
				"inbox_cap", cap(i.toasts))
		default:
		}
	}
}

// Drain removes and returns every queued toast, oldest first.
func (i *Inbox) Drain() []Toast {
	i.mu.Lock()
	defer i.mu.Unlock()

	out := make([]Toast, 0, len(i.toasts))
	for {
		select {
		case t := <-i.toasts:
			out = append(out, t)
		default:
			return out
		}
	}
}

// Len returns the number of queued toasts.
func (i *Inbox) Len() int {
	return len(i.toasts)
}

// Cap returns the inbox capacity.
func (i *Inbox) Cap() int {
	return cap(i.toasts)
}
