package notify

import (
	"time"

	"github.com/google/uuid"
)

// Level is the visual style of a toast.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// DefaultDuration is how long a toast stays on screen unless overridden.
const DefaultDuration = 5 * time.Second

// Messages shown after a decision settles.
const (
	MessageLiked        = "You liked this profile!"
	MessageDisliked     = "You disliked this profile."
	MessageSubmitFailed = "Failed to send request. Please try again."
	MessageLoadFailed   = "Failed to load profiles."
)

// Toast is a transient notification for the renderer.
type Toast struct {
	ID          uuid.UUID `json:"id"`
	Level       Level     `json:"level"`
	Message     string    `json:"message"`
	DurationMS  int64     `json:"duration_ms"`
	CandidateID string    `json:"candidate_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewToast creates a toast with DefaultDuration.
func NewToast(level Level, message string) Toast {
	return Toast{
		ID:         uuid.New(),
		Level:      level,
		Message:    message,
		DurationMS: DefaultDuration.Milliseconds(),
		CreatedAt:  time.Now().UTC(),
	}
}
