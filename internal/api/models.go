package api

import (
	"github.com/phrazzld/swipefeed/internal/domain"
	"github.com/phrazzld/swipefeed/internal/feed"
	"github.com/phrazzld/swipefeed/internal/notify"
)

// PointerRequest carries a pointer position for down and move events.
type PointerRequest struct {
	X *float64 `json:"x" validate:"required"`
}

// DecisionRequest is the body of a like/dislike button press.
type DecisionRequest struct {
	Decision string `json:"decision" validate:"required,oneof=interested ignored"`
}

// CardResponse is a candidate prepared for display.
type CardResponse struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	PhotoURL string   `json:"photo_url"`
	Bio      string   `json:"bio"`
	Skills   []string `json:"skills"`
	Location string   `json:"location,omitempty"`
}

// FeedResponse is everything the renderer needs to draw the card stack.
type FeedResponse struct {
	Status      feed.LoadStatus        `json:"status"`
	Error       string                 `json:"error,omitempty"`
	ReloadError string                 `json:"reload_error,omitempty"`
	Cards       []CardResponse         `json:"cards"`
	Remaining   int                    `json:"remaining"`
	Animation   feed.AnimationSnapshot `json:"animation"`
	CommitState string                 `json:"commit_state"`
}

// PointerResponse reports whether a pointer event was applied.
type PointerResponse struct {
	Accepted     bool                   `json:"accepted"`
	Displacement float64                `json:"displacement"`
	Animation    feed.AnimationSnapshot `json:"animation"`
}

// DecisionResponse reports a dispatched decision. Pending is set when the
// request ended before the backend answered; the commit still completes.
type DecisionResponse struct {
	Committed   bool         `json:"committed"`
	Pending     bool         `json:"pending,omitempty"`
	CommitID    string       `json:"commit_id,omitempty"`
	CandidateID string       `json:"candidate_id,omitempty"`
	Decision    string       `json:"decision,omitempty"`
	Resolved    bool         `json:"resolved"`
	Message     string       `json:"message,omitempty"`
	Feed        FeedResponse `json:"feed"`
}

// NotificationsResponse lists drained toasts, oldest first.
type NotificationsResponse struct {
	Notifications []notify.Toast `json:"notifications"`
}

func cardToResponse(c domain.Candidate) CardResponse {
	return CardResponse{
		ID:       c.ID,
		Name:     c.DisplayName(),
		PhotoURL: c.DisplayPhotoURL(),
		Bio:      c.DisplayBio(),
		Skills:   c.DisplaySkills(),
		Location: c.Location,
	}
}
