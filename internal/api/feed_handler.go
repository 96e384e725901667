package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/swipefeed/internal/api/shared"
	"github.com/phrazzld/swipefeed/internal/domain"
	"github.com/phrazzld/swipefeed/internal/feed"
	"github.com/phrazzld/swipefeed/internal/notify"
	"github.com/phrazzld/swipefeed/internal/platform/logger"
	"github.com/phrazzld/swipefeed/internal/redact"
)

// FeedEngine is the subset of feed.Engine the HTTP layer drives.
type FeedEngine interface {
	Load(ctx context.Context) error
	Status() (feed.LoadStatus, error)
	VisibleWindow() []domain.Candidate
	Len() int
	AnimationPhase() feed.AnimationSnapshot
	CommitState() feed.CommitState
	OnPointerDown(x float64) bool
	OnPointerMove(x float64) (float64, bool)
	OnPointerUp(ctx context.Context) <-chan feed.Outcome
	OnButtonDecision(ctx context.Context, decision domain.Decision) (<-chan feed.Outcome, error)
}

// Notifications yields queued toasts.
type Notifications interface {
	Drain() []notify.Toast
}

// FeedHandler handles feed session HTTP requests.
type FeedHandler struct {
	engine FeedEngine
	inbox  Notifications
	logger *slog.Logger
}

// NewFeedHandler creates a new FeedHandler.
func NewFeedHandler(engine FeedEngine, inbox Notifications, logger *slog.Logger) *FeedHandler {
	if engine == nil {
		panic("engine cannot be nil for FeedHandler")
	}
	if inbox == nil {
		panic("inbox cannot be nil for FeedHandler")
	}
	if logger == nil {
		panic("logger cannot be nil for FeedHandler")
	}

	return &FeedHandler{
		engine: engine,
		inbox:  inbox,
		logger: logger.With(slog.String("component", "feed_handler")),
	}
}

// RegisterRoutes mounts the feed session endpoints on r.
func (h *FeedHandler) RegisterRoutes(r chi.Router) {
	r.Route("/feed", func(r chi.Router) {
		r.Get("/", h.GetFeed)
		r.Post("/reload", h.Reload)
		r.Post("/pointer/down", h.PointerDown)
		r.Post("/pointer/move", h.PointerMove)
		r.Post("/pointer/up", h.PointerUp)
		r.Post("/decisions", h.SubmitDecision)
	})
	r.Get("/notifications", h.GetNotifications)
}

// GetFeed handles GET /feed.
func (h *FeedHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.feedResponse())
}

// Reload handles POST /feed/reload. New candidates are appended behind the
// ones already queued.
func (h *FeedHandler) Reload(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if err := h.engine.Load(r.Context()); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("feed reloaded", slog.Int("remaining", h.engine.Len()))
	shared.RespondWithJSON(w, r, http.StatusOK, h.feedResponse())
}

// PointerDown handles POST /feed/pointer/down.
func (h *FeedHandler) PointerDown(w http.ResponseWriter, r *http.Request) {
	x, ok := h.decodePointer(w, r)
	if !ok {
		return
	}

	accepted := h.engine.OnPointerDown(x)
	shared.RespondWithJSON(w, r, http.StatusOK, PointerResponse{
		Accepted:  accepted,
		Animation: h.engine.AnimationPhase(),
	})
}

// PointerMove handles POST /feed/pointer/move.
func (h *FeedHandler) PointerMove(w http.ResponseWriter, r *http.Request) {
	x, ok := h.decodePointer(w, r)
	if !ok {
		return
	}

	d, accepted := h.engine.OnPointerMove(x)
	shared.RespondWithJSON(w, r, http.StatusOK, PointerResponse{
		Accepted:     accepted,
		Displacement: d,
		Animation:    h.engine.AnimationPhase(),
	})
}

// PointerUp handles POST /feed/pointer/up. A swipe past the threshold is
// committed and the response waits for the backend; a short swipe snaps back.
func (h *FeedHandler) PointerUp(w http.ResponseWriter, r *http.Request) {
	results := h.engine.OnPointerUp(r.Context())
	if results == nil {
		shared.RespondWithJSON(w, r, http.StatusOK, DecisionResponse{Feed: h.feedResponse()})
		return
	}
	h.respondWithOutcome(w, r, results)
}

// SubmitDecision handles POST /feed/decisions, the like and dislike buttons.
func (h *FeedHandler) SubmitDecision(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req DecisionRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	decision, err := domain.ParseDecision(req.Decision)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	results, err := h.engine.OnButtonDecision(r.Context(), decision)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	h.respondWithOutcome(w, r, results)
}

// GetNotifications handles GET /notifications and empties the inbox.
func (h *FeedHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, NotificationsResponse{
		Notifications: h.inbox.Drain(),
	})
}

func (h *FeedHandler) decodePointer(w http.ResponseWriter, r *http.Request) (float64, bool) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req PointerRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return 0, false
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return 0, false
	}
	return *req.X, true
}

// respondWithOutcome waits for the commit to finish. If the client goes away
// first the commit still completes; the response then only says it is pending.
func (h *FeedHandler) respondWithOutcome(w http.ResponseWriter, r *http.Request, results <-chan feed.Outcome) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	select {
	case outcome, ok := <-results:
		if !ok {
			err := errors.New("commit finished without an outcome")
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, GetSafeErrorMessage(err), err)
			return
		}

		resp := DecisionResponse{
			Committed:   true,
			CommitID:    outcome.CommitID.String(),
			CandidateID: outcome.Candidate.ID,
			Decision:    outcome.Decision.String(),
			Resolved:    outcome.Resolved(),
			Message:     outcomeMessage(outcome),
			Feed:        h.feedResponse(),
		}
		log.Debug("decision committed",
			slog.String("commit_id", resp.CommitID),
			slog.String("candidate_id", resp.CandidateID),
			slog.Bool("resolved", resp.Resolved))
		shared.RespondWithJSON(w, r, http.StatusOK, resp)

	case <-r.Context().Done():
		log.Debug("request ended before the commit finished")
		shared.RespondWithJSON(w, r, http.StatusAccepted, DecisionResponse{
			Committed: true,
			Pending:   true,
			Feed:      h.feedResponse(),
		})
	}
}

func (h *FeedHandler) feedResponse() FeedResponse {
	status, loadErr := h.engine.Status()
	window := h.engine.VisibleWindow()

	cards := make([]CardResponse, len(window))
	for i, c := range window {
		cards[i] = cardToResponse(c)
	}

	resp := FeedResponse{
		Status:      status,
		Cards:       cards,
		Remaining:   h.engine.Len(),
		Animation:   h.engine.AnimationPhase(),
		CommitState: h.engine.CommitState().String(),
	}
	switch {
	case loadErr == nil:
	case status == feed.StatusLoadFailed:
		resp.Error = GetSafeErrorMessage(loadErr)
	default:
		// The stack is still usable; only the refresh failed.
		resp.ReloadError = GetSafeErrorMessage(loadErr)
	}
	return resp
}

func outcomeMessage(o feed.Outcome) string {
	if !o.Resolved() {
		return notify.MessageSubmitFailed
	}
	if o.Decision == domain.DecisionInterested {
		return notify.MessageLiked
	}
	return notify.MessageDisliked
}
