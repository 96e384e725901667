package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/swipefeed/internal/domain"
	"github.com/phrazzld/swipefeed/internal/events"
	"github.com/phrazzld/swipefeed/internal/platform/logger"
	"github.com/phrazzld/swipefeed/internal/redact"
)

var (
	// ErrCommitInFlight is returned when a decision arrives while another one
	// is still being committed.
	ErrCommitInFlight = errors.New("a decision is already being committed")

	// ErrSubmitPanicked is reported in Outcome.Err when the submitter panics.
	ErrSubmitPanicked = errors.New("decision submitter panicked")
)

// Submitter records a decision with the backend. Retries, timeouts and
// idempotency are the implementation's concern; the coordinator treats any
// return as terminal.
type Submitter interface {
	SubmitDecision(ctx context.Context, decision domain.Decision, candidateID string) error
}

// CommitState is the coordinator's state machine position.
type CommitState int

const (
	CommitIdle CommitState = iota
	CommitCommitting
)

func (s CommitState) String() string {
	if s == CommitCommitting {
		return "committing"
	}
	return "idle"
}

// Outcome describes a finished commit. The candidate has been removed from
// the queue whether or not the backend accepted the decision.
type Outcome struct {
	CommitID  uuid.UUID
	Decision  domain.Decision
	Candidate domain.Candidate
	// Err is the submission error; nil means the commit resolved.
	Err error
}

// Resolved reports whether the backend accepted the decision.
func (o Outcome) Resolved() bool {
	return o.Err == nil
}

// CoordinatorConfig holds the optional collaborators of a CommitCoordinator.
type CoordinatorConfig struct {
	// SettleDuration is how long the Settling phase lasts before Idle.
	// Zero settles immediately.
	SettleDuration time.Duration
	// Emitter receives decision events. Optional.
	Emitter events.EventEmitter
	Logger  *slog.Logger
}

// CommitCoordinator serializes decision -> submission -> queue pop ->
// animation settle, with at most one commit in flight.
//
// State machine: Idle -> Committing -> (Resolved | Failed) -> Idle. The lock
// is an atomic flag taken in Commit and released by the submission goroutine
// after the pop, so exactly one SubmitDecision call and one PopFront happen
// per accepted commit, in commit order.
type CommitCoordinator struct {
	queue          *CardQueue
	anim           *AnimationState
	submitter      Submitter
	emitter        events.EventEmitter
	settleDuration time.Duration
	logger         *slog.Logger

	locked atomic.Bool
	wg     sync.WaitGroup
}

// NewCommitCoordinator wires a coordinator to the queue and animation state it
// exclusively mutates.
func NewCommitCoordinator(
	queue *CardQueue,
	anim *AnimationState,
	submitter Submitter,
	cfg CoordinatorConfig,
) *CommitCoordinator {
	if queue == nil {
		panic("queue cannot be nil")
	}
	if anim == nil {
		panic("animation state cannot be nil")
	}
	if submitter == nil {
		panic("submitter cannot be nil")
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	return &CommitCoordinator{
		queue:          queue,
		anim:           anim,
		submitter:      submitter,
		emitter:        cfg.Emitter,
		settleDuration: cfg.SettleDuration,
		logger:         log.With(slog.String("component", "commit_coordinator")),
	}
}

// State returns the current state.
func (c *CommitCoordinator) State() CommitState {
	if c.locked.Load() {
		return CommitCommitting
	}
	return CommitIdle
}

// InFlight reports whether the commit lock is held.
func (c *CommitCoordinator) InFlight() bool {
	return c.locked.Load()
}

// Commit dispatches decision for the candidate at the head of the queue.
//
// It fails without side effects with ErrCommitInFlight when the lock is held,
// ErrEmptyQueue when there is no candidate, or domain.ErrInvalidDecision.
// Otherwise the animation enters Committing immediately and the returned
// channel receives exactly one Outcome once the submission finished and the
// candidate was popped; the channel is then closed.
//
// The submission does not observe cancellation of ctx: once dispatched it
// runs to completion.
func (c *CommitCoordinator) Commit(ctx context.Context, decision domain.Decision) (<-chan Outcome, error) {
	if !decision.Valid() {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidDecision, int(decision))
	}

	if !c.locked.CompareAndSwap(false, true) {
		return nil, ErrCommitInFlight
	}

	top, ok := c.queue.PeekTop()
	if !ok {
		c.locked.Store(false)
		return nil, ErrEmptyQueue
	}

	commitID := uuid.New()
	c.anim.Commit(DirectionOf(decision))

	log := logger.FromContextOrDefault(ctx, c.logger)
	log.Debug("decision dispatched",
		slog.String("commit_id", commitID.String()),
		slog.String("candidate_id", top.ID),
		slog.String("decision", decision.String()))

	results := make(chan Outcome, 1)
	c.wg.Add(1)
	go c.run(context.WithoutCancel(ctx), commitID, decision, top, results)

	return results, nil
}

// Wait blocks until no submission goroutine is running.
func (c *CommitCoordinator) Wait() {
	c.wg.Wait()
}

func (c *CommitCoordinator) run(
	ctx context.Context,
	commitID uuid.UUID,
	decision domain.Decision,
	top domain.Candidate,
	results chan<- Outcome,
) {
	defer c.wg.Done()
	defer close(results)

	log := logger.FromContextOrDefault(ctx, c.logger).With(
		slog.String("commit_id", commitID.String()),
		slog.String("candidate_id", top.ID),
		slog.String("decision", decision.String()))

	err := c.submit(ctx, decision, top.ID)
	if err != nil {
		// The pop below is not reversed: a swipe is irrevocable locally.
		log.Warn("decision submission failed", slog.String("error", redact.Error(err)))
	}

	popped, popErr := c.queue.PopFront()
	switch {
	case popErr != nil:
		log.Error("queue empty after commit", slog.String("error", popErr.Error()))
		popped = top
	case popped.ID != top.ID:
		log.Error("queue head changed during commit", slog.String("popped_id", popped.ID))
	}

	token := c.anim.Settle()
	c.locked.Store(false)
	c.scheduleIdle(token)

	outcome := Outcome{
		CommitID:  commitID,
		Decision:  decision,
		Candidate: popped,
		Err:       err,
	}
	c.emit(ctx, log, outcome)

	log.Debug("decision committed", slog.Bool("resolved", outcome.Resolved()))
	results <- outcome
}

func (c *CommitCoordinator) submit(ctx context.Context, decision domain.Decision, candidateID string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrSubmitPanicked, r)
		}
	}()
	return c.submitter.SubmitDecision(ctx, decision, candidateID)
}

func (c *CommitCoordinator) scheduleIdle(token uint64) {
	if c.settleDuration <= 0 {
		c.anim.FinishSettle(token)
		return
	}
	time.AfterFunc(c.settleDuration, func() {
		c.anim.FinishSettle(token)
	})
}

func (c *CommitCoordinator) emit(ctx context.Context, log *slog.Logger, o Outcome) {
	if c.emitter == nil {
		return
	}

	payload := events.DecisionPayload{
		CommitID:      o.CommitID,
		CandidateID:   o.Candidate.ID,
		CandidateName: o.Candidate.DisplayName(),
		Decision:      o.Decision.String(),
	}
	eventType := events.TypeDecisionResolved
	if o.Err != nil {
		eventType = events.TypeDecisionFailed
		payload.Error = redact.Error(o.Err)
	}

	event, err := events.NewEvent(eventType, payload)
	if err != nil {
		log.Error("failed to build decision event", slog.String("error", err.Error()))
		return
	}
	if err := c.emitter.EmitEvent(ctx, event); err != nil {
		log.Warn("decision event handler failed", slog.String("error", err.Error()))
	}
}
