package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/swipefeed/internal/config"
	"github.com/phrazzld/swipefeed/internal/domain"
	"github.com/phrazzld/swipefeed/internal/events"
	"github.com/phrazzld/swipefeed/internal/platform/logger"
	"github.com/phrazzld/swipefeed/internal/redact"
	"golang.org/x/sync/singleflight"
)

// ErrEngineClosed is returned for decisions that arrive after Close.
var ErrEngineClosed = errors.New("feed engine is closed")

// DefaultLoadTimeout bounds a shared fetch when Options.LoadTimeout is unset.
const DefaultLoadTimeout = 30 * time.Second

// Fetcher loads a batch of candidates from the backend.
type Fetcher interface {
	FetchCandidates(ctx context.Context) ([]domain.Candidate, error)
}

// LoadStatus describes the last attempt to fill the queue.
type LoadStatus int

const (
	StatusNotLoaded LoadStatus = iota
	StatusLoading
	StatusReady
	StatusLoadFailed
)

func (s LoadStatus) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusLoadFailed:
		return "load_failed"
	default:
		return "not_loaded"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s LoadStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Options configures an Engine. The zero value is usable.
type Options struct {
	SwipeThreshold float64
	WindowSize     int
	SettleDuration time.Duration
	// LoadTimeout bounds one shared fetch. Zero means DefaultLoadTimeout.
	LoadTimeout time.Duration
	// Emitter receives decision and load events. Optional.
	Emitter events.EventEmitter
	// OnPhaseChange observes animation phase changes. Optional.
	OnPhaseChange PhaseObserver
	Logger        *slog.Logger
}

// OptionsFromConfig maps the feed section of the configuration to Options.
func OptionsFromConfig(cfg config.FeedConfig) Options {
	return Options{
		SwipeThreshold: cfg.SwipeThreshold,
		WindowSize:     cfg.WindowSize,
		SettleDuration: cfg.SettleDuration,
		LoadTimeout:    cfg.LoadTimeout,
	}
}

// Engine is the decision engine exposed to the rendering layer.
//
// Input callbacks are serialized behind a single mutex, standing in for the
// UI event loop; the only suspension point is the backend submission, which
// runs on its own goroutine inside the CommitCoordinator.
type Engine struct {
	mu          sync.Mutex
	closed      bool
	tracker     *GestureTracker
	classifier  SwipeClassifier
	queue       *CardQueue
	anim        *AnimationState
	coordinator *CommitCoordinator

	fetcher Fetcher
	emitter events.EventEmitter
	logger  *slog.Logger
	loads   singleflight.Group

	loadTimeout time.Duration

	statusMu sync.RWMutex
	status   LoadStatus
	loadErr  error
}

// NewEngine creates an engine with an empty queue. Call Load to fill it.
func NewEngine(fetcher Fetcher, submitter Submitter, opts Options) *Engine {
	if fetcher == nil {
		panic("fetcher cannot be nil")
	}

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	loadTimeout := opts.LoadTimeout
	if loadTimeout <= 0 {
		loadTimeout = DefaultLoadTimeout
	}

	queue := NewCardQueue(opts.WindowSize)
	anim := NewAnimationState(opts.OnPhaseChange)
	coordinator := NewCommitCoordinator(queue, anim, submitter, CoordinatorConfig{
		SettleDuration: opts.SettleDuration,
		Emitter:        opts.Emitter,
		Logger:         log,
	})

	return &Engine{
		tracker:     NewGestureTracker(func() bool { return !coordinator.InFlight() }),
		classifier:  NewSwipeClassifier(opts.SwipeThreshold),
		queue:       queue,
		anim:        anim,
		coordinator: coordinator,
		fetcher:     fetcher,
		emitter:     opts.Emitter,
		logger:      log.With(slog.String("component", "feed_engine")),
		loadTimeout: loadTimeout,
	}
}

// Load fetches candidates and appends them to the queue. Concurrent calls
// share a single fetch, which runs detached from the callers' cancellation
// and is bounded by the load timeout; a caller whose ctx ends stops waiting
// and gets ctx.Err() while the fetch goes on for the others.
//
// On failure the queue is left as it was. With no cards queued Status reports
// StatusLoadFailed; with cards still queued it stays StatusReady and carries
// the error of the failed reload.
func (e *Engine) Load(ctx context.Context) error {
	results := e.loads.DoChan("load", func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.loadTimeout)
		defer cancel()
		return nil, e.load(loadCtx)
	})

	select {
	case res := <-results:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Engine) load(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, e.logger)
	e.setStatus(StatusLoading, nil)

	candidates, err := e.fetcher.FetchCandidates(ctx)
	if err != nil {
		log.Error("failed to load candidates", slog.String("error", redact.Error(err)))
		if e.queue.Len() > 0 {
			e.setStatus(StatusReady, err)
		} else {
			e.setStatus(StatusLoadFailed, err)
		}
		e.emitLoad(ctx, events.TypeFeedLoadFailed, events.LoadPayload{
			Total: e.queue.Len(),
			Error: redact.Error(err),
		})
		return fmt.Errorf("failed to load candidates: %w", err)
	}

	added := e.queue.Append(candidates...)
	if skipped := len(candidates) - added; skipped > 0 {
		log.Warn("skipped invalid or duplicate candidates", slog.Int("skipped", skipped))
	}
	e.setStatus(StatusReady, nil)

	log.Info("candidates loaded", slog.Int("added", added), slog.Int("queue_len", e.queue.Len()))
	e.emitLoad(ctx, events.TypeFeedLoaded, events.LoadPayload{Added: added, Total: e.queue.Len()})
	return nil
}

// Status returns the load status and the error of the last load, if it
// failed. The error accompanies StatusReady when a reload failed while cards
// were still queued.
func (e *Engine) Status() (LoadStatus, error) {
	e.statusMu.RLock()
	defer e.statusMu.RUnlock()
	return e.status, e.loadErr
}

// VisibleWindow returns the cards to render, top card first.
func (e *Engine) VisibleWindow() []domain.Candidate {
	return e.queue.VisibleWindow()
}

// Len returns the number of candidates left in the queue.
func (e *Engine) Len() int {
	return e.queue.Len()
}

// AnimationPhase returns a snapshot of the animation state.
func (e *Engine) AnimationPhase() AnimationSnapshot {
	return e.anim.Snapshot()
}

// CommitState reports whether a decision is in flight.
func (e *Engine) CommitState() CommitState {
	return e.coordinator.State()
}

// OnPointerDown starts dragging the top card at x. It returns false when the
// event was discarded: no card, a drag already active, or a commit in flight.
func (e *Engine) OnPointerDown(x float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return false
	}
	if _, ok := e.queue.PeekTop(); !ok {
		return false
	}
	if !e.tracker.Start(x) {
		return false
	}
	e.anim.Drag(0)
	return true
}

// OnPointerMove updates the drag and returns the running displacement.
func (e *Engine) OnPointerMove(x float64) (float64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return 0, false
	}
	d, ok := e.tracker.Move(x)
	if !ok {
		return 0, false
	}
	e.anim.Drag(d)
	return d, true
}

// OnPointerUp finishes the drag. A swipe past the threshold is committed and
// the returned channel yields its Outcome; a shorter drag is cancelled and the
// card snaps back. The channel is nil when nothing was dispatched.
func (e *Engine) OnPointerUp(ctx context.Context) <-chan Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	d, ok := e.tracker.End()
	if !ok {
		return nil
	}

	decision, commit := e.classifier.Classify(d)
	if !commit {
		e.anim.Revert()
		logger.FromContextOrDefault(ctx, e.logger).Debug("swipe cancelled",
			slog.Float64("displacement", d),
			slog.Float64("threshold", e.classifier.Threshold()))
		return nil
	}

	results, _ := e.dispatchLocked(ctx, decision)
	return results
}

// OnButtonDecision commits decision for the top card without a gesture, as the
// like and dislike buttons do. It obeys the same commit lock as swipes. A
// discarded decision returns a nil channel and the reason: ErrEmptyQueue,
// ErrCommitInFlight, ErrEngineClosed or domain.ErrInvalidDecision.
func (e *Engine) OnButtonDecision(ctx context.Context, decision domain.Decision) (<-chan Outcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.dispatchLocked(ctx, decision)
}

// Close stops accepting input and waits for an in-flight commit to finish.
func (e *Engine) Close() {
	e.mu.Lock()
	e.closed = true
	e.tracker.Reset()
	e.mu.Unlock()

	e.coordinator.Wait()
}

func (e *Engine) dispatchLocked(ctx context.Context, decision domain.Decision) (<-chan Outcome, error) {
	log := logger.FromContextOrDefault(ctx, e.logger)

	if e.closed {
		log.Debug("decision discarded: engine closed")
		return nil, ErrEngineClosed
	}

	results, err := e.coordinator.Commit(ctx, decision)
	if err != nil {
		e.anim.Revert()
		switch {
		case errors.Is(err, ErrEmptyQueue), errors.Is(err, ErrCommitInFlight):
			log.Debug("decision discarded", slog.String("reason", err.Error()))
		default:
			log.Warn("decision rejected", slog.String("error", err.Error()))
		}
		return nil, err
	}

	// A committed card no longer belongs to any drag.
	e.tracker.Reset()
	return results, nil
}

func (e *Engine) setStatus(status LoadStatus, err error) {
	e.statusMu.Lock()
	defer e.statusMu.Unlock()
	e.status = status
	e.loadErr = err
}

func (e *Engine) emitLoad(ctx context.Context, eventType string, payload events.LoadPayload) {
	if e.emitter == nil {
		return
	}
	event, err := events.NewEvent(eventType, payload)
	if err != nil {
		e.logger.Error("failed to build load event", slog.String("error", err.Error()))
		return
	}
	if err := e.emitter.EmitEvent(ctx, event); err != nil {
		e.logger.Warn("load event handler failed", slog.String("error", err.Error()))
	}
}
