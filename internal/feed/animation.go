package feed

import (
	"fmt"
	"sync"

	"github.com/phrazzld/swipefeed/internal/domain"
)

// Renderer hints for the card on top of the stack.
const (
	// DragRotationDivisor converts drag displacement into degrees of tilt.
	DragRotationDivisor = 20.0
	// FlyOutOffset is how far a committed card travels off screen.
	FlyOutOffset = 400.0
	// FlyOutRotation is the tilt, in degrees, of a committed card.
	FlyOutRotation = 12.0
)

// AnimationPhase is the visual phase reported to the rendering layer.
type AnimationPhase int

const (
	AnimationIdle AnimationPhase = iota
	AnimationDragging
	AnimationCommitting
	AnimationSettling
)

var animationPhaseNames = map[AnimationPhase]string{
	AnimationIdle:       "idle",
	AnimationDragging:   "dragging",
	AnimationCommitting: "committing",
	AnimationSettling:   "settling",
}

func (p AnimationPhase) String() string {
	if name, ok := animationPhaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// MarshalText implements encoding.TextMarshaler.
func (p AnimationPhase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Direction is the horizontal direction of a committed card.
type Direction int

const (
	DirectionLeft  Direction = -1
	DirectionNone  Direction = 0
	DirectionRight Direction = 1
)

// DirectionOf returns the fly-out direction for a decision.
func DirectionOf(d domain.Decision) Direction {
	return Direction(d.Direction())
}

func (d Direction) String() string {
	switch d {
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// AnimationSnapshot is a read-only view of the animation state.
type AnimationSnapshot struct {
	Phase AnimationPhase `json:"phase"`
	// Displacement mirrors the live drag while Dragging.
	Displacement float64 `json:"displacement"`
	// Direction is fixed when Committing begins and kept through Settling.
	Direction Direction `json:"direction"`
	// OffsetX and Rotation are the transform to apply to the top card.
	OffsetX  float64 `json:"offset_x"`
	Rotation float64 `json:"rotation"`
}

// PhaseObserver is notified of every phase change. It is called with the
// state's lock held and must not call back into the AnimationState.
type PhaseObserver func(from, to AnimationPhase)

// AnimationState derives the visual phase from gesture and commit activity.
// The renderer only reads it.
type AnimationState struct {
	mu       sync.Mutex
	snap     AnimationSnapshot
	episode  uint64
	observer PhaseObserver
}

// NewAnimationState creates an idle animation state.
func NewAnimationState(observer PhaseObserver) *AnimationState {
	return &AnimationState{observer: observer}
}

// Snapshot returns the current state.
func (a *AnimationState) Snapshot() AnimationSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snap
}

// Drag shows a card following the pointer. It is ignored while Committing,
// since the direction is fixed until the commit settles.
func (a *AnimationState) Drag(displacement float64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.snap.Phase == AnimationCommitting {
		return false
	}
	a.set(AnimationSnapshot{
		Phase:        AnimationDragging,
		Displacement: displacement,
		OffsetX:      displacement,
		Rotation:     displacement / DragRotationDivisor,
	})
	return true
}

// Revert snaps a dragged card back after a cancelled gesture.
// It only acts on the Dragging phase.
func (a *AnimationState) Revert() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.snap.Phase != AnimationDragging {
		return false
	}
	a.set(AnimationSnapshot{})
	return true
}

// Commit starts the fly-out in the given direction.
func (a *AnimationState) Commit(dir Direction) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.set(AnimationSnapshot{
		Phase:     AnimationCommitting,
		Direction: dir,
		OffsetX:   float64(dir) * FlyOutOffset,
		Rotation:  float64(dir) * FlyOutRotation,
	})
}

// Settle moves a committed card into the settling phase and returns a token
// identifying this settling episode for FinishSettle. Outside Committing it
// returns 0 and changes nothing.
func (a *AnimationState) Settle() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.snap.Phase != AnimationCommitting {
		return 0
	}
	a.episode++
	next := a.snap
	next.Phase = AnimationSettling
	a.set(next)
	return a.episode
}

// FinishSettle returns to Idle if the state is still in the settling episode
// identified by token. A drag that started during Settling is left alone.
func (a *AnimationState) FinishSettle(token uint64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if token == 0 || a.snap.Phase != AnimationSettling || a.episode != token {
		return false
	}
	a.set(AnimationSnapshot{})
	return true
}

func (a *AnimationState) set(next AnimationSnapshot) {
	prev := a.snap.Phase
	a.snap = next
	if a.observer != nil && prev != next.Phase {
		a.observer(prev, next.Phase)
	}
}
