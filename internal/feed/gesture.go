package feed

// GesturePhase is the lifecycle phase of a drag.
type GesturePhase int

const (
	GestureIdle GesturePhase = iota
	GestureDragging
)

// GestureSample is the transient state of the current drag.
type GestureSample struct {
	OriginX  float64
	CurrentX float64
	Phase    GesturePhase
}

// Displacement is the signed horizontal distance travelled since the drag began.
func (s GestureSample) Displacement() float64 {
	return s.CurrentX - s.OriginX
}

// GestureTracker turns pointer or touch positions into a horizontal
// displacement and a start/move/end lifecycle. It never touches the queue or
// the network. It is not safe for concurrent use; Engine serializes access.
type GestureTracker struct {
	sample   GestureSample
	canStart func() bool
}

// NewGestureTracker creates a tracker. canStart is consulted on every Start and
// must report false while a commit holds the lock; nil allows every start.
func NewGestureTracker(canStart func() bool) *GestureTracker {
	return &GestureTracker{canStart: canStart}
}

// Start begins a drag at x. It returns false, leaving the state untouched, when
// a drag already owns the pointer or the start gate is closed.
func (g *GestureTracker) Start(x float64) bool {
	if g.sample.Phase == GestureDragging {
		return false
	}
	if g.canStart != nil && !g.canStart() {
		return false
	}

	g.sample = GestureSample{OriginX: x, CurrentX: x, Phase: GestureDragging}
	return true
}

// Move records the pointer at x and returns the running displacement.
// It is a no-op returning false unless a drag is active.
func (g *GestureTracker) Move(x float64) (float64, bool) {
	if g.sample.Phase != GestureDragging {
		return 0, false
	}

	g.sample.CurrentX = x
	return g.sample.Displacement(), true
}

// End finishes the drag and returns its final displacement. The tracker is
// back to idle afterwards. It is a no-op returning false unless a drag is active.
func (g *GestureTracker) End() (float64, bool) {
	if g.sample.Phase != GestureDragging {
		return 0, false
	}

	d := g.sample.Displacement()
	g.Reset()
	return d, true
}

// Reset abandons any drag in progress.
func (g *GestureTracker) Reset() {
	g.sample = GestureSample{}
}

// Dragging reports whether a drag is active.
func (g *GestureTracker) Dragging() bool {
	return g.sample.Phase == GestureDragging
}

// Sample returns a copy of the current gesture state.
func (g *GestureTracker) Sample() GestureSample {
	return g.sample
}
