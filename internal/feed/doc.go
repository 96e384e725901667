// Package feed implements the gesture-driven decision engine behind the
// discovery feed.
//
// Raw pointer or touch input is tracked by a GestureTracker, the finished
// displacement is classified by a SwipeClassifier, and a committed decision is
// handed to the CommitCoordinator, which submits it to the backend, pops the
// candidate from the CardQueue and settles the AnimationState. At most one
// decision is in flight at any time; input that arrives while a commit holds
// the lock is discarded.
//
// Engine is the facade used by the rendering layer. All of its input methods
// are synchronous; the only asynchronous step is the backend submission, whose
// result is delivered on the channel returned by OnPointerUp and
// OnButtonDecision.
package feed
