package feed

import (
	"math"

	"github.com/phrazzld/swipefeed/internal/domain"
)

// DefaultSwipeThreshold is the horizontal distance a drag must exceed to commit.
const DefaultSwipeThreshold = 100.0

// SwipeClassifier maps a finished drag displacement to a decision.
// It is a pure value type and safe for concurrent use.
type SwipeClassifier struct {
	threshold float64
}

// NewSwipeClassifier returns a classifier with the given threshold. Non-positive
// or non-finite thresholds fall back to DefaultSwipeThreshold.
func NewSwipeClassifier(threshold float64) SwipeClassifier {
	if !(threshold > 0) || math.IsInf(threshold, 1) {
		threshold = DefaultSwipeThreshold
	}
	return SwipeClassifier{threshold: threshold}
}

// Threshold returns the commit threshold.
func (c SwipeClassifier) Threshold() float64 {
	return c.threshold
}

// Classify returns the decision for a displacement. The boolean is false when
// the swipe is cancelled, i.e. |displacement| <= threshold (NaN included).
// Rightward swipes are Interested, leftward swipes are Ignored.
func (c SwipeClassifier) Classify(displacement float64) (domain.Decision, bool) {
	switch {
	case displacement > c.threshold:
		return domain.DecisionInterested, true
	case displacement < -c.threshold:
		return domain.DecisionIgnored, true
	default:
		return 0, false
	}
}
