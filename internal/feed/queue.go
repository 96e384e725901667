package feed

import (
	"errors"
	"sync"

	"github.com/phrazzld/swipefeed/internal/domain"
)

// DefaultWindowSize is the number of cards rendered at once.
const DefaultWindowSize = 3

// ErrEmptyQueue is returned by PopFront when there is no candidate to remove.
var ErrEmptyQueue = errors.New("candidate queue is empty")

// CardQueue is the ordered set of candidates waiting for a decision.
//
// Candidates enter only at the tail (Append) and leave only at the head
// (PopFront). IDs are unique across the lifetime of the queue: a candidate
// that was already queued or consumed is never inserted again.
type CardQueue struct {
	mu         sync.RWMutex
	items      []domain.Candidate
	seen       map[string]struct{}
	windowSize int
}

// NewCardQueue creates an empty queue with the given visible window size.
// Non-positive sizes fall back to DefaultWindowSize.
func NewCardQueue(windowSize int) *CardQueue {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	return &CardQueue{
		seen:       make(map[string]struct{}),
		windowSize: windowSize,
	}
}

// Append adds candidates at the tail in the given order and returns how many
// were accepted. Invalid candidates and IDs the queue has already seen are
// skipped.
func (q *CardQueue) Append(candidates ...domain.Candidate) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	added := 0
	for _, c := range candidates {
		if c.Validate() != nil {
			continue
		}
		if _, dup := q.seen[c.ID]; dup {
			continue
		}
		q.seen[c.ID] = struct{}{}
		q.items = append(q.items, cloneCandidate(c))
		added++
	}
	return added
}

// PeekTop returns the head of the queue without removing it.
func (q *CardQueue) PeekTop() (domain.Candidate, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if len(q.items) == 0 {
		return domain.Candidate{}, false
	}
	return cloneCandidate(q.items[0]), true
}

// PopFront removes and returns the head of the queue.
func (q *CardQueue) PopFront() (domain.Candidate, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return domain.Candidate{}, ErrEmptyQueue
	}

	head := q.items[0]
	q.items[0] = domain.Candidate{}
	q.items = q.items[1:]
	return head, nil
}

// VisibleWindow returns up to the window size of candidates from the head,
// top card first. The result is a copy.
func (q *CardQueue) VisibleWindow() []domain.Candidate {
	q.mu.RLock()
	defer q.mu.RUnlock()

	n := len(q.items)
	if n > q.windowSize {
		n = q.windowSize
	}
	out := make([]domain.Candidate, n)
	for i := 0; i < n; i++ {
		out[i] = cloneCandidate(q.items[i])
	}
	return out
}

// Len returns the number of queued candidates.
func (q *CardQueue) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.items)
}

// IDs returns the queued candidate IDs in order.
func (q *CardQueue) IDs() []string {
	q.mu.RLock()
	defer q.mu.RUnlock()

	ids := make([]string, len(q.items))
	for i, c := range q.items {
		ids[i] = c.ID
	}
	return ids
}

func cloneCandidate(c domain.Candidate) domain.Candidate {
	if c.Skills != nil {
		c.Skills = append([]string(nil), c.Skills...)
	}
	return c
}
