package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/swipefeed/internal/domain"
)

// SubmitCall records one SubmitDecision invocation.
type SubmitCall struct {
	Decision    domain.Decision
	CandidateID string
}

// MockSubmitter implements feed.Submitter for testing.
type MockSubmitter struct {
	// Custom behavior function
	SubmitDecisionFn func(ctx context.Context, decision domain.Decision, candidateID string) error

	// Default response value
	Err error

	mu    sync.Mutex
	calls []SubmitCall
}

// SubmitDecision implements the feed.Submitter interface.
func (m *MockSubmitter) SubmitDecision(ctx context.Context, decision domain.Decision, candidateID string) error {
	m.mu.Lock()
	m.calls = append(m.calls, SubmitCall{Decision: decision, CandidateID: candidateID})
	m.mu.Unlock()

	if m.SubmitDecisionFn != nil {
		return m.SubmitDecisionFn(ctx, decision, candidateID)
	}
	return m.Err
}

// Calls returns a copy of the recorded calls in invocation order.
func (m *MockSubmitter) Calls() []SubmitCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]SubmitCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns the number of SubmitDecision calls.
func (m *MockSubmitter) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// BlockingSubmitter returns a MockSubmitter whose calls block until release
// is closed, and a channel that receives the candidate ID of every call as it
// starts. It lets tests hold a commit in flight.
func BlockingSubmitter(err error) (m *MockSubmitter, started <-chan string, release chan<- struct{}) {
	startedCh := make(chan string, 16)
	releaseCh := make(chan struct{})

	m = &MockSubmitter{
		SubmitDecisionFn: func(ctx context.Context, decision domain.Decision, candidateID string) error {
			startedCh <- candidateID
			<-releaseCh
			return err
		},
	}
	return m, startedCh, releaseCh
}
