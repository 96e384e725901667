package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/swipefeed/internal/domain"
)

// MockFetcher implements feed.Fetcher for testing.
type MockFetcher struct {
	// Custom behavior function
	FetchCandidatesFn func(ctx context.Context) ([]domain.Candidate, error)

	// Default response values
	Candidates []domain.Candidate
	Err        error

	mu    sync.Mutex
	count int
}

// FetchCandidates implements the feed.Fetcher interface.
func (m *MockFetcher) FetchCandidates(ctx context.Context) ([]domain.Candidate, error) {
	m.mu.Lock()
	m.count++
	m.mu.Unlock()

	if m.FetchCandidatesFn != nil {
		return m.FetchCandidatesFn(ctx)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Candidates, nil
}

// CallCount returns the number of FetchCandidates calls.
func (m *MockFetcher) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count
}

// Candidates builds minimal valid candidates with the given IDs.
func Candidates(ids ...string) []domain.Candidate {
	out := make([]domain.Candidate, len(ids))
	for i, id := range ids {
		out[i] = domain.Candidate{ID: id, Name: "Candidate " + id}
	}
	return out
}
