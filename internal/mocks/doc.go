// Package mocks provides shared test doubles for the feed's collaborators.
//
// MockFetcher and MockSubmitter stand in for the backend client behind the
// feed.Fetcher and feed.Submitter interfaces. Both take an optional function
// field for custom behavior and otherwise return their default values:
//
//	submitter := &mocks.MockSubmitter{
//	    SubmitDecisionFn: func(ctx context.Context, d domain.Decision, id string) error {
//	        return errors.New("backend unavailable")
//	    },
//	}
//
// BlockingSubmitter holds a submission open until the test releases it,
// which is how tests observe the single-commit lock.
package mocks
