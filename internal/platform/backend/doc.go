// Package backend is the HTTP client for the social backend that serves
// candidate profiles and records interested/ignored decisions.
//
// The client satisfies feed.Fetcher and feed.Submitter. It attaches the
// configured bearer token, refuses to send a JWT that has already expired,
// and retries transport failures and 5xx responses with exponential backoff.
package backend
