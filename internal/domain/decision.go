package domain

import (
	"fmt"
	"strings"
)

// Decision is the committed outcome of a swipe.
type Decision int

// Possible decisions. The zero value is deliberately invalid so an
// uninitialized Decision is never mistaken for a real choice.
const (
	DecisionInterested Decision = iota + 1
	DecisionIgnored
)

// Wire values understood by the backend.
const (
	statusInterested = "interested"
	statusIgnored    = "ignored"
)

// ParseDecision converts a wire value ("interested" or "ignored") into a
// Decision. Matching is case-insensitive and ignores surrounding whitespace.
func ParseDecision(s string) (Decision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case statusInterested:
		return DecisionInterested, nil
	case statusIgnored:
		return DecisionIgnored, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidDecision, s)
	}
}

// String returns the wire value of the decision.
func (d Decision) String() string {
	switch d {
	case DecisionInterested:
		return statusInterested
	case DecisionIgnored:
		return statusIgnored
	default:
		return fmt.Sprintf("decision(%d)", int(d))
	}
}

// Valid reports whether d is one of the known decisions.
func (d Decision) Valid() bool {
	return d == DecisionInterested || d == DecisionIgnored
}

// Direction returns the horizontal direction associated with the decision:
// +1 for Interested (right), -1 for Ignored (left), 0 otherwise.
func (d Decision) Direction() int {
	switch d {
	case DecisionInterested:
		return 1
	case DecisionIgnored:
		return -1
	default:
		return 0
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Decision) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDecision, int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Decision) UnmarshalText(text []byte) error {
	parsed, err := ParseDecision(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
