package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/phrazzld/swipefeed/internal/config"
	"github.com/phrazzld/swipefeed/internal/domain"
	"github.com/phrazzld/swipefeed/internal/platform/logger"
	"github.com/phrazzld/swipefeed/internal/redact"
	"github.com/sethvargo/go-retry"
)

const (
	defaultTimeout        = 10 * time.Second
	defaultRetryBaseDelay = 200 * time.Millisecond

	// maxErrorBody bounds how much of a failed response is kept for errors.
	maxErrorBody = 512

	feedPath = "feed"
)

// Client talks to the backend over HTTP.
type Client struct {
	baseURL        *url.URL
	token          string
	httpClient     *http.Client
	maxRetries     uint64
	retryBaseDelay time.Duration
	logger         *slog.Logger
	now            func() time.Time
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its Timeout is kept as is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithClock overrides the clock used for the token expiry check.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// NewClient builds a client from the backend configuration.
func NewClient(cfg config.BackendConfig, log *slog.Logger, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("backend base URL cannot be empty")
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid backend base URL scheme %q", base.Scheme)
	}
	// Relative endpoints resolve under the base path.
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	delay := cfg.RetryBaseDelay
	if delay <= 0 {
		delay = defaultRetryBaseDelay
	}
	if log == nil {
		log = slog.Default()
	}

	c := &Client{
		baseURL:        base,
		token:          strings.TrimSpace(cfg.Token),
		httpClient:     &http.Client{Timeout: timeout},
		maxRetries:     cfg.MaxRetries,
		retryBaseDelay: delay,
		logger:         log.With(slog.String("component", "backend_client")),
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// userDTO is a profile as the backend serializes it.
type userDTO struct {
	ID        string   `json:"_id"`
	Name      string   `json:"name"`
	FirstName string   `json:"first_name"`
	PhotoURL  string   `json:"photoUrl"`
	Skills    []string `json:"skills"`
	Bio       string   `json:"bio"`
	About     string   `json:"about"`
	Location  string   `json:"location"`
}

type feedResponse struct {
	Users []userDTO `json:"users"`
}

func (u userDTO) toDomain() domain.Candidate {
	return domain.Candidate{
		ID:        u.ID,
		Name:      u.Name,
		FirstName: u.FirstName,
		PhotoURL:  u.PhotoURL,
		Skills:    u.Skills,
		Bio:       u.Bio,
		About:     u.About,
		Location:  u.Location,
	}
}

// FetchCandidates loads the next batch of profiles. Profiles that fail
// validation are dropped and logged; the order of the rest is preserved.
func (c *Client) FetchCandidates(ctx context.Context) ([]domain.Candidate, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	var resp feedResponse
	if err := c.do(ctx, http.MethodGet, feedPath, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	candidates := make([]domain.Candidate, 0, len(resp.Users))
	for _, u := range resp.Users {
		candidate := u.toDomain()
		if err := candidate.Validate(); err != nil {
			log.Warn("dropping invalid candidate from feed",
				slog.String("candidate_id", u.ID),
				slog.String("error", err.Error()))
			continue
		}
		candidates = append(candidates, candidate)
	}

	log.Debug("feed fetched",
		slog.Int("received", len(resp.Users)),
		slog.Int("accepted", len(candidates)))
	return candidates, nil
}

// SubmitDecision records decision for the candidate with the given ID.
func (c *Client) SubmitDecision(ctx context.Context, decision domain.Decision, candidateID string) error {
	if !decision.Valid() {
		return fmt.Errorf("%w: %d", domain.ErrInvalidDecision, int(decision))
	}
	if strings.TrimSpace(candidateID) == "" {
		return domain.NewValidationError("candidate_id", "cannot be empty", domain.ErrInvalidID)
	}

	path := "request/send/" + url.PathEscape(decision.String()) + "/" + url.PathEscape(candidateID)
	if err := c.do(ctx, http.MethodPost, path, nil); err != nil {
		return fmt.Errorf("failed to send %s request: %w", decision, err)
	}
	return nil
}

// do performs a request with retries and decodes a JSON body into out when
// out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, out interface{}) error {
	if err := c.checkToken(); err != nil {
		return err
	}

	ref, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("invalid request path %q: %w", path, err)
	}
	endpoint := c.baseURL.ResolveReference(ref).String()

	log := logger.FromContextOrDefault(ctx, c.logger).With(
		slog.String("method", method),
		slog.String("path", path))

	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(c.retryBaseDelay))
	attempt := 0
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := c.once(ctx, method, endpoint, out)
		if err == nil {
			return nil
		}
		if shouldRetry(err) {
			log.Warn("backend call failed, retrying",
				slog.Int("attempt", attempt),
				slog.String("error", redact.Error(err)))
			return retry.RetryableError(err)
		}
		return err
	})
}

func (c *Client) once(ctx context.Context, method, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
			Err:        statusSentinel(resp.StatusCode),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

// checkToken rejects a JWT whose expiry has passed. Opaque tokens and JWTs
// without an exp claim are sent unchecked; the backend verifies signatures.
func (c *Client) checkToken() error {
	if c.token == "" {
		return nil
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(c.token, &claims); err != nil {
		return nil
	}
	if claims.ExpiresAt != nil && !c.now().Before(claims.ExpiresAt.Time) {
		return ErrTokenExpired
	}
	return nil
}

func statusSentinel(code int) error {
	switch code {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	default:
		return ErrUnexpectedStatus
	}
}

// shouldRetry reports whether a failed attempt may succeed if repeated.
// Cancellation, client errors and undecodable bodies are permanent.
func shouldRetry(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	return !errors.Is(err, ErrInvalidResponse)
}
