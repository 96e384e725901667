package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/phrazzld/swipefeed/internal/config"
	"github.com/phrazzld/swipefeed/internal/feed"
	"github.com/phrazzld/swipefeed/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend serves a fixed feed and counts decision requests.
type fakeBackend struct {
	*httptest.Server
	decisions atomic.Int32
	failFeed  atomic.Bool
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{}
	mux := http.NewServeMux()
	mux.HandleFunc("/feed", func(w http.ResponseWriter, r *http.Request) {
		if fb.failFeed.Load() {
			http.Error(w, "down", http.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, `{"users":[{"_id":"u1","name":"Ada"},{"_id":"u2","first_name":"Linus"}]}`)
	})
	mux.HandleFunc("/request/send/", func(w http.ResponseWriter, r *http.Request) {
		fb.decisions.Add(1)
		_, _ = io.WriteString(w, `{"message":"sent"}`)
	})
	fb.Server = httptest.NewServer(mux)
	t.Cleanup(fb.Close)
	return fb
}

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 0, LogLevel: "debug"},
		Backend: config.BackendConfig{
			BaseURL:        baseURL,
			Timeout:        time.Second,
			MaxRetries:     0,
			RetryBaseDelay: time.Millisecond,
		},
		Feed: config.FeedConfig{
			SwipeThreshold:       100,
			WindowSize:           3,
			SettleDuration:       0,
			NotificationCapacity: 5,
		},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewApplicationLoadsFeed(t *testing.T) {
	fb := newFakeBackend(t)

	app, err := newApplication(context.Background(), testConfig(fb.URL), testLogger())
	require.NoError(t, err)
	t.Cleanup(app.cleanup)

	status, _ := app.engine.Status()
	assert.Equal(t, feed.StatusReady, status)
	assert.Equal(t, 2, app.engine.Len())
}

func TestNewApplicationSurvivesFailedLoad(t *testing.T) {
	fb := newFakeBackend(t)
	fb.failFeed.Store(true)

	app, err := newApplication(context.Background(), testConfig(fb.URL), testLogger())
	require.NoError(t, err, "a failed first load is not fatal")
	t.Cleanup(app.cleanup)

	status, loadErr := app.engine.Status()
	assert.Equal(t, feed.StatusLoadFailed, status)
	assert.Error(t, loadErr)
	assert.Zero(t, app.engine.Len())

	toasts := app.inbox.Drain()
	require.Len(t, toasts, 1)
	assert.Equal(t, notify.MessageLoadFailed, toasts[0].Message)
}

func TestNewApplicationRejectsBadBackendURL(t *testing.T) {
	_, err := newApplication(context.Background(), testConfig("ftp://example.com"), testLogger())
	assert.Error(t, err)
}

func TestRouterEndToEnd(t *testing.T) {
	fb := newFakeBackend(t)
	app, err := newApplication(context.Background(), testConfig(fb.URL), testLogger())
	require.NoError(t, err)
	t.Cleanup(app.cleanup)

	srv := httptest.NewServer(app.setupRouter())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))

	resp, err = http.Post(srv.URL+"/api/feed/decisions", "application/json", strings.NewReader(`{"decision":"interested"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
	var decision struct {
		CandidateID string `json:"candidate_id"`
		Resolved    bool   `json:"resolved"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decision))
	_ = resp.Body.Close()
	assert.Equal(t, "u1", decision.CandidateID)
	assert.True(t, decision.Resolved)
	assert.Equal(t, int32(1), fb.decisions.Load())

	resp, err = http.Get(srv.URL + "/api/notifications")
	require.NoError(t, err)
	var notes struct {
		Notifications []notify.Toast `json:"notifications"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&notes))
	_ = resp.Body.Close()
	require.Len(t, notes.Notifications, 1)
	assert.Equal(t, notify.MessageLiked, notes.Notifications[0].Message)
}

func TestStartHTTPServerShutsDownOnCancel(t *testing.T) {
	fb := newFakeBackend(t)

	// Reserve a free port for the server.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	cfg := testConfig(fb.URL)
	cfg.Server.Port = port
	app, err := newApplication(context.Background(), cfg, testLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	assert.Eventually(t, func() bool {
		resp, err := http.Get("http://127.0.0.1:" + strconv.Itoa(port) + "/health")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
