package logger

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"sync"
	"testing"
)

// LogEntry is one decoded JSON log record.
type LogEntry map[string]any

// TestLogBuffer collects JSON log output so tests can assert on records.
// It is safe for concurrent writers.
type TestLogBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// Write implements io.Writer.
func (b *TestLogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// Entries decodes every record written so far, failing the test on a line
// that is not JSON.
func (b *TestLogBuffer) Entries(t testing.TB) []LogEntry {
	t.Helper()

	b.mu.Lock()
	raw := bytes.Clone(b.buf.Bytes())
	b.mu.Unlock()

	var entries []LogEntry
	sc := bufio.NewScanner(bytes.NewReader(raw))
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var entry LogEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			t.Fatalf("log line is not JSON: %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

// Last returns the most recent record, failing the test when nothing was
// logged.
func (b *TestLogBuffer) Last(t testing.TB) LogEntry {
	t.Helper()

	entries := b.Entries(t)
	if len(entries) == 0 {
		t.Fatal("no log records written")
	}
	return entries[len(entries)-1]
}

// NewTestLogger returns a debug-level JSON logger writing into a fresh
// buffer. It leaves slog.Default() alone.
func NewTestLogger(t testing.TB) (*TestLogBuffer, *slog.Logger) {
	t.Helper()

	buf := &TestLogBuffer{}
	return buf, slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
