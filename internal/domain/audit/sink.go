package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Sink receives batches of audit entries for external persistence.
type Sink interface {
	Publish(ctx context.Context, entries []Entry) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, entries []Entry) error

func (f SinkFunc) Publish(ctx context.Context, entries []Entry) error {
	return f(ctx, entries)
}

// HTTPSink posts entry batches to an audit collection endpoint as
// {"entries": [...]}.
type HTTPSink struct {
	url        string
	httpClient *http.Client
}

// NewHTTPSink creates a sink targeting the given URL.
func NewHTTPSink(url string) *HTTPSink {
	return &HTTPSink{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *HTTPSink) Publish(ctx context.Context, entries []Entry) error {
	payload, err := json.Marshal(map[string]any{"entries": entries})
	if err != nil {
		return fmt.Errorf("encode audit batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build audit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post audit batch: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("audit endpoint returned %d", resp.StatusCode)
	}
	return nil
}

// LogSink writes entries to the structured log. Used in development when no
// external collector is configured.
type LogSink struct {
	logger zerolog.Logger
}

// NewLogSink creates a sink that logs each entry.
func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Publish(_ context.Context, entries []Entry) error {
	for _, e := range entries {
		s.logger.Info().
			Str("type", "audit").
			Str("audit_id", e.ID).
			Str("action", e.Action).
			Str("session_id", e.SessionID).
			Time("recorded_at", e.Timestamp).
			Interface("data", e.Data).
			Msg("audit_entry")
	}
	return nil
}
