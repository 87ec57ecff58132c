package terminology

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// ErrUnavailable reports that the peer terminology service could not be
// reached or answered with a non-success status. It is distinct from an
// empty result set: callers must never mistake connectivity failure for
// "no matches".
var ErrUnavailable = errors.New("terminology service unavailable")

// RemoteClient queries a peer terminology service over HTTP.
type RemoteClient struct {
	baseURL    string
	httpClient *http.Client
}

// RemoteOption configures a RemoteClient.
type RemoteOption func(*RemoteClient)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) RemoteOption {
	return func(r *RemoteClient) { r.httpClient = c }
}

// NewRemoteClient creates a client for the service rooted at baseURL.
func NewRemoteClient(baseURL string, opts ...RemoteOption) *RemoteClient {
	c := &RemoteClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Search issues GET /api/search?query= against the peer service. The context
// cancels the request, so a caller superseding an in-flight query can abandon
// it without racing a stale response. Transport and non-2xx failures are
// wrapped in ErrUnavailable.
func (c *RemoteClient) Search(ctx context.Context, query string) ([]SearchResult, error) {
	u := fmt.Sprintf("%s/api/search?query=%s", c.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var results []SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return results, nil
}

// Debouncer coalesces rapid-fire queries so that only the last one inside
// the delay window is dispatched. Each Trigger cancels the context handed to
// the previous pending call, so superseded in-flight work can be abandoned.
type Debouncer struct {
	delay time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	cancel context.CancelFunc
}

// NewDebouncer creates a debouncer with the given window. A zero delay
// defaults to 300ms.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = 300 * time.Millisecond
	}
	return &Debouncer{delay: delay}
}

// Trigger schedules fn to run after the debounce window, replacing any
// previously scheduled call. fn receives a context that is cancelled when a
// newer Trigger supersedes it or Stop is called.
func (d *Debouncer) Trigger(fn func(ctx context.Context)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	if d.cancel != nil {
		d.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.timer = time.AfterFunc(d.delay, func() { fn(ctx) })
}

// Stop cancels any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}
