package audit

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultCapacity      = 256
	defaultBatchSize     = 10
	defaultFlushInterval = time.Minute
	defaultMaxAttempts   = 3
	defaultBackoffBase   = time.Second
)

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithCapacity bounds the in-memory queue. When full, the oldest entry is
// dropped to admit the new one.
func WithCapacity(n int) RecorderOption {
	return func(r *Recorder) { r.capacity = n }
}

// WithBatchSize sets how many queued entries trigger an immediate flush.
func WithBatchSize(n int) RecorderOption {
	return func(r *Recorder) { r.batchSize = n }
}

// WithFlushInterval sets the periodic flush cadence.
func WithFlushInterval(d time.Duration) RecorderOption {
	return func(r *Recorder) { r.flushInterval = d }
}

// WithMaxAttempts sets how many publish attempts a batch gets before being
// dropped.
func WithMaxAttempts(n int) RecorderOption {
	return func(r *Recorder) { r.maxAttempts = n }
}

// Recorder queues audit entries and flushes them to a Sink in batches, on a
// fixed interval and whenever the batch size is reached. Failed publishes
// are retried with exponential backoff a bounded number of times, then the
// batch is dropped with an error log; entries are never re-queued forever.
type Recorder struct {
	sink          Sink
	logger        zerolog.Logger
	capacity      int
	batchSize     int
	flushInterval time.Duration
	maxAttempts   int
	backoffBase   time.Duration

	mu    sync.Mutex
	queue []Entry

	nudge chan struct{}
	stop  chan struct{}
	done  chan struct{}
}

// NewRecorder creates a recorder publishing to sink. Call Start to begin the
// flush loop and Close to drain on shutdown.
func NewRecorder(sink Sink, logger zerolog.Logger, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		sink:          sink,
		logger:        logger,
		capacity:      defaultCapacity,
		batchSize:     defaultBatchSize,
		flushInterval: defaultFlushInterval,
		maxAttempts:   defaultMaxAttempts,
		backoffBase:   defaultBackoffBase,
		nudge:         make(chan struct{}, 1),
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Record queues one entry. It never blocks: when the queue is at capacity
// the oldest entry is dropped.
func (r *Recorder) Record(action, sessionID string, data map[string]any) {
	entry := NewEntry(action, sessionID, data)

	r.mu.Lock()
	if len(r.queue) >= r.capacity {
		dropped := r.queue[0]
		r.queue = r.queue[1:]
		r.logger.Warn().Str("action", dropped.Action).Msg("audit queue full, dropping oldest entry")
	}
	r.queue = append(r.queue, entry)
	full := len(r.queue) >= r.batchSize
	r.mu.Unlock()

	if full {
		select {
		case r.nudge <- struct{}{}:
		default:
		}
	}
}

// Pending reports how many entries are queued but not yet flushed.
func (r *Recorder) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queue)
}

// Start launches the flush loop.
func (r *Recorder) Start() {
	go func() {
		defer close(r.done)
		ticker := time.NewTicker(r.flushInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.Flush(context.Background())
			case <-r.nudge:
				r.Flush(context.Background())
			case <-r.stop:
				r.Flush(context.Background())
				return
			}
		}
	}()
}

// Close stops the flush loop after a final drain.
func (r *Recorder) Close() {
	close(r.stop)
	<-r.done
}

// Flush publishes everything currently queued, in batches. Batches that
// exhaust their attempts are dropped.
func (r *Recorder) Flush(ctx context.Context) {
	r.mu.Lock()
	pending := r.queue
	r.queue = nil
	r.mu.Unlock()

	for len(pending) > 0 {
		n := r.batchSize
		if n > len(pending) {
			n = len(pending)
		}
		batch := pending[:n]
		pending = pending[n:]

		if err := r.publishWithRetry(ctx, batch); err != nil {
			r.logger.Error().Err(err).Int("dropped", len(batch)).Msg("audit batch dropped after retries")
		}
	}
}

func (r *Recorder) publishWithRetry(ctx context.Context, batch []Entry) error {
	var err error
	backoff := r.backoffBase
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		err = r.sink.Publish(ctx, batch)
		if err == nil {
			return nil
		}
		if attempt == r.maxAttempts {
			break
		}
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
		backoff *= 2
	}
	return err
}
