// Package async serializes organize passes triggered from watch mode.
package async

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrQueueClosed = errors.New("queue is shutting down")

// Job asks for one organize pass.
type Job struct {
	Trigger     string   // what caused the pass, for logs
	Paths       []string // changed paths, if known
	SubmittedAt time.Time
	TraceID     string
}

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context)
}

// PassFunc runs one organize pass.
type PassFunc func(ctx context.Context, job Job)

// PassQueue runs passes one at a time on a single worker. At most one job
// waits behind the running pass; later submissions coalesce into it, since a
// pass always picks up every file present in the input directory.
type PassQueue struct {
	run     PassFunc
	logger  *slog.Logger
	timeout time.Duration

	ch   chan Job
	wg   sync.WaitGroup
	once sync.Once

	mu     sync.Mutex
	closed bool
}

type Option func(*PassQueue)

// WithPassTimeout bounds each pass; zero means no bound.
func WithPassTimeout(d time.Duration) Option {
	return func(q *PassQueue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

func NewPassQueue(run PassFunc, logger *slog.Logger, opts ...Option) *PassQueue {
	if logger == nil {
		logger = slog.Default()
	}
	q := &PassQueue{
		run:    run,
		logger: logger,
		ch:     make(chan Job, 1),
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *PassQueue) start() {
	q.once.Do(func() {
		q.wg.Add(1)
		go func() {
			defer q.wg.Done()
			q.logger.Debug("pass worker started")
			for job := range q.ch {
				ctx, cancel := context.Background(), context.CancelFunc(func() {})
				if q.timeout > 0 {
					ctx, cancel = context.WithTimeout(ctx, q.timeout)
				}
				start := time.Now()
				q.run(ctx, job)
				cancel()
				q.logger.Debug("pass finished", "trace_id", job.TraceID, "trigger", job.Trigger,
					"duration_ms", time.Since(start).Milliseconds())
			}
			q.logger.Debug("pass worker stopped")
		}()
	})
}

// Enqueue schedules a pass unless one is already waiting.
func (q *PassQueue) Enqueue(_ context.Context, job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.logger.Warn("cannot enqueue: queue is shutting down", "trigger", job.Trigger)
		return ErrQueueClosed
	}
	if job.TraceID == "" {
		job.TraceID = uuid.NewString()
	}
	if job.SubmittedAt.IsZero() {
		job.SubmittedAt = time.Now()
	}
	select {
	case q.ch <- job:
		q.logger.Debug("pass queued", "trace_id", job.TraceID, "trigger", job.Trigger, "paths", len(job.Paths))
	default:
		q.logger.Debug("pass already pending, coalescing", "trigger", job.Trigger, "paths", len(job.Paths))
	}
	return nil
}

// Shutdown stops accepting jobs and waits for the pending ones to finish or ctx to end.
func (q *PassQueue) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()

	select {
	case <-ctx.Done():
		q.logger.Warn("shutdown interrupted by context")
	case <-done:
		q.logger.Info("queue drained, shutdown complete")
	}
}
