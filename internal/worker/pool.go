// Package worker runs background jobs on a bounded pool. The statement
// exporter uses it to pull several accounts' histories concurrently without
// opening an unbounded number of connections to the API.
package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"vaultguard-client/internal/logging"
)

var (
	ErrQueueFull       = errors.New("worker queue is full")
	ErrShutdownTimeout = errors.New("worker pool shutdown timed out")
)

// Job is one unit of work. Failed network work is never retried here; a
// retry is always an explicit user action.
type Job struct {
	ID     string
	Task   func() error
	OnDone func(error)
}

// Pool manages a fixed set of workers draining a bounded queue.
type Pool struct {
	workers  int
	jobQueue chan Job
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	log      zerolog.Logger

	mu    sync.Mutex
	stats Stats
}

// Stats is a point-in-time snapshot of pool activity.
type Stats struct {
	CompletedJobs int64
	FailedJobs    int64
	QueuedJobs    int
}

func NewPool(workers, queueSize int) *Pool {
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		workers:  workers,
		jobQueue: make(chan Job, queueSize),
		ctx:      ctx,
		cancel:   cancel,
		log:      logging.ForComponent("worker-pool"),
	}
}

// Start launches the workers.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	p.log.Debug().Int("workers", p.workers).Msg("pool started")
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			p.execute(id, job)
		}
	}
}

func (p *Pool) execute(workerID int, job Job) {
	start := time.Now()
	err := job.Task()

	p.mu.Lock()
	if err != nil {
		p.stats.FailedJobs++
	} else {
		p.stats.CompletedJobs++
	}
	p.mu.Unlock()

	if err != nil {
		p.log.Warn().Int("worker", workerID).Str("job", job.ID).
			Dur("took", time.Since(start)).Err(err).Msg("job failed")
	} else {
		p.log.Debug().Int("worker", workerID).Str("job", job.ID).
			Dur("took", time.Since(start)).Msg("job done")
	}

	if job.OnDone != nil {
		job.OnDone(err)
	}
}

// Submit enqueues a job without blocking; a full queue is the caller's
// signal to fall back to doing the work inline.
func (p *Pool) Submit(job Job) error {
	select {
	case <-p.ctx.Done():
		return context.Canceled
	case p.jobQueue <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Shutdown stops accepting jobs and waits for in-flight work, forcing the
// workers down after the timeout.
func (p *Pool) Shutdown(timeout time.Duration) error {
	close(p.jobQueue)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		p.cancel()
		p.log.Warn().Msg("shutdown timeout exceeded, forcing workers down")
		return ErrShutdownTimeout
	}
}

// GetStats returns current pool statistics.
func (p *Pool) GetStats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	stats := p.stats
	stats.QueuedJobs = len(p.jobQueue)
	return stats
}
