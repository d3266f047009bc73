// Package worker runs the pool that drains warm-up jobs into the memo caches.
package worker

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/eplhistory/internal/adapters/mq/queue"
	"github.com/okian/eplhistory/pkg/logger"
	"github.com/okian/eplhistory/pkg/metrics"
)

// Warmer precomputes and caches everything derived from one team.
type Warmer interface {
	Warm(ctx context.Context, team string) error
}

// Source is where workers receive jobs from.
type Source interface {
	Dequeue(ctx context.Context) <-chan queue.Job
}

type worker struct {
	name   string
	pool   *Pool
	logger logger.Logger
	done   chan struct{}
}

func (w *worker) run(ctx context.Context) {
	defer close(w.done)

	jobs := w.pool.source.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.pool.stop:
			return
		case j, ok := <-jobs:
			if !ok {
				return
			}
			w.process(ctx, j)
		}
	}
}

func (w *worker) process(ctx context.Context, j queue.Job) {
	start := time.Now()
	metrics.UpdateWorkerActiveCount(int(w.pool.active.Add(1)))
	defer func() {
		metrics.UpdateWorkerActiveCount(int(w.pool.active.Add(-1)))
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	if err := w.pool.warmer.Warm(ctx, j.Team); err != nil {
		w.pool.failed.Add(1)
		metrics.RecordWorkerError()
		metrics.RecordWarmupJob("error")
		metrics.RecordErrorByComponent("worker", "warm_failed")
		w.logger.Warn(ctx, "warm-up failed", logger.String("team", j.Team), logger.Error(err))
		return
	}
	w.pool.processed.Add(1)
	metrics.RecordWarmupJob("ok")
	w.logger.Debug(ctx, "team warmed", logger.String("team", j.Team))
}

// Pool manages a fixed set of workers reading from one Source.
type Pool struct {
	name    string
	source  Source
	warmer  Warmer
	workers []*worker
	logger  logger.Logger

	stop     chan struct{}
	stopOnce sync.Once

	active    atomic.Int64
	processed atomic.Int64
	failed    atomic.Int64
}

// NewPool creates a pool of n workers; n below 1 is raised to 1.
func NewPool(n int, source Source, warmer Warmer, opts ...Option) *Pool {
	if n < 1 {
		n = 1
	}
	p := &Pool{
		name:   "warmup",
		source: source,
		warmer: warmer,
		stop:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logger.Get().Named("worker-pool")
	}

	p.workers = make([]*worker, n)
	for i := range p.workers {
		name := p.name + "-" + strconv.Itoa(i)
		p.workers[i] = &worker{
			name:   name,
			pool:   p,
			logger: p.logger.With(logger.String("worker", name)),
			done:   make(chan struct{}),
		}
	}
	metrics.UpdateWorkerCount(n)
	metrics.UpdateWorkerActiveCount(0)
	return p
}

// Start launches every worker. Workers exit when ctx is done, the source
// closes or Shutdown gives up waiting.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.run(ctx)
	}
}

// Wait blocks until every worker has exited or ctx is done.
func (p *Pool) Wait(ctx context.Context) error {
	for _, w := range p.workers {
		select {
		case <-w.done:
		case <-ctx.Done():
			return fmt.Errorf("wait for %s: %w", w.name, ctx.Err())
		}
	}
	return nil
}

// Shutdown closes the source when it supports it, lets workers drain what is
// left and forces them to stop once ctx expires.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.source.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}
	err := p.Wait(ctx)
	if err != nil {
		p.logger.Warn(ctx, "worker shutdown timed out", logger.Error(err))
	}
	p.stopOnce.Do(func() { close(p.stop) })
	return err
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Processed returns the number of jobs that warmed successfully.
func (p *Pool) Processed() int64 { return p.processed.Load() }

// Failed returns the number of jobs whose Warm call returned an error.
func (p *Pool) Failed() int64 { return p.failed.Load() }
