package jobs

import (
	"context"
	"fmt"
	"sync"

	"github.com/pverdier/rentiva-api/pkg/logger"
)

// Job represents a background task
type Job func(ctx context.Context) error

// Worker manages background jobs and bounded parallel fan-outs.
type Worker struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	queue  chan Job
	sem    chan struct{}
}

// NewWorker creates a worker with n concurrent processors. n also bounds
// RunAll fan-outs.
func NewWorker(n int) *Worker {
	if n < 1 {
		n = 1
	}
	ctx, cancel := context.WithCancel(context.Background())

	w := &Worker{
		ctx:    ctx,
		cancel: cancel,
		queue:  make(chan Job, 64),
		sem:    make(chan struct{}, n),
	}

	for i := 0; i < n; i++ {
		w.wg.Add(1)
		go w.process(i)
	}

	return w
}

// Enqueue adds a fire-and-forget job to the pool. A full queue degrades to
// running the job synchronously rather than dropping it.
func (w *Worker) Enqueue(job Job) {
	select {
	case w.queue <- job:
	default:
		logger.Warn("[Worker] Queue full, running job synchronously")
		if err := job(w.ctx); err != nil {
			logger.Error(fmt.Sprintf("[Worker] Job error: %v", err))
		}
	}
}

// RunAll executes every job in parallel, bounded by the pool size, and waits
// for all of them. The returned slice has one entry per job, in job order
// (nil for success), so callers can map failures back to their inputs.
func (w *Worker) RunAll(ctx context.Context, jobs []Job) []error {
	errs := make([]error, len(jobs))
	var g sync.WaitGroup

	for i, job := range jobs {
		g.Add(1)
		go func(i int, job Job) {
			defer g.Done()
			w.sem <- struct{}{}
			defer func() { <-w.sem }()

			defer func() {
				if r := recover(); r != nil {
					logger.Error(fmt.Sprintf("[Worker] Job panic: %v", r))
					errs[i] = fmt.Errorf("job panic: %v", r)
				}
			}()

			select {
			case <-ctx.Done():
				errs[i] = ctx.Err()
			default:
				errs[i] = job(ctx)
			}
		}(i, job)
	}

	g.Wait()
	return errs
}

// process handles jobs from the queue
func (w *Worker) process(workerID int) {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case job, ok := <-w.queue:
			if !ok {
				return
			}
			if err := job(w.ctx); err != nil {
				logger.Error(fmt.Sprintf("[Worker %d] Job error: %v", workerID, err))
			}
		}
	}
}

// Shutdown gracefully stops all workers
func (w *Worker) Shutdown() {
	w.cancel()
	close(w.queue)
	w.wg.Wait()
}
