package jobs

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

const (
	defaultMaxConcurrent = 4
	defaultJobDeadline   = 15 * time.Minute
)

// Work produces a job's result. The context carries the job deadline; work
// that respects it returns partial or fallback output instead of overrunning.
type Work func(ctx context.Context) (any, error)

// Runner executes job work in background goroutines, bounded by a weighted
// semaphore so a burst of submissions cannot open unbounded provider
// connections. Each job gets its own deadline detached from the submitting
// request, since clients disconnect and poll later.
type Runner struct {
	store    Store
	sem      *semaphore.Weighted
	deadline time.Duration
	wg       sync.WaitGroup
}

// RunnerOptions tunes a Runner. Zero fields fall back to 4 concurrent jobs
// and a 15 minute per-job deadline.
type RunnerOptions struct {
	MaxConcurrent int64
	JobDeadline   time.Duration
}

// NewRunner creates a runner over the given store.
func NewRunner(store Store, opts RunnerOptions) *Runner {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = defaultMaxConcurrent
	}
	if opts.JobDeadline <= 0 {
		opts.JobDeadline = defaultJobDeadline
	}
	return &Runner{
		store:    store,
		sem:      semaphore.NewWeighted(opts.MaxConcurrent),
		deadline: opts.JobDeadline,
	}
}

// Submit registers a new job and schedules its work, returning the job id
// immediately. The ctx only covers job registration; the work itself runs
// under a fresh deadline context.
func (r *Runner) Submit(ctx context.Context, prefix string, work Work) (string, error) {
	id := NewID(prefix)
	if err := r.store.Create(ctx, id); err != nil {
		return "", fmt.Errorf("failed to register job: %w", err)
	}

	r.wg.Add(1)
	go r.run(id, work)
	return id, nil
}

// Wait blocks until all submitted jobs have finished. Used on shutdown so
// in-flight work can record its outcome.
func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) run(id string, work Work) {
	defer r.wg.Done()

	ctx, cancel := context.WithTimeout(context.Background(), r.deadline)
	defer cancel()

	if err := r.sem.Acquire(ctx, 1); err != nil {
		log.Printf("[jobs] %s never started: %v", id, err)
		r.fail(id, "job queue is saturated, please retry")
		return
	}
	defer r.sem.Release(1)

	// A panicking job must still resolve; pollers otherwise wait on a
	// processing status until eviction.
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("[jobs] %s panicked: %v", id, rec)
			r.fail(id, "internal error while processing job")
		}
	}()

	started := time.Now()
	result, err := work(ctx)
	if err != nil {
		log.Printf("[jobs] %s failed after %s: %v", id, time.Since(started).Round(time.Millisecond), err)
		r.fail(id, err.Error())
		return
	}

	if err := r.store.Complete(context.Background(), id, result); err != nil {
		log.Printf("[jobs] %s finished but result not recorded: %v", id, err)
		return
	}
	log.Printf("[jobs] %s completed in %s", id, time.Since(started).Round(time.Millisecond))
}

func (r *Runner) fail(id, message string) {
	if err := r.store.Fail(context.Background(), id, message); err != nil {
		log.Printf("[jobs] %s failure not recorded: %v", id, err)
	}
}
