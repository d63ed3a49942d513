package jobs

import (
	"context"
	"log"
	"sync"
	"time"
)

const (
	defaultTTL           = time.Hour
	defaultSweepInterval = 5 * time.Minute
)

// MemoryStore keeps jobs in a mutex-guarded map and evicts expired entries
// from a background sweeper goroutine. It is the default store when no
// database is configured; contents do not survive a restart.
type MemoryStore struct {
	mu   sync.RWMutex
	jobs map[string]Job

	ttl         time.Duration
	sweepTicker *time.Ticker
	sweepStop   chan struct{}
	stopOnce    sync.Once
}

// MemoryOptions tunes a MemoryStore. Zero fields fall back to a one hour
// retention swept every five minutes.
type MemoryOptions struct {
	TTL           time.Duration
	SweepInterval time.Duration
}

// NewMemoryStore creates a memory store and starts its sweeper.
func NewMemoryStore(opts MemoryOptions) *MemoryStore {
	if opts.TTL <= 0 {
		opts.TTL = defaultTTL
	}
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = defaultSweepInterval
	}

	s := &MemoryStore{
		jobs:        make(map[string]Job),
		ttl:         opts.TTL,
		sweepTicker: time.NewTicker(opts.SweepInterval),
		sweepStop:   make(chan struct{}),
	}
	go s.sweepLoop()
	return s
}

func (s *MemoryStore) Create(_ context.Context, id string) error {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[id] = Job{
		ID:        id,
		Status:    StatusProcessing,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		return Job{}, ErrNotFound
	}
	return job, nil
}

func (s *MemoryStore) Complete(_ context.Context, id string, result any) error {
	data, err := marshalResult(result)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return ErrNotFound
	}
	job.Status = StatusCompleted
	job.Result = data
	job.Error = ""
	job.UpdatedAt = time.Now()
	s.jobs[id] = job
	return nil
}

func (s *MemoryStore) Fail(_ context.Context, id string, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return ErrNotFound
	}
	job.Status = StatusFailed
	job.Error = message
	job.Result = nil
	job.UpdatedAt = time.Now()
	s.jobs[id] = job
	return nil
}

// Sweep evicts jobs created before the cutoff regardless of status: a
// processing job past the cutoff is abandoned, not kept alive.
func (s *MemoryStore) Sweep(_ context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	evicted := 0
	for id, job := range s.jobs {
		if job.CreatedAt.Before(cutoff) {
			delete(s.jobs, id)
			evicted++
		}
	}
	return evicted, nil
}

// Len reports how many jobs are currently retained.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}

// Stop halts the sweeper goroutine. Safe to call more than once.
func (s *MemoryStore) Stop() {
	s.stopOnce.Do(func() {
		s.sweepTicker.Stop()
		close(s.sweepStop)
	})
}

func (s *MemoryStore) sweepLoop() {
	for {
		select {
		case <-s.sweepTicker.C:
			if n, _ := s.Sweep(context.Background(), time.Now().Add(-s.ttl)); n > 0 {
				log.Printf("[jobs] evicted %d expired jobs", n)
			}
		case <-s.sweepStop:
			return
		}
	}
}
