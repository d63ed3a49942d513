// Package jobs tracks asynchronous generation and analysis jobs. A job is
// created in processing state when work is accepted, transitions exactly once
// to completed or failed, and is evicted after a retention window so polling
// clients have a bounded time to collect results.
package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// Status is the lifecycle state of a job.
type Status string

const (
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// ErrNotFound indicates the job id does not exist or has been evicted.
// Both cases are indistinguishable to callers.
var ErrNotFound = errors.New("job not found")

// Job is one tracked unit of background work. Result is populated only in
// completed state, Error only in failed state.
type Job struct {
	ID        string          `json:"id"`
	Status    Status          `json:"status"`
	Result    json.RawMessage `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Store persists jobs through their lifecycle. Implementations must be safe
// for concurrent use.
type Store interface {
	// Create registers a new job in processing state.
	Create(ctx context.Context, id string) error
	// Get returns a job by id, or ErrNotFound.
	Get(ctx context.Context, id string) (Job, error)
	// Complete marks the job completed with the given result payload.
	Complete(ctx context.Context, id string, result any) error
	// Fail marks the job failed with a client-facing error message.
	Fail(ctx context.Context, id string, message string) error
	// Sweep evicts jobs created before the cutoff and reports how many.
	Sweep(ctx context.Context, cutoff time.Time) (int, error)
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewID builds a job id like "job_1712345678901_k3x9f0q2a": a type prefix,
// the creation time in unix milliseconds, and a random base-36 suffix.
func NewID(prefix string) string {
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = idAlphabet[rand.Intn(len(idAlphabet))]
	}
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), suffix)
}

func marshalResult(result any) (json.RawMessage, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal job result: %w", err)
	}
	return data, nil
}
