package jobs

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	store := NewMemoryStore(MemoryOptions{})
	t.Cleanup(store.Stop)
	return store
}

func TestNewID_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^job_\d{13}_[0-9a-z]{9}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID("job")
		assert.Regexp(t, pattern, id)
		seen[id] = true
	}
	assert.Len(t, seen, 100, "ids must not collide")

	assert.Regexp(t, `^analysis_\d{13}_[0-9a-z]{9}$`, NewID("analysis"))
}

func TestMemoryStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	id := NewID("job")
	require.NoError(t, store.Create(ctx, id))

	job, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StatusProcessing, job.Status)
	assert.Nil(t, job.Result)
	assert.Empty(t, job.Error)

	require.NoError(t, store.Complete(ctx, id, map[string]int{"count": 3}))

	job, err = store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, job.Status)
	assert.JSONEq(t, `{"count":3}`, string(job.Result))
	assert.True(t, job.UpdatedAt.After(job.CreatedAt) || job.UpdatedAt.Equal(job.CreatedAt))
}

func TestMemoryStore_Fail(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	id := NewID("analysis")
	require.NoError(t, store.Create(ctx, id))
	require.NoError(t, store.Fail(ctx, id, "provider unavailable"))

	job, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, job.Status)
	assert.Equal(t, "provider unavailable", job.Error)
	assert.Nil(t, job.Result)
}

func TestMemoryStore_UnknownID(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.Get(ctx, "job_0_missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Complete(ctx, "job_0_missing", nil), ErrNotFound)
	assert.ErrorIs(t, store.Fail(ctx, "job_0_missing", "x"), ErrNotFound)
}

func TestMemoryStore_SweepEvictsOldJobs(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	oldID := NewID("job")
	freshID := NewID("job")
	require.NoError(t, store.Create(ctx, oldID))
	require.NoError(t, store.Complete(ctx, oldID, []string{"done"}))

	// Backdate the first job past the retention window.
	store.mu.Lock()
	job := store.jobs[oldID]
	job.CreatedAt = time.Now().Add(-2 * time.Hour)
	store.jobs[oldID] = job
	store.mu.Unlock()

	require.NoError(t, store.Create(ctx, freshID))

	evicted, err := store.Sweep(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, evicted)

	_, err = store.Get(ctx, oldID)
	assert.ErrorIs(t, err, ErrNotFound, "expired job must look identical to one that never existed")

	_, err = store.Get(ctx, freshID)
	assert.NoError(t, err)
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStore_SweepAbandonsStaleProcessingJobs(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	id := NewID("job")
	require.NoError(t, store.Create(ctx, id))

	store.mu.Lock()
	job := store.jobs[id]
	job.CreatedAt = time.Now().Add(-90 * time.Minute)
	store.jobs[id] = job
	store.mu.Unlock()

	evicted, err := store.Sweep(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, evicted)
}

func TestMemoryStore_CompleteRejectsUnmarshalableResult(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	id := NewID("job")
	require.NoError(t, store.Create(ctx, id))

	err := store.Complete(ctx, id, map[string]any{"ch": make(chan int)})
	require.Error(t, err)

	// The job must stay in processing state, not half-complete.
	job, getErr := store.Get(ctx, id)
	require.NoError(t, getErr)
	assert.Equal(t, StatusProcessing, job.Status)
}

func TestMemoryStore_ResultIsRawJSON(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	id := NewID("job")
	require.NoError(t, store.Create(ctx, id))
	require.NoError(t, store.Complete(ctx, id, struct {
		Profiles []string `json:"profiles"`
	}{Profiles: []string{"a", "b"}}))

	job, err := store.Get(ctx, id)
	require.NoError(t, err)

	var decoded struct {
		Profiles []string `json:"profiles"`
	}
	require.NoError(t, json.Unmarshal(job.Result, &decoded))
	assert.Equal(t, []string{"a", "b"}, decoded.Profiles)
}
