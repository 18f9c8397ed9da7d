package jobqueue

import (
	"fmt"
	"testing"
	"time"

	model "auction-house/internal/models"

	"github.com/stretchr/testify/require"
)

func newJob(id string) *model.Job {
	return &model.Job{ID: id}
}

// Test FIFO ordering among enqueued jobs.
func TestQueue_FIFO(t *testing.T) {
	t.Parallel()

	q := New(3)
	for i := 0; i < 3; i++ {
		require.True(t, q.Insert(newJob(fmt.Sprintf("job-%d", i))))
	}

	for i := 0; i < 3; i++ {
		job, ok := q.Remove()
		require.True(t, ok)
		require.Equal(t, fmt.Sprintf("job-%d", i), job.ID)
	}
}

// Test that inserting into a full queue blocks until a consumer frees a
// slot: with capacity N, the (N+1)th insert waits.
func TestQueue_InsertBackpressure(t *testing.T) {
	t.Parallel()

	const capacity = 2
	q := New(capacity)
	for i := 0; i < capacity; i++ {
		require.True(t, q.Insert(newJob(fmt.Sprintf("job-%d", i))))
	}

	inserted := make(chan struct{})
	go func() {
		q.Insert(newJob("job-extra"))
		close(inserted)
	}()

	select {
	case <-inserted:
		t.Fatal("insert into a full queue did not block")
	case <-time.After(50 * time.Millisecond):
	}

	_, ok := q.Remove()
	require.True(t, ok)

	select {
	case <-inserted:
	case <-time.After(2 * time.Second):
		t.Fatal("blocked insert never completed after a slot freed")
	}
}

// Test that removing from an empty queue blocks until a job arrives.
func TestQueue_RemoveBlocksWhenEmpty(t *testing.T) {
	t.Parallel()

	q := New(1)
	removed := make(chan *model.Job)
	go func() {
		job, ok := q.Remove()
		require.True(t, ok)
		removed <- job
	}()

	select {
	case <-removed:
		t.Fatal("remove from an empty queue did not block")
	case <-time.After(50 * time.Millisecond):
	}

	require.True(t, q.Insert(newJob("job-late")))
	select {
	case job := <-removed:
		require.Equal(t, "job-late", job.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("blocked remove never completed")
	}
}

// Test that Close releases blocked producers and consumers.
func TestQueue_Close(t *testing.T) {
	t.Parallel()

	q := New(1)
	require.True(t, q.Insert(newJob("job-0")))

	insertDone := make(chan bool)
	go func() {
		insertDone <- q.Insert(newJob("job-blocked"))
	}()
	time.Sleep(20 * time.Millisecond)

	q.Close()
	require.False(t, <-insertDone, "blocked insert should fail after close")
	q.Close() // idempotent

	// The already-buffered job is still drained before Remove reports
	// closed.
	job, ok := q.Remove()
	require.True(t, ok)
	require.Equal(t, "job-0", job.ID)

	_, ok = q.Remove()
	require.False(t, ok)
}
