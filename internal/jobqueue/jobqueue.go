// Package jobqueue provides the bounded FIFO queue that carries jobs
// from client sessions and the tick driver to the worker pool.
package jobqueue

import (
	"sync"

	model "auction-house/internal/models"
)

// Queue is a fixed-capacity producer/consumer queue. Capacity is sized
// to the worker pool, so Insert applies backpressure to a session's
// read loop whenever every worker is busy and the buffer is full.
type Queue struct {
	jobs      chan *model.Job
	done      chan struct{}
	closeOnce sync.Once
}

// New creates a queue holding at most capacity jobs.
func New(capacity int) *Queue {
	return &Queue{
		jobs: make(chan *model.Job, capacity),
		done: make(chan struct{}),
	}
}

// Insert enqueues a job, blocking while the queue is full. It returns
// false if the queue was closed before the job could be enqueued.
func (q *Queue) Insert(job *model.Job) bool {
	select {
	case q.jobs <- job:
		return true
	case <-q.done:
		return false
	}
}

// Remove dequeues the oldest job, blocking while the queue is empty.
// It returns false once the queue is closed and drained.
func (q *Queue) Remove() (*model.Job, bool) {
	select {
	case job := <-q.jobs:
		return job, true
	case <-q.done:
		select {
		case job := <-q.jobs:
			return job, true
		default:
			return nil, false
		}
	}
}

// Close releases all blocked producers and consumers. Safe to call
// more than once.
func (q *Queue) Close() {
	q.closeOnce.Do(func() {
		close(q.done)
	})
}
