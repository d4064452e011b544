// Package jobs provides a small in-process background task queue with
// at-least-once semantics. Jobs carry an idempotency key: a key that is
// already queued or running is not enqueued again, and job bodies are
// expected to be safe to run twice anyway.
package jobs

import (
	"log"
	"sync"
	"time"
)

// Job is a unit of background work. It must be idempotent: the queue
// retries on failure, so a job may run more than once.
type Job func() error

// Queue runs submitted jobs in the background, deduplicated by key.
type Queue struct {
	mu       sync.Mutex
	inflight map[string]bool
	wg       sync.WaitGroup

	maxRetries int
	retryDelay time.Duration
}

// NewQueue creates a queue that retries failed jobs a few times with a
// fixed delay between runs.
func NewQueue() *Queue {
	return &Queue{
		inflight:   make(map[string]bool),
		maxRetries: 3,
		retryDelay: time.Second,
	}
}

// Submit schedules a job unless one with the same key is already
// queued or running. Returns true when the job was accepted.
func (q *Queue) Submit(key string, job Job) bool {
	q.mu.Lock()
	if q.inflight[key] {
		q.mu.Unlock()
		return false
	}
	q.inflight[key] = true
	q.mu.Unlock()

	q.wg.Add(1)
	go q.run(key, job)
	return true
}

func (q *Queue) run(key string, job Job) {
	defer q.wg.Done()
	defer func() {
		q.mu.Lock()
		delete(q.inflight, key)
		q.mu.Unlock()
	}()

	var err error
	for attempt := 1; attempt <= q.maxRetries; attempt++ {
		if err = job(); err == nil {
			return
		}
		log.Printf("Background job %s failed (attempt %d/%d): %v", key, attempt, q.maxRetries, err)
		if attempt < q.maxRetries {
			time.Sleep(q.retryDelay)
		}
	}
	log.Printf("Background job %s gave up after %d attempts: %v", key, q.maxRetries, err)
}

// Wait blocks until all accepted jobs have finished. Used on shutdown
// and in tests.
func (q *Queue) Wait() {
	q.wg.Wait()
}
