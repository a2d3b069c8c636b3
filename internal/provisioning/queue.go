package provisioning

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"lingualink/internal/metrics"
)

const (
	defaultQueueSize     = 256
	defaultMaxAttempts   = 4
	defaultBaseBackoff   = 500 * time.Millisecond
	defaultDeadLetterCap = 100
	upsertTimeout        = 10 * time.Second
)

// Task is one identity change waiting to be mirrored.
type Task struct {
	ID          string
	DisplayName string
	ImageURL    string
}

// Queue delivers mirror tasks to the provider off the request path. A full
// queue drops the task rather than blocking a request; a task that exhausts
// its retries lands in the bounded dead-letter log.
type Queue struct {
	provider      Provider
	tasks         chan Task
	wg            sync.WaitGroup
	maxAttempts   int
	baseBackoff   time.Duration
	deadLetterCap int

	mu         sync.Mutex
	closed     bool
	deadLetter []Task
}

func NewQueue(provider Provider) *Queue {
	q := &Queue{
		provider:      provider,
		tasks:         make(chan Task, defaultQueueSize),
		maxAttempts:   defaultMaxAttempts,
		baseBackoff:   defaultBaseBackoff,
		deadLetterCap: defaultDeadLetterCap,
	}
	q.wg.Add(1)
	go q.worker()
	return q
}

// EnqueueUpsert queues an identity mirror without blocking the caller.
func (q *Queue) EnqueueUpsert(id, displayName, imageURL string) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		slog.Warn("Mirror task rejected, queue closed", "user_id", id)
		return
	}
	q.mu.Unlock()

	task := Task{ID: id, DisplayName: displayName, ImageURL: imageURL}
	select {
	case q.tasks <- task:
		metrics.MirrorTasksEnqueued.Inc()
	default:
		metrics.MirrorTasksDropped.Inc()
		slog.Error("Mirror task dropped, queue full", "user_id", id)
	}
}

// Close stops accepting tasks and drains the ones already queued.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.mu.Unlock()

	close(q.tasks)
	q.wg.Wait()
}

// DeadLetters returns a copy of the tasks that exhausted their retries.
func (q *Queue) DeadLetters() []Task {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Task, len(q.deadLetter))
	copy(out, q.deadLetter)
	return out
}

func (q *Queue) worker() {
	defer q.wg.Done()
	for task := range q.tasks {
		q.process(task)
	}
}

func (q *Queue) process(task Task) {
	backoff := q.baseBackoff
	for attempt := 1; attempt <= q.maxAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), upsertTimeout)
		err := q.provider.Upsert(ctx, task.ID, task.DisplayName, task.ImageURL)
		cancel()
		if err == nil {
			return
		}

		slog.Warn("Mirror upsert failed", "user_id", task.ID, "attempt", attempt, "error", err)
		if attempt == q.maxAttempts {
			break
		}
		metrics.MirrorRetriesTotal.Inc()
		time.Sleep(backoff)
		backoff *= 2
	}

	metrics.MirrorDeadLettered.Inc()
	slog.Error("Mirror task dead-lettered", "user_id", task.ID)
	q.mu.Lock()
	q.deadLetter = append(q.deadLetter, task)
	if len(q.deadLetter) > q.deadLetterCap {
		q.deadLetter = q.deadLetter[len(q.deadLetter)-q.deadLetterCap:]
	}
	q.mu.Unlock()
}
