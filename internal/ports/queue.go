package ports

import (
	"context"
	"time"
)

// Job is one unit of queued work.
type Job struct {
	ID         int64
	MessageID  string
	Attempts   int
	EnqueuedAt time.Time
}

// JobHandler processes a single job. A nil return completes the job; an
// error fails it.
type JobHandler func(ctx context.Context, job Job) error

// QueueEvent names a consumer-side event emitted by the work queue.
type QueueEvent string

const (
	EventCompleted QueueEvent = "completed"
	EventError     QueueEvent = "error"
	EventFailed    QueueEvent = "failed"
	EventDrained   QueueEvent = "drained"
	EventRemoved   QueueEvent = "removed"
)

// QueueEvents lists every event a consumer subscribes to when mounting.
func QueueEvents() []QueueEvent {
	return []QueueEvent{EventCompleted, EventError, EventFailed, EventDrained, EventRemoved}
}

// QueueEventInfo carries the details of one emitted event. Job is nil for
// queue-level events such as drained; Err is set for error and failed.
type QueueEventInfo struct {
	Event QueueEvent
	Job   *Job
	Err   error
}

// QueueEventListener receives queue events. Listeners run on the queue's
// worker goroutine and must not block.
type QueueEventListener func(ctx context.Context, info QueueEventInfo)
