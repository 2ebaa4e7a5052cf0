package ports

import (
	"context"

	"github.com/jsamuelsen11/go-mail-relay/internal/domain"
	"github.com/jsamuelsen11/go-mail-relay/internal/domain/message"
)

// Dependency is a handle on one external resource. Handles are constructed
// without connecting; the first connection is made by ProbeDeep. Close is
// called exactly once, during shutdown.
type Dependency interface {
	// Name identifies the dependency in the readiness model.
	Name() domain.Dependency

	// ProbeDeep performs a real round trip and may (re)establish the
	// connection. Returns nil when healthy.
	ProbeDeep(ctx context.Context) error

	// ProbeOnce is a cheap liveness ping against an established connection.
	// It never reconnects. Returns nil when healthy.
	ProbeOnce(ctx context.Context) error

	// Close releases the underlying resources.
	Close(ctx context.Context) error
}

// ConnectionResetter drops pooled connections without closing the handle.
type ConnectionResetter interface {
	ResetConnection()
}

// DataStore persists messages.
type DataStore interface {
	Dependency
	ConnectionResetter

	// SaveMessage inserts a new message.
	// Returns domain.ErrConflict if the ID already exists.
	SaveMessage(ctx context.Context, msg *message.Message) error

	// UpdateMessage stores the delivery fields of an existing message.
	// Returns domain.ErrNotFound if the message does not exist.
	UpdateMessage(ctx context.Context, msg *message.Message) error

	// GetMessage returns a single message by ID.
	// Returns domain.ErrNotFound if the message does not exist.
	GetMessage(ctx context.Context, id string) (*message.Message, error)

	// ListMessages returns the newest messages matching filter.
	ListMessages(ctx context.Context, filter message.Filter) ([]message.Message, error)
}

// WorkQueue is a durable job queue with a single in-process consumer.
type WorkQueue interface {
	Dependency

	// Enqueue adds a delivery job for the given message.
	Enqueue(ctx context.Context, messageID string) (Job, error)

	// Pause stops claiming new jobs. The connection stays open and jobs
	// already claimed run to completion.
	Pause(ctx context.Context) error

	// RegisterProcessor attaches the job handler and starts consuming.
	// It may be called once per queue.
	RegisterProcessor(handler JobHandler) error

	// On subscribes listener to a queue event.
	On(event QueueEvent, listener QueueEventListener)
}

// MailTransport delivers messages to the outbound mail provider.
type MailTransport interface {
	Dependency

	// Send delivers one message.
	Send(ctx context.Context, msg *message.Message) error
}
