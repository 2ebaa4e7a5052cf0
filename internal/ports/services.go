package ports

import (
	"context"

	"github.com/jsamuelsen11/go-mail-relay/internal/domain/message"
)

// MessageService defines the service port for outbound message operations.
// Implemented by the application layer; called by inbound adapters (handlers).
type MessageService interface {
	// Submit validates and persists a message, then enqueues its delivery.
	// Returns domain.ErrValidation if the message fails validation.
	Submit(ctx context.Context, msg *message.Message) (*message.Message, error)

	// Get returns a single message by ID.
	// Returns domain.ErrNotFound if the message does not exist.
	Get(ctx context.Context, id string) (*message.Message, error)

	// List returns recent messages matching the filter.
	List(ctx context.Context, filter message.Filter) ([]message.Message, error)
}

// DeliveryProcessor consumes the work queue. It is registered once by the
// mount controller.
type DeliveryProcessor interface {
	// Deliver sends the message referenced by job through the mail transport.
	Deliver(ctx context.Context, job Job) error

	// HandleEvent observes consumer-side queue events.
	HandleEvent(ctx context.Context, info QueueEventInfo)
}
