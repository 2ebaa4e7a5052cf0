package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/jsamuelsen11/go-mail-relay/internal/domain"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/logging"
	"github.com/jsamuelsen11/go-mail-relay/internal/ports"
)

// Mounter attaches the delivery processor to the work queue exactly once.
type Mounter struct {
	queue     ports.WorkQueue
	processor ports.DeliveryProcessor
	model     ports.HealthModel
	logger    *slog.Logger
	mounted   atomic.Bool
}

// NewMounter creates a Mounter.
func NewMounter(queue ports.WorkQueue, processor ports.DeliveryProcessor, model ports.HealthModel, logger *slog.Logger) *Mounter {
	return &Mounter{
		queue:     queue,
		processor: processor,
		model:     model,
		logger:    logging.OrDiscard(logger),
	}
}

// Mount subscribes the processor to every queue event, registers it as the
// job handler and records the registration in the model. It runs regardless
// of readiness. A second call returns domain.ErrAlreadyMounted; registration
// errors are returned as-is and not retried.
func (m *Mounter) Mount(ctx context.Context) error {
	if !m.mounted.CompareAndSwap(false, true) {
		return domain.ErrAlreadyMounted
	}

	for _, ev := range ports.QueueEvents() {
		m.queue.On(ev, m.processor.HandleEvent)
	}
	if err := m.queue.RegisterProcessor(m.processor.Deliver); err != nil {
		return fmt.Errorf("register queue processor: %w", err)
	}
	if err := m.model.MarkConsumerRegistered(); err != nil {
		return fmt.Errorf("record consumer registration: %w", err)
	}

	m.logger.InfoContext(ctx, "queue consumer mounted", slog.Int("events", len(ports.QueueEvents())))
	return nil
}
