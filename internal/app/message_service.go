// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port interfaces.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/jsamuelsen11/go-mail-relay/internal/domain"
	"github.com/jsamuelsen11/go-mail-relay/internal/domain/message"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/logging"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/metrics"
	"github.com/jsamuelsen11/go-mail-relay/internal/platform/telemetry"
	"github.com/jsamuelsen11/go-mail-relay/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.MessageService    = (*MessageService)(nil)
	_ ports.DeliveryProcessor = (*MessageService)(nil)
)

// MessageService accepts messages for delivery and, as the queue processor,
// delivers them through the mail transport.
type MessageService struct {
	store     ports.DataStore
	queue     ports.WorkQueue
	transport ports.MailTransport
	telemetry *telemetry.Metrics
	lifecycle *metrics.Lifecycle
	logger    *slog.Logger
	now       func() time.Time
}

// NewMessageService creates a MessageService. telemetry, lifecycle and
// logger may be nil.
func NewMessageService(
	store ports.DataStore,
	queue ports.WorkQueue,
	transport ports.MailTransport,
	tm *telemetry.Metrics,
	lm *metrics.Lifecycle,
	logger *slog.Logger,
) *MessageService {
	return &MessageService{
		store:     store,
		queue:     queue,
		transport: transport,
		telemetry: tm,
		lifecycle: lm,
		logger:    logging.OrDiscard(logger),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Submit validates and stores msg, then enqueues its delivery. If the job
// cannot be queued the message is marked failed and domain.ErrUnavailable
// is returned.
func (s *MessageService) Submit(ctx context.Context, msg *message.Message) (*message.Message, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.SaveMessage(ctx, msg); err != nil {
		s.logger.ErrorContext(ctx, "failed to store message",
			slog.String("operation", "Submit"),
			slog.String("message_id", msg.ID),
			slog.Any("error", err),
		)
		return nil, err
	}

	job, err := s.queue.Enqueue(ctx, msg.ID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to enqueue delivery",
			slog.String("operation", "Submit"),
			slog.String("message_id", msg.ID),
			slog.Any("error", err),
		)
		msg.MarkFailed(err, s.now())
		if uerr := s.store.UpdateMessage(ctx, msg); uerr != nil {
			s.logger.ErrorContext(ctx, "failed to record enqueue failure",
				slog.String("message_id", msg.ID),
				slog.Any("error", uerr),
			)
		}
		return nil, fmt.Errorf("enqueue delivery: %w", errors.Join(domain.ErrUnavailable, err))
	}

	s.logger.InfoContext(ctx, "message accepted",
		slog.String("message_id", msg.ID),
		slog.Int64("job_id", job.ID),
	)
	return msg, nil
}

// Get returns a single message by ID.
func (s *MessageService) Get(ctx context.Context, id string) (*message.Message, error) {
	msg, err := s.store.GetMessage(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.ErrorContext(ctx, "failed to fetch message",
				slog.String("operation", "Get"),
				slog.String("message_id", id),
				slog.Any("error", err),
			)
		}
		return nil, err
	}
	return msg, nil
}

// List returns recent messages matching filter.
func (s *MessageService) List(ctx context.Context, filter message.Filter) ([]message.Message, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, &domain.ValidationError{Fields: map[string]string{
			"status": fmt.Sprintf("invalid: %q", filter.Status),
		}}
	}

	msgs, err := s.store.ListMessages(ctx, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list messages",
			slog.String("operation", "List"),
			slog.Any("error", err),
		)
		return nil, err
	}
	return msgs, nil
}

// Deliver sends the message behind job. Missing or already sent messages
// complete the job without sending. A provider rejection marks the message
// failed and completes the job; any other error is recorded and returned so
// the queue retries.
func (s *MessageService) Deliver(ctx context.Context, job ports.Job) error {
	logger := s.logger.With(slog.String("message_id", job.MessageID), slog.Int64("job_id", job.ID))
	ctx = logging.WithLogger(ctx, logger)

	msg, err := s.store.GetMessage(ctx, job.MessageID)
	if errors.Is(err, domain.ErrNotFound) {
		logger.WarnContext(ctx, "job references unknown message, dropping")
		return nil
	}
	if err != nil {
		return fmt.Errorf("load message: %w", err)
	}
	if msg.Status == message.StatusSent {
		return nil
	}

	start := time.Now()
	sendErr := s.transport.Send(ctx, msg)
	s.recordDelivery(ctx, start, sendErr)

	now := s.now()
	switch {
	case sendErr == nil:
		msg.MarkSent(now)
		logger.InfoContext(ctx, "message delivered", slog.Int("attempts", msg.Attempts))
	case isPermanent(sendErr):
		msg.MarkFailed(sendErr, now)
		logger.WarnContext(ctx, "message rejected by provider", slog.Any("error", sendErr))
	default:
		msg.MarkRetrying(sendErr, now)
		logger.WarnContext(ctx, "delivery attempt failed", slog.Any("error", sendErr))
	}

	if err := s.store.UpdateMessage(ctx, msg); err != nil {
		return fmt.Errorf("record delivery: %w", err)
	}
	if sendErr != nil && !isPermanent(sendErr) {
		return sendErr
	}
	return nil
}

// HandleEvent counts queue events and finalizes messages whose job ran out
// of retries.
func (s *MessageService) HandleEvent(ctx context.Context, info ports.QueueEventInfo) {
	s.lifecycle.IncQueueEvent(string(info.Event))

	attrs := []any{slog.String("event", string(info.Event))}
	if info.Job != nil {
		attrs = append(attrs, slog.Int64("job_id", info.Job.ID), slog.String("message_id", info.Job.MessageID))
	}
	if info.Err != nil {
		attrs = append(attrs, slog.Any("error", info.Err))
	}

	switch info.Event {
	case ports.EventFailed:
		s.logger.WarnContext(ctx, "delivery job failed permanently", attrs...)
		if info.Job != nil {
			s.abandon(ctx, info.Job.MessageID)
		}
	case ports.EventError:
		s.logger.WarnContext(ctx, "queue error", attrs...)
	default:
		s.logger.DebugContext(ctx, "queue event", attrs...)
	}
}

func (s *MessageService) abandon(ctx context.Context, id string) {
	msg, err := s.store.GetMessage(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load abandoned message",
			slog.String("message_id", id), slog.Any("error", err))
		return
	}
	if msg.Status != message.StatusQueued {
		return
	}
	msg.Abandon(s.now())
	if err := s.store.UpdateMessage(ctx, msg); err != nil {
		s.logger.ErrorContext(ctx, "failed to record abandoned message",
			slog.String("message_id", id), slog.Any("error", err))
	}
}

func (s *MessageService) recordDelivery(ctx context.Context, start time.Time, err error) {
	if s.telemetry == nil {
		return
	}
	result := "success"
	switch {
	case err == nil:
	case isPermanent(err):
		result = "rejected"
	default:
		result = "error"
	}
	attrs := metric.WithAttributes(telemetry.AttrResult.String(result))
	s.telemetry.DeliveryDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	s.telemetry.DeliveryTotal.Add(ctx, 1, attrs)
}

// isPermanent reports provider rejections that a retry cannot fix.
func isPermanent(err error) bool {
	return errors.Is(err, domain.ErrValidation)
}
