// Package message holds the outbound mail message entity and its delivery
// status.
package message

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/go-mail-relay/internal/domain"
)

// maxSubjectLength is the RFC 5322 line length limit applied to subjects.
const maxSubjectLength = 998

// Message is an outbound mail message and its delivery state.
type Message struct {
	ID        string
	To        string
	Subject   string
	Body      string
	Status    Status
	Attempts  int
	LastError string
	CreatedAt time.Time
	UpdatedAt time.Time
	SentAt    *time.Time
}

// New creates a queued message with a fresh identifier.
func New(to, subject, body string, now time.Time) *Message {
	return &Message{
		ID:        uuid.NewString(),
		To:        strings.TrimSpace(to),
		Subject:   subject,
		Body:      body,
		Status:    StatusQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks business rules for the Message entity.
// Returns a *domain.ValidationError (wrapping domain.ErrValidation) with per-field details,
// or nil if all rules pass.
func (m *Message) Validate() error {
	fields := make(map[string]string)

	switch {
	case strings.TrimSpace(m.To) == "":
		fields["to"] = domain.MsgRequired
	default:
		if _, err := mail.ParseAddress(m.To); err != nil {
			fields["to"] = "must be a valid e-mail address"
		}
	}
	if strings.TrimSpace(m.Subject) == "" {
		fields["subject"] = domain.MsgRequired
	} else if len(m.Subject) > maxSubjectLength {
		fields["subject"] = fmt.Sprintf("must be at most %d characters", maxSubjectLength)
	}
	if strings.TrimSpace(m.Body) == "" {
		fields["body"] = domain.MsgRequired
	}
	if !m.Status.IsValid() {
		fields["status"] = fmt.Sprintf("invalid: %q", m.Status)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// MarkSent records a successful delivery.
func (m *Message) MarkSent(now time.Time) {
	m.Status = StatusSent
	m.Attempts++
	m.LastError = ""
	m.UpdatedAt = now
	m.SentAt = &now
}

// MarkRetrying records a failed attempt that will be retried. The status
// stays queued.
func (m *Message) MarkRetrying(cause error, now time.Time) {
	m.Attempts++
	if cause != nil {
		m.LastError = cause.Error()
	}
	m.UpdatedAt = now
}

// MarkFailed records a failed delivery attempt.
func (m *Message) MarkFailed(cause error, now time.Time) {
	m.Status = StatusFailed
	m.Attempts++
	if cause != nil {
		m.LastError = cause.Error()
	}
	m.UpdatedAt = now
}

// Abandon marks a message failed after its retries ran out. The attempt
// count and last error are left as recorded by MarkRetrying.
func (m *Message) Abandon(now time.Time) {
	m.Status = StatusFailed
	m.UpdatedAt = now
}
