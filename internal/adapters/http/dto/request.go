package dto

import (
	"strings"

	"github.com/jsamuelsen11/go-mail-relay/internal/domain"
)

const msgRequired = domain.MsgRequired

// SendMessageRequest represents the JSON body for submitting a message.
type SendMessageRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Validate checks that required fields are present. Address syntax and
// length limits are enforced by the domain entity.
// Returns a *domain.ValidationError if any checks fail.
func (r *SendMessageRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.To) == "" {
		fields["to"] = msgRequired
	}
	if strings.TrimSpace(r.Subject) == "" {
		fields["subject"] = msgRequired
	}
	if strings.TrimSpace(r.Body) == "" {
		fields["body"] = msgRequired
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
