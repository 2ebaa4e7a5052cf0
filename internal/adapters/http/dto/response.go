// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"time"

	"github.com/jsamuelsen11/go-mail-relay/internal/domain"
	"github.com/jsamuelsen11/go-mail-relay/internal/domain/message"
)

// MessageResponse represents a single message in HTTP responses.
type MessageResponse struct {
	ID        string `json:"id"`
	To        string `json:"to"`
	Subject   string `json:"subject"`
	Status    string `json:"status"`
	Attempts  int    `json:"attempts"`
	LastError string `json:"last_error,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	SentAt    string `json:"sent_at,omitempty"`
}

// MessageListResponse represents a list of messages in HTTP responses.
type MessageListResponse struct {
	Messages []MessageResponse `json:"messages"`
	Count    int               `json:"count"`
}

// ToMessageResponse converts a domain Message to an HTTP response DTO. The
// body is never echoed back.
func ToMessageResponse(m *message.Message) MessageResponse {
	resp := MessageResponse{
		ID:        m.ID,
		To:        m.To,
		Subject:   m.Subject,
		Status:    m.Status.String(),
		Attempts:  m.Attempts,
		LastError: m.LastError,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
		UpdatedAt: m.UpdatedAt.Format(time.RFC3339),
	}
	if m.SentAt != nil {
		resp.SentAt = m.SentAt.Format(time.RFC3339)
	}
	return resp
}

// ToMessageListResponse converts a slice of domain messages to an HTTP list
// response DTO.
func ToMessageListResponse(msgs []message.Message) MessageListResponse {
	items := make([]MessageResponse, len(msgs))
	for i := range msgs {
		items[i] = ToMessageResponse(&msgs[i])
	}
	return MessageListResponse{
		Messages: items,
		Count:    len(items),
	}
}

// ReadinessResponse is the body of GET /health/ready.
type ReadinessResponse struct {
	Status       string          `json:"status"`
	Phase        string          `json:"phase"`
	Ready        bool            `json:"ready"`
	Mounted      bool            `json:"mounted"`
	Shutdown     bool            `json:"shutdown"`
	Dependencies map[string]bool `json:"dependencies"`
}

// ToReadinessResponse renders a health snapshot. Status is the gate
// decision the snapshot yields.
func ToReadinessResponse(s domain.HealthSnapshot, phase domain.Phase) ReadinessResponse {
	deps := make(map[string]bool, len(s.Dependencies))
	for dep, healthy := range s.Dependencies {
		deps[dep.String()] = healthy
	}
	return ReadinessResponse{
		Status:       s.Decision().String(),
		Phase:        phase.String(),
		Ready:        s.Ready,
		Mounted:      s.Mounted,
		Shutdown:     s.Shutdown,
		Dependencies: deps,
	}
}
