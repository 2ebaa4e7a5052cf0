package handlers

import (
	"net/http"
	"time"

	"github.com/jsamuelsen11/go-mail-relay/internal/adapters/http/dto"
	"github.com/jsamuelsen11/go-mail-relay/internal/domain/message"
	"github.com/jsamuelsen11/go-mail-relay/internal/ports"
)

// MessageHandler handles HTTP requests for outbound messages.
type MessageHandler struct {
	service ports.MessageService
	now     func() time.Time
}

// NewMessageHandler creates a new MessageHandler with the given service port.
func NewMessageHandler(service ports.MessageService) *MessageHandler {
	return &MessageHandler{
		service: service,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// SendMessage handles POST /api/v1/messages. The message is accepted for
// asynchronous delivery and returned with status 202.
func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req dto.SendMessageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	msg := message.New(req.To, req.Subject, req.Body, h.now())
	accepted, err := h.service.Submit(r.Context(), msg)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/v1/messages/"+accepted.ID)
	writeJSON(w, r, http.StatusAccepted, dto.ToMessageResponse(accepted))
}

// GetMessage handles GET /api/v1/messages/{id}.
func (h *MessageHandler) GetMessage(w http.ResponseWriter, r *http.Request) {
	id, err := parseMessageID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	msg, err := h.service.Get(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToMessageResponse(msg))
}

// ListMessages handles GET /api/v1/messages.
func (h *MessageHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	filter, err := parseMessageFilter(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	msgs, err := h.service.List(r.Context(), filter)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToMessageListResponse(msgs))
}
