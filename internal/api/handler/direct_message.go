package handler

import (
	"net/http"
	"strconv"

	"github.com/blazern/recipe-calculator-server-sub000/internal/api/dto"
	"github.com/blazern/recipe-calculator-server-sub000/internal/api/middleware"
	"github.com/blazern/recipe-calculator-server-sub000/internal/api/response"
	"github.com/blazern/recipe-calculator-server-sub000/internal/domain"
	"github.com/blazern/recipe-calculator-server-sub000/internal/service"
)

type DirectMessageHandler struct {
	messages *service.DirectMessageService
}

func NewDirectMessageHandler(messages *service.DirectMessageService) *DirectMessageHandler {
	return &DirectMessageHandler{messages: messages}
}

// Send handles POST /api/v1/direct-messages.
func (h *DirectMessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "authentication required")
		return
	}

	req, err := dto.ParseJSON[dto.SendDirectMessageRequest](r)
	if err != nil {
		response.BadRequest(w, "malformed request body")
		return
	}
	if details := dto.Validate(req); details != nil {
		response.ValidationError(w, "invalid message", details...)
		return
	}

	msg, err := h.messages.Send(r.Context(), user.ID, req.RecipientUserID, req.Body)
	if err != nil {
		response.InternalError(w, "failed to send message")
		return
	}

	response.Created(w, toDirectMessageResponse(msg))
}

// List handles GET /api/v1/direct-messages.
func (h *DirectMessageHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "authentication required")
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	messages, err := h.messages.Inbox(r.Context(), user.ID, limit)
	if err != nil {
		response.InternalError(w, "failed to list messages")
		return
	}

	out := make([]dto.DirectMessageResponse, len(messages))
	for i, msg := range messages {
		out[i] = toDirectMessageResponse(msg)
	}
	response.OK(w, out)
}

func toDirectMessageResponse(msg *domain.DirectMessage) dto.DirectMessageResponse {
	return dto.DirectMessageResponse{
		ID:              msg.ID.String(),
		SenderUserID:    msg.SenderUserID,
		RecipientUserID: msg.RecipientUserID,
		Body:            msg.Body,
		CreatedAt:       msg.CreatedAt,
		DeliveredAt:     msg.DeliveredAt,
	}
}
