// internal/handlers/messages.go
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"sanctra-backend/internal/middleware"
	"sanctra-backend/internal/models"
	"sanctra-backend/internal/services"
	apperrors "sanctra-backend/pkg/errors"
	"sanctra-backend/pkg/utils"
)

type MessagesHandler struct {
	messageService services.MessageService
}

func NewMessagesHandler(messageService services.MessageService) *MessagesHandler {
	return &MessagesHandler{
		messageService: messageService,
	}
}

func (h *MessagesHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendErrorResponse(w, apperrors.NewAppError(
			apperrors.ErrUnauthorized,
			http.StatusUnauthorized,
			"user not found in context",
		))
		return
	}

	var req models.SendMessageRequest
	if err := utils.DecodeJSONBody(r, &req); err != nil {
		utils.SendErrorResponse(w, err)
		return
	}

	message, err := h.messageService.SendMessage(r.Context(), userID, &req)
	if err != nil {
		utils.SendErrorResponse(w, err)
		return
	}

	utils.SendJSONResponse(w, http.StatusCreated, message)
}

// GetConversation returns the thread with a peer and marks their messages
// to the caller as read.
func (h *MessagesHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendErrorResponse(w, apperrors.NewAppError(
			apperrors.ErrUnauthorized,
			http.StatusUnauthorized,
			"user not found in context",
		))
		return
	}

	peerID := chi.URLParam(r, "peerId")
	if peerID == "" {
		utils.SendErrorResponse(w, apperrors.NewAppError(
			apperrors.ErrValidation,
			http.StatusBadRequest,
			"peerId is required",
		))
		return
	}

	messages, err := h.messageService.GetConversation(r.Context(), userID, peerID)
	if err != nil {
		utils.SendErrorResponse(w, err)
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, messages)
}
