// internal/handlers/garden.go
package handlers

import (
	"net/http"

	"sanctra-backend/internal/middleware"
	"sanctra-backend/internal/models"
	"sanctra-backend/internal/services"
	apperrors "sanctra-backend/pkg/errors"
	"sanctra-backend/pkg/utils"
)

type GardenHandler struct {
	gardenService services.GardenService
}

func NewGardenHandler(gardenService services.GardenService) *GardenHandler {
	return &GardenHandler{
		gardenService: gardenService,
	}
}

func (h *GardenHandler) Join(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendErrorResponse(w, apperrors.NewAppError(
			apperrors.ErrUnauthorized,
			http.StatusUnauthorized,
			"user not found in context",
		))
		return
	}

	response, err := h.gardenService.Join(r.Context(), userID)
	if err != nil {
		utils.SendErrorResponse(w, err)
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, response)
}

func (h *GardenHandler) Heartbeat(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendErrorResponse(w, apperrors.NewAppError(
			apperrors.ErrUnauthorized,
			http.StatusUnauthorized,
			"user not found in context",
		))
		return
	}

	presence, err := h.gardenService.Heartbeat(r.Context(), userID)
	if err != nil {
		utils.SendErrorResponse(w, err)
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, models.GardenPresenceResponse{Presence: presence})
}

func (h *GardenHandler) PostWhisper(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendErrorResponse(w, apperrors.NewAppError(
			apperrors.ErrUnauthorized,
			http.StatusUnauthorized,
			"user not found in context",
		))
		return
	}

	var req models.PostWhisperRequest
	if err := utils.DecodeJSONBody(r, &req); err != nil {
		utils.SendErrorResponse(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		utils.SendErrorResponse(w, apperrors.NewAppError(
			apperrors.ErrValidation,
			http.StatusBadRequest,
			err.Error(),
		))
		return
	}

	alias := req.Alias
	if alias == "" {
		alias = "wanderer"
	}

	whisper, err := h.gardenService.PostWhisper(r.Context(), userID, alias, req.Content)
	if err != nil {
		utils.SendErrorResponse(w, err)
		return
	}

	utils.SendJSONResponse(w, http.StatusCreated, whisper)
}

func (h *GardenHandler) ListWhispers(w http.ResponseWriter, r *http.Request) {
	whispers, err := h.gardenService.ListWhispers(r.Context())
	if err != nil {
		utils.SendErrorResponse(w, err)
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, whispers)
}
