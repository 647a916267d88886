// internal/handlers/generate.go
package handlers

import (
	"errors"
	"net/http"

	"sanctra-backend/internal/generation"
	"sanctra-backend/internal/middleware"
	"sanctra-backend/internal/models"
	"sanctra-backend/internal/services"
	apperrors "sanctra-backend/pkg/errors"
	"sanctra-backend/pkg/utils"
)

type GenerateHandler struct {
	generationService services.GenerationService
}

func NewGenerateHandler(generationService services.GenerationService) *GenerateHandler {
	return &GenerateHandler{
		generationService: generationService,
	}
}

func (h *GenerateHandler) GenerateImage(w http.ResponseWriter, r *http.Request) {
	h.handleGenerate(w, r, generation.KindImage)
}

func (h *GenerateHandler) GenerateSound(w http.ResponseWriter, r *http.Request) {
	h.handleGenerate(w, r, generation.KindSound)
}

func (h *GenerateHandler) GenerateLivingImage(w http.ResponseWriter, r *http.Request) {
	h.handleGenerate(w, r, generation.KindLiving)
}

func (h *GenerateHandler) GetCosts(w http.ResponseWriter, r *http.Request) {
	utils.SendJSONResponse(w, http.StatusOK, h.generationService.Costs())
}

func (h *GenerateHandler) handleGenerate(w http.ResponseWriter, r *http.Request, kind generation.Kind) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendErrorResponse(w, apperrors.NewAppError(
			apperrors.ErrUnauthorized,
			http.StatusUnauthorized,
			"user not found in context",
		))
		return
	}

	var req models.GenerateRequest
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

	response, err := h.generationService.Generate(r.Context(), userID, kind, req.Prompt)
	if err != nil {
		h.sendGenerationError(w, kind, err)
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, response)
}

// sendGenerationError maps generation failures onto the soft "resting"
// envelope the clients expect. A fully exhausted chain is 503; anything
// unexpected becomes a 500 with a calm per-kind message so the UI never
// shows a raw error to the user.
func (h *GenerateHandler) sendGenerationError(w http.ResponseWriter, kind generation.Kind, err error) {
	var exhausted *generation.ExhaustedError
	if errors.As(err, &exhausted) {
		utils.SendJSONResponse(w, http.StatusServiceUnavailable, models.ErrorResponse{
			Error:              exhausted.Message,
			Resting:            true,
			FallbackAudio:      exhausted.FallbackAudio,
			SuggestAlternative: exhausted.SuggestAlternative,
		})
		return
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		utils.SendErrorResponse(w, appErr)
		return
	}

	resp := models.ErrorResponse{Resting: true}
	switch kind {
	case generation.KindSound:
		resp.Error = "AI sound generation is taking a brief pause. Please try again."
		resp.FallbackAudio = "/audio/hidden-garden.mp3"
	case generation.KindLiving:
		resp.Error = "Video generation is temporarily resting. Try creating an AI image instead."
		resp.SuggestAlternative = "image"
	default:
		resp.Error = "Image generation is taking a brief pause. Please try again."
	}
	utils.SendJSONResponse(w, http.StatusInternalServerError, resp)
}
