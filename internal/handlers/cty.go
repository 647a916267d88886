// internal/handlers/cty.go
package handlers

import (
	"net/http"

	"sanctra-backend/internal/middleware"
	"sanctra-backend/internal/models"
	"sanctra-backend/internal/services"
	apperrors "sanctra-backend/pkg/errors"
	"sanctra-backend/pkg/utils"
)

type CTYHandler struct {
	profileService services.ProfileService
}

func NewCTYHandler(profileService services.ProfileService) *CTYHandler {
	return &CTYHandler{
		profileService: profileService,
	}
}

func (h *CTYHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendErrorResponse(w, apperrors.NewAppError(
			apperrors.ErrUnauthorized,
			http.StatusUnauthorized,
			"user not found in context",
		))
		return
	}

	profile, err := h.profileService.GetOrCreate(r.Context(), userID)
	if err != nil {
		utils.SendErrorResponse(w, err)
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, models.BalanceResponse{
		UserID:  userID,
		Balance: profile.CTYBalance,
	})
}

func (h *CTYHandler) ClaimDaily(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendErrorResponse(w, apperrors.NewAppError(
			apperrors.ErrUnauthorized,
			http.StatusUnauthorized,
			"user not found in context",
		))
		return
	}

	response, err := h.profileService.ClaimDaily(r.Context(), userID)
	if err != nil {
		utils.SendErrorResponse(w, err)
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, response)
}
