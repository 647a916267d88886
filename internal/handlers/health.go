// internal/handlers/health.go
package handlers

import (
	"net/http"

	"sanctra-backend/internal/models"
	"sanctra-backend/pkg/utils"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.SendJSONResponse(w, http.StatusOK, models.HealthResponse{
		Status:  "ok",
		Message: "sanctra backend is running",
	})
}
