// pkg/utils/response.go
package utils

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"sanctra-backend/internal/models"
	apperrors "sanctra-backend/pkg/errors"
)

// SendJSONResponse sends a JSON response with proper error handling
func SendJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	// Marshal the data first to catch any encoding errors
	jsonData, err := json.Marshal(data)
	if err != nil {
		zap.L().Error("Error marshaling JSON response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		fallbackResponse := map[string]string{
			"error": "Internal server error: failed to encode response",
		}
		json.NewEncoder(w).Encode(fallbackResponse)
		return
	}

	w.WriteHeader(statusCode)

	if _, writeErr := w.Write(jsonData); writeErr != nil {
		zap.L().Error("Error writing response", zap.Error(writeErr))
	}
}

// SendErrorResponse maps an error to its HTTP status and sends it as JSON
func SendErrorResponse(w http.ResponseWriter, err error) {
	statusCode := apperrors.GetHTTPStatusCode(err)

	if appErr, ok := err.(*apperrors.AppError); ok {
		SendJSONResponse(w, statusCode, models.ErrorResponse{Error: appErr.Message})
		return
	}

	SendJSONResponse(w, statusCode, models.ErrorResponse{Error: err.Error()})
}

// DecodeJSONBody decodes a JSON request body into dst
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	if err := render.DecodeJSON(r.Body, dst); err != nil {
		return apperrors.NewAppError(apperrors.ErrBadRequest, http.StatusBadRequest, "invalid JSON format")
	}
	return nil
}
