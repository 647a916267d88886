// pkg/errors/errors.go
package apperrors

import (
	"errors"
	"fmt"
)

// Error types
const (
	ErrValidation        = "VALIDATION_ERROR"
	ErrNotFound          = "NOT_FOUND"
	ErrProfileNotFound   = "PROFILE_NOT_FOUND"
	ErrPostNotFound      = "POST_NOT_FOUND"
	ErrInsufficientCTY   = "INSUFFICIENT_CTY"
	ErrAlreadyClaimed    = "ALREADY_CLAIMED"
	ErrDailyLimitReached = "DAILY_LIMIT_REACHED"
	ErrCooldownActive    = "COOLDOWN_ACTIVE"
	ErrUnauthorized      = "UNAUTHORIZED"
	ErrForbidden         = "FORBIDDEN"
	ErrConflict          = "CONFLICT"
	ErrInternalServer    = "INTERNAL_SERVER_ERROR"
	ErrBadRequest        = "BAD_REQUEST"
)

// AppError represents a custom application error
type AppError struct {
	Type       string `json:"type"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s - %s", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// NewAppError creates a new AppError
func NewAppError(errorType string, statusCode int, message string, details ...string) *AppError {
	var detail string
	if len(details) > 0 {
		detail = details[0]
	}

	return &AppError{
		Type:       errorType,
		StatusCode: statusCode,
		Message:    message,
		Details:    detail,
	}
}

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errorType string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

// GetErrorType extracts the error type from an error
func GetErrorType(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// GetStatusCode extracts the status code from an error
func GetStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return 500 // Default to internal server error
}

// GetHTTPStatusCode is an alias for GetStatusCode for backward compatibility
func GetHTTPStatusCode(err error) int {
	return GetStatusCode(err)
}

// Helper functions to create common errors
func NewProfileNotFoundError() *AppError {
	return NewAppError(ErrProfileNotFound, 404, "Profile not found")
}

func NewPostNotFoundError() *AppError {
	return NewAppError(ErrPostNotFound, 404, "Post not found")
}

func NewInsufficientCTYError() *AppError {
	return NewAppError(ErrInsufficientCTY, 400, "Not enough CTY")
}

func NewAlreadyClaimedError() *AppError {
	return NewAppError(ErrAlreadyClaimed, 400, "Already claimed today. Come back tomorrow!")
}

func NewDailyLimitError(kind string) *AppError {
	return NewAppError(ErrDailyLimitReached, 429, fmt.Sprintf("Daily %s generation limit reached. Come back tomorrow.", kind))
}
