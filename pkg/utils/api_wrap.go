package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// HandleServiceError maps a service error onto the response envelope.
// Validation errors keep their wrapped detail since it names the bad field.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrAuthenticationFailed),
		errors.Is(err, ErrAccountNotFound):
		RespondError(c, http.StatusUnauthorized, "Authentication failed. Please try again.")
	case errors.Is(err, ErrUnsupportedProvider):
		RespondError(c, http.StatusBadRequest, "Unsupported login provider")
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusConflict, "Email already registered")
	case errors.Is(err, ErrSessionNotFound):
		RespondError(c, http.StatusNotFound, "Onboarding session not found")
	case errors.Is(err, ErrPreferencesNotFound):
		RespondError(c, http.StatusNotFound, "Preferences not found")
	case errors.Is(err, ErrSessionEnded):
		RespondError(c, http.StatusConflict, "Onboarding session already finished")
	case errors.Is(err, ErrUnknownField),
		errors.Is(err, ErrUnknownOption),
		errors.Is(err, ErrNotSetField),
		errors.Is(err, ErrNotScalarField),
		errors.Is(err, ErrInvalidValue):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrDatabaseError):
		zap.L().Error("database error", zap.Error(err), zap.String("trace_id", c.GetString("trace_id")))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		zap.L().Error("unhandled service error", zap.Error(err), zap.String("trace_id", c.GetString("trace_id")))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
