// internal/common/errors/handler.go
package errors

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorHandler normalizes errors and writes them as JSON API responses
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// HandleRequestError handles any error raised while serving a request
func (h *ErrorHandler) HandleRequestError(c *gin.Context, err error) {
	// Normalize to StandardError
	stdErr := h.normalizeError(err)

	status := HTTPStatus(stdErr.Code)

	// Log
	h.logError(c, stdErr, status)

	c.AbortWithStatusJSON(status, gin.H{
		"error":     stdErr,
		"requestId": c.GetString("requestId"),
	})
}

// normalizeError ensures we always have a StandardError
func (h *ErrorHandler) normalizeError(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      "INTERNAL_ERROR",
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// HTTPStatus maps an error code to the response status.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeValidationFailed:
		return http.StatusUnprocessableEntity
	case ErrCodeNoCoverageSelected,
		ErrCodeUnknownCoverageType,
		ErrCodeInvalidFilterFormat,
		ErrCodeInvalidRequest,
		ErrCodeFormSpecInvalid:
		return http.StatusBadRequest
	case ErrCodeSubmissionNotFound,
		ErrCodeFormSpecMissing,
		"RESOURCE_NOT_FOUND":
		return http.StatusNotFound
	case ErrCodeDuplicateSubmission,
		ErrCodeInvalidTransition,
		"BUSINESS_RULE_VIOLATION":
		return http.StatusConflict
	case ErrCodeQueryTimeout,
		ErrCodeSearchTimeout,
		ErrCodeRenderTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeRenderFailed,
		ErrCodeIndexNotFound,
		ErrCodeNotificationSendFailed,
		"EXTERNAL_SERVICE_ERROR":
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *ErrorHandler) logError(c *gin.Context, stdErr *StandardError, status int) {
	h.logger.Error("Request failed", map[string]interface{}{
		"method":        c.Request.Method,
		"path":          c.FullPath(),
		"status":        status,
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"retryable":     stdErr.Retryable,
		"errorCategory": GetErrorCategory(stdErr.Code),
		"requestId":     c.GetString("requestId"),
	})
}
