package handler

import (
	"log"
	"net/http"
	"time"

	"roomchat/backend/internal/apperrors"

	"github.com/gin-gonic/gin"
)

// APIResponse is the uniform envelope for every non-gate response.
type APIResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      any    `json:"data"`
	Timestamp int64  `json:"timestamp"`
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, APIResponse{
		Success:   status < http.StatusBadRequest,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	})
}

// respondError maps the error taxonomy to HTTP statuses in one place.
// Unclassified errors are logged with full detail and surfaced as a bare
// 500, so internals never leak to clients.
func respondError(c *gin.Context, err error) {
	status := statusFor(apperrors.KindOf(err))
	if status == http.StatusInternalServerError {
		log.Printf("ERROR: %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	respond(c, status, apperrors.MessageOf(err), nil)
}

func statusFor(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindValidation, apperrors.KindConflict, apperrors.KindInvalidState:
		return http.StatusBadRequest
	case apperrors.KindAuthentication:
		return http.StatusUnauthorized
	case apperrors.KindAuthorization:
		return http.StatusForbidden
	case apperrors.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
