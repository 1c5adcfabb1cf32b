package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "studyhub/internal/errors"
	"studyhub/internal/middleware"
	"studyhub/internal/services"
)

// respondData wraps a success payload in the response envelope.
func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"data": data})
}

// respondDataMessage wraps a success payload with a user-facing message.
func respondDataMessage(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, gin.H{"data": data, "message": message})
}

// respondServiceError maps service errors onto the API error envelope.
// Validation failures carry field details; everything unexpected is logged
// server-side and surfaced as a generic failure with detail suppressed.
func respondServiceError(c *gin.Context, log *zap.SugaredLogger, err error) {
	var validationErr *services.ValidationError

	switch {
	case errors.As(err, &validationErr):
		apierrors.ValidationFailed(c, validationErr.Fields)
	case errors.Is(err, services.ErrProfileNotFound):
		apierrors.NotFound(c, "Profile not found")
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrRoadmapNotFound):
		apierrors.NotFound(c, "Roadmap not found")
	default:
		log.Errorw("request failed", "path", c.Request.URL.Path, "error", err)
		apierrors.InternalError(c, "")
	}
}

func abortBadRequest(c *gin.Context) {
	apierrors.BadRequest(c, "Invalid request body")
}

// requireUserID pulls the authenticated user from the context or answers 401.
func requireUserID(c *gin.Context) (uint64, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return 0, false
	}
	return userID, true
}
