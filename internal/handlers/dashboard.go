package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"studyhub/internal/services"
)

// DashboardHandler serves the derived dashboard summary.
type DashboardHandler struct {
	profileService *services.ProfileService
	log            *zap.SugaredLogger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(profileService *services.ProfileService, log *zap.SugaredLogger) *DashboardHandler {
	return &DashboardHandler{
		profileService: profileService,
		log:            log,
	}
}

// GetSummary returns profile completion and task counts for the caller.
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	summary, err := h.profileService.Dashboard(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	respondData(c, http.StatusOK, summary)
}
