package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"studyhub/internal/dto"
	apierrors "studyhub/internal/errors"
	"studyhub/internal/services"
)

// RoadmapHandler coordinates roadmap HTTP handlers.
type RoadmapHandler struct {
	roadmapService *services.RoadmapService
	log            *zap.SugaredLogger
}

// NewRoadmapHandler creates a new RoadmapHandler.
func NewRoadmapHandler(roadmapService *services.RoadmapService, log *zap.SugaredLogger) *RoadmapHandler {
	return &RoadmapHandler{
		roadmapService: roadmapService,
		log:            log,
	}
}

// ListRoadmaps returns active roadmaps ordered by creation time ascending.
func (h *RoadmapHandler) ListRoadmaps(c *gin.Context) {
	roadmaps, err := h.roadmapService.ListActive()
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	respondData(c, http.StatusOK, dto.ToRoadmapSummaryDTOs(roadmaps))
}

// GetRoadmap returns a roadmap with its ordered course list. A roadmap with
// no courses returns an empty list, not an error.
func (h *RoadmapHandler) GetRoadmap(c *gin.Context) {
	roadmapID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid roadmap ID")
		return
	}

	roadmap, err := h.roadmapService.GetDetail(roadmapID)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	respondData(c, http.StatusOK, dto.ToRoadmapDetailDTO(*roadmap))
}
