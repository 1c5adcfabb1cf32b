package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"studyhub/internal/dto"
	"studyhub/internal/services"
)

// ProfileHandler coordinates profile HTTP handlers.
type ProfileHandler struct {
	profileService *services.ProfileService
	log            *zap.SugaredLogger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService *services.ProfileService, log *zap.SugaredLogger) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		log:            log,
	}
}

// GetProfile returns the caller's profile with enrollments.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.Get(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	respondData(c, http.StatusOK, dto.ToProfileDTO(*profile))
}

// UpdateProfile applies a validated partial update to the caller's profile.
// Fields absent from the body are left untouched.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	type UpdateProfileRequest struct {
		FullName         *string           `json:"full_name"`
		Bio              *string           `json:"bio"`
		AvatarURL        *string           `json:"avatar_url"`
		UniversityID     *string           `json:"university_id"`
		Department       *string           `json:"department"`
		Level            *int              `json:"level"`
		CurrentSemester  *int              `json:"current_semester"`
		TawjihiYear      *int              `json:"tawjihi_year"`
		TawjihiAverage   *float64          `json:"tawjihi_average"`
		SocialLinks      map[string]string `json:"social_links"`
		CurrentRoadmapID *uint64           `json:"current_roadmap_id"`
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c)
		return
	}

	profile, err := h.profileService.Update(c.Request.Context(), userID, services.UpdateProfileInput{
		FullName:         req.FullName,
		Bio:              req.Bio,
		AvatarURL:        req.AvatarURL,
		UniversityID:     req.UniversityID,
		Department:       req.Department,
		Level:            req.Level,
		CurrentSemester:  req.CurrentSemester,
		TawjihiYear:      req.TawjihiYear,
		TawjihiAverage:   req.TawjihiAverage,
		SocialLinks:      req.SocialLinks,
		CurrentRoadmapID: req.CurrentRoadmapID,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	respondDataMessage(c, http.StatusOK, dto.ToProfileDTO(*profile), "Profile updated successfully!")
}
