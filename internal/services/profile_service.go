package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"studyhub/internal/cache"
	"studyhub/internal/models"
	"studyhub/internal/repository"
	"studyhub/internal/social"
	"studyhub/internal/validation"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
)

// viewTTL bounds staleness of the cached profile and dashboard views.
const viewTTL = 5 * time.Minute

// ProfileService handles the validated profile mutation flow and the cached
// profile/dashboard reads.
type ProfileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
	taskRepo    repository.TaskRepository
	views       cache.Store
	log         *zap.SugaredLogger
	now         func() time.Time
}

// NewProfileService creates a new ProfileService. views may be nil, in which
// case every read goes to the store.
func NewProfileService(
	profileRepo repository.ProfileRepository,
	userRepo repository.UserRepository,
	taskRepo repository.TaskRepository,
	views cache.Store,
	log *zap.SugaredLogger,
) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		taskRepo:    taskRepo,
		views:       views,
		log:         log,
		now:         time.Now,
	}
}

// UpdateProfileInput mirrors validation.ProfileInput; nil fields were absent
// from the submission and stay untouched.
type UpdateProfileInput = validation.ProfileInput

// Get returns the caller's profile with enrollments, via the view cache.
func (s *ProfileService) Get(ctx context.Context, userID uint64) (*models.Profile, error) {
	if s.views != nil {
		if raw, ok, err := s.views.Get(ctx, cache.ProfileKey(userID)); err == nil && ok {
			var profile models.Profile
			if err := json.Unmarshal(raw, &profile); err == nil {
				return &profile, nil
			}
		} else if err != nil {
			s.log.Warnw("profile view cache read failed", "error", err)
		}
	}

	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}

	s.cacheProfile(ctx, userID, profile)
	return profile, nil
}

// Update runs the full mutation flow: per-field validation, the academic
// timeline rule, a partial persist of only the submitted fields, best-effort
// display-name propagation, and view-cache invalidation.
func (s *ProfileService) Update(ctx context.Context, userID uint64, input UpdateProfileInput) (*models.Profile, error) {
	// Normalize social links before validating so the canonical form is what
	// gets checked and stored.
	if input.SocialLinks != nil {
		normalized := make(map[string]string, len(input.SocialLinks))
		for platformID, raw := range input.SocialLinks {
			normalized[platformID] = social.Normalize(platformID, raw)
		}
		input.SocialLinks = normalized
	}

	if errs := validation.ValidateProfile(input, s.now()); errs.HasErrors() {
		return nil, &ValidationError{Fields: errs}
	}

	updates := buildProfileUpdates(input)

	rows, err := s.profileRepo.UpdateFields(userID, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if rows == 0 {
		return nil, ErrProfileNotFound
	}

	// Propagate the display name to the identity copy. Best-effort: a failure
	// here must not fail the profile update.
	if input.FullName != nil {
		if err := s.userRepo.UpdateDisplayName(userID, *input.FullName); err != nil {
			s.log.Warnw("display name propagation failed", "user_id", userID, "error", err)
		}
	}

	s.invalidateViews(ctx, userID)

	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload profile: %w", err)
	}
	return profile, nil
}

// DashboardSummary is the derived dashboard view: profile completion plus
// task counts.
type DashboardSummary struct {
	CompletionPercent int   `json:"completion_percent"`
	FieldsFilled      int   `json:"fields_filled"`
	FieldsTotal       int   `json:"fields_total"`
	OpenTasks         int64 `json:"open_tasks"`
	CompletedTasks    int64 `json:"completed_tasks"`
}

// Dashboard computes (or serves from cache) the caller's dashboard summary.
func (s *ProfileService) Dashboard(ctx context.Context, userID uint64) (*DashboardSummary, error) {
	if s.views != nil {
		if raw, ok, err := s.views.Get(ctx, cache.DashboardKey(userID)); err == nil && ok {
			var summary DashboardSummary
			if err := json.Unmarshal(raw, &summary); err == nil {
				return &summary, nil
			}
		} else if err != nil {
			s.log.Warnw("dashboard cache read failed", "error", err)
		}
	}

	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}

	open, completed, err := s.taskRepo.CountByOwner(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	filled, total := profileCompletion(profile)
	summary := &DashboardSummary{
		CompletionPercent: filled * 100 / total,
		FieldsFilled:      filled,
		FieldsTotal:       total,
		OpenTasks:         open,
		CompletedTasks:    completed,
	}

	if s.views != nil {
		if raw, err := json.Marshal(summary); err == nil {
			if err := s.views.Set(ctx, cache.DashboardKey(userID), raw, viewTTL); err != nil {
				s.log.Warnw("dashboard cache write failed", "error", err)
			}
		}
	}

	return summary, nil
}

func (s *ProfileService) cacheProfile(ctx context.Context, userID uint64, profile *models.Profile) {
	if s.views == nil {
		return
	}
	raw, err := json.Marshal(profile)
	if err != nil {
		return
	}
	if err := s.views.Set(ctx, cache.ProfileKey(userID), raw, viewTTL); err != nil {
		s.log.Warnw("profile view cache write failed", "error", err)
	}
}

func (s *ProfileService) invalidateViews(ctx context.Context, userID uint64) {
	if s.views == nil {
		return
	}
	if err := s.views.Delete(ctx, cache.ProfileKey(userID), cache.DashboardKey(userID)); err != nil {
		s.log.Warnw("view cache invalidation failed", "user_id", userID, "error", err)
	}
}

// buildProfileUpdates maps only the submitted fields into a column update
// map, preserving partial-update semantics.
func buildProfileUpdates(input UpdateProfileInput) map[string]interface{} {
	updates := map[string]interface{}{}
	if input.FullName != nil {
		updates["full_name"] = *input.FullName
	}
	if input.Bio != nil {
		updates["bio"] = *input.Bio
	}
	if input.AvatarURL != nil {
		updates["avatar_url"] = *input.AvatarURL
	}
	if input.UniversityID != nil {
		updates["university_id"] = *input.UniversityID
	}
	if input.Department != nil {
		updates["department"] = *input.Department
	}
	if input.Level != nil {
		updates["level"] = *input.Level
	}
	if input.CurrentSemester != nil {
		updates["current_semester"] = *input.CurrentSemester
	}
	if input.TawjihiYear != nil {
		updates["tawjihi_year"] = *input.TawjihiYear
	}
	if input.TawjihiAverage != nil {
		updates["tawjihi_average"] = *input.TawjihiAverage
	}
	if input.SocialLinks != nil {
		links := make(map[string]interface{}, len(input.SocialLinks))
		for platformID, link := range input.SocialLinks {
			links[platformID] = link
		}
		updates["social_links"] = datatypes.JSONMap(links)
	}
	if input.CurrentRoadmapID != nil {
		updates["current_roadmap_id"] = *input.CurrentRoadmapID
	}
	return updates
}

// profileCompletion counts populated required fields for the completion
// widget.
func profileCompletion(p *models.Profile) (filled, total int) {
	checks := []bool{
		p.FullName != "",
		p.Bio != "",
		p.AvatarURL != "",
		p.UniversityID != "",
		p.Department != "",
		p.Level != nil,
		p.CurrentSemester != nil,
		p.TawjihiYear != nil,
		p.TawjihiAverage != nil,
		p.CurrentRoadmapID != nil,
		len(p.SocialLinks) > 0,
	}
	for _, ok := range checks {
		if ok {
			filled++
		}
	}
	return filled, len(checks)
}
