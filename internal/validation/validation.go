// Package validation holds the declarative field rules for profile and task
// submissions, plus the academic-timeline cross-field check. Failures come
// back as a per-field error map suitable for inline rendering.
package validation

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"studyhub/internal/models"
	"studyhub/internal/social"
)

// FieldErrors maps a field name to the list of violated constraints.
type FieldErrors map[string][]string

func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// HasErrors reports whether any field failed.
func (e FieldErrors) HasErrors() bool {
	return len(e) > 0
}

// Field bounds, mirrored by the client.
const (
	MinFullNameLen = 2
	MaxBioLen      = 500
	MinLevel       = 1
	MaxLevel       = 7
	MinSemester    = 1
	MaxSemester    = 12
	MinTawjihiYear = 2000
	MaxTawjihiYear = 2100
	MinTawjihiAvg  = 50
	MaxTawjihiAvg  = 100
	MinTaskTitle   = 3
)

// ProfileInput carries the fields present in a profile submission. Nil means
// the field was absent and must be left untouched.
type ProfileInput struct {
	FullName         *string
	Bio              *string
	AvatarURL        *string
	UniversityID     *string
	Department       *string
	Level            *int
	CurrentSemester  *int
	TawjihiYear      *int
	TawjihiAverage   *float64
	SocialLinks      map[string]string
	CurrentRoadmapID *uint64
}

// ValidateProfile checks every submitted field and, when the per-field rules
// pass, applies the academic-timeline rule against the supplied clock.
func ValidateProfile(input ProfileInput, now time.Time) FieldErrors {
	errs := FieldErrors{}

	if input.FullName != nil && len(strings.TrimSpace(*input.FullName)) < MinFullNameLen {
		errs.Add("full_name", fmt.Sprintf("must be at least %d characters", MinFullNameLen))
	}
	if input.Bio != nil && len(*input.Bio) > MaxBioLen {
		errs.Add("bio", fmt.Sprintf("must be at most %d characters", MaxBioLen))
	}
	if input.AvatarURL != nil && *input.AvatarURL != "" && !isAbsoluteURL(*input.AvatarURL) {
		errs.Add("avatar_url", "must be a valid URL")
	}
	if input.Level != nil && (*input.Level < MinLevel || *input.Level > MaxLevel) {
		errs.Add("level", fmt.Sprintf("must be between %d and %d", MinLevel, MaxLevel))
	}
	if input.CurrentSemester != nil && (*input.CurrentSemester < MinSemester || *input.CurrentSemester > MaxSemester) {
		errs.Add("current_semester", fmt.Sprintf("must be between %d and %d", MinSemester, MaxSemester))
	}
	if input.TawjihiYear != nil && (*input.TawjihiYear < MinTawjihiYear || *input.TawjihiYear > MaxTawjihiYear) {
		errs.Add("tawjihi_year", fmt.Sprintf("must be between %d and %d", MinTawjihiYear, MaxTawjihiYear))
	}
	if input.TawjihiAverage != nil && (*input.TawjihiAverage < MinTawjihiAvg || *input.TawjihiAverage > MaxTawjihiAvg) {
		errs.Add("tawjihi_average", fmt.Sprintf("must be between %d and %d", MinTawjihiAvg, MaxTawjihiAvg))
	}

	for platformID, link := range input.SocialLinks {
		if !social.Known(platformID) {
			errs.Add("social_links", fmt.Sprintf("unsupported platform %q", platformID))
			continue
		}
		if link != "" && !social.IsValid(platformID, link) {
			errs.Add("social_links", fmt.Sprintf("invalid %s link", platformID))
		}
	}

	if errs.HasErrors() {
		return errs
	}

	return checkAcademicTimeline(input.Level, input.TawjihiYear, now)
}

// checkAcademicTimeline enforces that enough calendar years have elapsed since
// Tawjihi graduation to reach the claimed academic level. Applied only when
// both fields are present in the submission; violations attach to both.
func checkAcademicTimeline(level, tawjihiYear *int, now time.Time) FieldErrors {
	errs := FieldErrors{}
	if level == nil || tawjihiYear == nil {
		return errs
	}

	lag := now.Year() - *tawjihiYear
	if lag < *level {
		errs.Add("level", "level implies an earlier Tawjihi year")
		errs.Add("tawjihi_year", "year implies a lower academic level")
	}
	return errs
}

// ValidateTaskTitle checks the task title rule.
func ValidateTaskTitle(title string, errs FieldErrors) {
	if len(strings.TrimSpace(title)) < MinTaskTitle {
		errs.Add("title", fmt.Sprintf("must be at least %d characters", MinTaskTitle))
	}
}

// ValidateTaskPriority checks the priority enum.
func ValidateTaskPriority(priority models.TaskPriority, errs FieldErrors) {
	switch priority {
	case models.TaskPriorityLow, models.TaskPriorityMedium, models.TaskPriorityHigh:
	default:
		errs.Add("priority", "must be one of Low, Medium, High")
	}
}

// ValidateTaskStatus checks the status enum.
func ValidateTaskStatus(status models.TaskStatus, errs FieldErrors) {
	switch status {
	case models.TaskStatusPending, models.TaskStatusInProgress, models.TaskStatusCompleted:
	default:
		errs.Add("status", "must be one of Pending, InProgress, Completed")
	}
}

func isAbsoluteURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}
