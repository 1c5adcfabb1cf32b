package dto

import (
	"time"

	"studyhub/internal/models"
	"studyhub/internal/social"
)

// SubjectDTO represents a university subject in API responses
type SubjectDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// EnrollmentDTO represents a subject enrollment in API responses
type EnrollmentDTO struct {
	Subject    SubjectDTO `json:"subject"`
	EnrolledAt time.Time  `json:"enrolled_at"`
}

// ProfileDTO represents a profile in API responses. SocialLinks holds the
// canonical URLs; SocialHandles the display values (base URL stripped).
type ProfileDTO struct {
	ID               uint64            `json:"id"`
	UserID           uint64            `json:"user_id"`
	FullName         string            `json:"full_name"`
	Bio              string            `json:"bio"`
	AvatarURL        string            `json:"avatar_url"`
	UniversityID     string            `json:"university_id"`
	Department       string            `json:"department"`
	Level            *int              `json:"level"`
	CurrentSemester  *int              `json:"current_semester"`
	TawjihiYear      *int              `json:"tawjihi_year"`
	TawjihiAverage   *float64          `json:"tawjihi_average"`
	SocialLinks      map[string]string `json:"social_links"`
	SocialHandles    map[string]string `json:"social_handles"`
	CurrentRoadmapID *uint64           `json:"current_roadmap_id"`
	Enrollments      []EnrollmentDTO   `json:"enrollments,omitempty"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// ToSubjectDTO converts a UniversitySubject model to SubjectDTO
func ToSubjectDTO(subject models.UniversitySubject) SubjectDTO {
	return SubjectDTO{
		ID:   subject.ID,
		Name: subject.Name,
		Code: subject.Code,
	}
}

// ToProfileDTO converts a Profile model to ProfileDTO
func ToProfileDTO(profile models.Profile) ProfileDTO {
	links := make(map[string]string, len(profile.SocialLinks))
	handles := make(map[string]string, len(profile.SocialLinks))
	for platformID, value := range profile.SocialLinks {
		link, _ := value.(string)
		links[platformID] = link
		handles[platformID] = social.InputValue(platformID, link)
	}

	dto := ProfileDTO{
		ID:               profile.ID,
		UserID:           profile.UserID,
		FullName:         profile.FullName,
		Bio:              profile.Bio,
		AvatarURL:        profile.AvatarURL,
		UniversityID:     profile.UniversityID,
		Department:       profile.Department,
		Level:            profile.Level,
		CurrentSemester:  profile.CurrentSemester,
		TawjihiYear:      profile.TawjihiYear,
		TawjihiAverage:   profile.TawjihiAverage,
		SocialLinks:      links,
		SocialHandles:    handles,
		CurrentRoadmapID: profile.CurrentRoadmapID,
		UpdatedAt:        profile.UpdatedAt,
	}

	if len(profile.Enrollments) > 0 {
		dto.Enrollments = make([]EnrollmentDTO, len(profile.Enrollments))
		for i, enrollment := range profile.Enrollments {
			dto.Enrollments[i] = EnrollmentDTO{
				Subject:    ToSubjectDTO(enrollment.Subject),
				EnrolledAt: enrollment.EnrolledAt,
			}
		}
	}

	return dto
}
