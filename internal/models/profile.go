package models

import (
	"time"

	"gorm.io/datatypes"
)

type Profile struct {
	ID     uint64 `gorm:"primarykey" json:"id"`
	UserID uint64 `gorm:"uniqueIndex;not null" json:"user_id"`

	FullName        string  `gorm:"type:varchar(255)" json:"full_name"`
	Bio             string  `gorm:"type:varchar(500)" json:"bio"`
	AvatarURL       string  `gorm:"type:varchar(500)" json:"avatar_url"`
	UniversityID    string  `gorm:"type:varchar(50)" json:"university_id"`
	Department      string  `gorm:"type:varchar(100)" json:"department"`
	Level           *int    `json:"level"`
	CurrentSemester *int    `json:"current_semester"`
	TawjihiYear     *int    `json:"tawjihi_year"`
	TawjihiAverage  *float64 `json:"tawjihi_average"`

	// SocialLinks maps platform id (github, linkedin, twitter, website) to the
	// canonical absolute URL.
	SocialLinks datatypes.JSONMap `json:"social_links"`

	// CurrentRoadmapID is the single roadmap the student committed to.
	// Intentionally no foreign key: the overwrite is unconditional.
	CurrentRoadmapID *uint64 `json:"current_roadmap_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Enrollments []SubjectEnrollment `gorm:"foreignKey:ProfileID" json:"enrollments,omitempty"`
}
