package models

import (
	"time"
)

type UniversitySubject struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Code      string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"code"`
	CreatedAt time.Time `json:"created_at"`
}

// SubjectEnrollment links a profile to a university subject.
type SubjectEnrollment struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	ProfileID  uint64    `gorm:"not null;index" json:"profile_id"`
	SubjectID  uint64    `gorm:"not null" json:"subject_id"`
	EnrolledAt time.Time `json:"enrolled_at"`

	// Relations
	Subject UniversitySubject `gorm:"foreignKey:SubjectID" json:"subject"`
}
