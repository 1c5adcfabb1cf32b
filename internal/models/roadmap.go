package models

import (
	"time"
)

type Roadmap struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Icon        string    `gorm:"type:varchar(50)" json:"icon"`
	Color       string    `gorm:"type:varchar(20)" json:"color"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Courses []RoadmapCourse `gorm:"foreignKey:RoadmapID" json:"courses,omitempty"`
}

type Course struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// RoadmapCourse is the ordered junction between a roadmap and its courses.
type RoadmapCourse struct {
	RoadmapID uint64 `gorm:"primarykey" json:"roadmap_id"`
	CourseID  uint64 `gorm:"primarykey" json:"course_id"`
	Position  int    `gorm:"not null" json:"position"`

	// Relations
	Course Course `gorm:"foreignKey:CourseID" json:"course"`
}
