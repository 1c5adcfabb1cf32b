package dto

import (
	"studyhub/internal/models"
)

// RoadmapSummaryDTO represents a roadmap in list responses
type RoadmapSummaryDTO struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

// RoadmapCourseDTO represents one course within a roadmap, in order
type RoadmapCourseDTO struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Position    int    `json:"position"`
}

// RoadmapDetailDTO represents a roadmap with its ordered course list
type RoadmapDetailDTO struct {
	RoadmapSummaryDTO
	Courses []RoadmapCourseDTO `json:"courses"`
}

// ToRoadmapSummaryDTO converts a Roadmap model to RoadmapSummaryDTO
func ToRoadmapSummaryDTO(roadmap models.Roadmap) RoadmapSummaryDTO {
	return RoadmapSummaryDTO{
		ID:          roadmap.ID,
		Title:       roadmap.Title,
		Description: roadmap.Description,
		Icon:        roadmap.Icon,
		Color:       roadmap.Color,
	}
}

// ToRoadmapSummaryDTOs converts a slice of roadmaps
func ToRoadmapSummaryDTOs(roadmaps []models.Roadmap) []RoadmapSummaryDTO {
	dtos := make([]RoadmapSummaryDTO, len(roadmaps))
	for i, roadmap := range roadmaps {
		dtos[i] = ToRoadmapSummaryDTO(roadmap)
	}
	return dtos
}

// ToRoadmapDetailDTO converts a roadmap with preloaded courses. Courses is
// never nil so an empty roadmap renders as an empty list.
func ToRoadmapDetailDTO(roadmap models.Roadmap) RoadmapDetailDTO {
	courses := make([]RoadmapCourseDTO, len(roadmap.Courses))
	for i, rc := range roadmap.Courses {
		courses[i] = RoadmapCourseDTO{
			ID:          rc.Course.ID,
			Title:       rc.Course.Title,
			Description: rc.Course.Description,
			Position:    rc.Position,
		}
	}

	return RoadmapDetailDTO{
		RoadmapSummaryDTO: ToRoadmapSummaryDTO(roadmap),
		Courses:           courses,
	}
}
