package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"studyhub/internal/models"
	"studyhub/internal/repository"
)

var (
	ErrRoadmapNotFound = errors.New("roadmap not found")
)

// RoadmapService exposes the read side of roadmap selection. The write side
// is the profile update with current_roadmap_id: an unconditional overwrite
// with no existence or active check at this layer.
type RoadmapService struct {
	roadmapRepo repository.RoadmapRepository
}

// NewRoadmapService creates a new RoadmapService
func NewRoadmapService(roadmapRepo repository.RoadmapRepository) *RoadmapService {
	return &RoadmapService{
		roadmapRepo: roadmapRepo,
	}
}

// ListActive returns active roadmaps ordered by creation time ascending.
func (s *RoadmapService) ListActive() ([]models.Roadmap, error) {
	return s.roadmapRepo.ListActive()
}

// GetDetail returns a roadmap with its ordered course list. A roadmap with no
// courses is a valid result with an empty list.
func (s *RoadmapService) GetDetail(id uint64) (*models.Roadmap, error) {
	roadmap, err := s.roadmapRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoadmapNotFound
		}
		return nil, fmt.Errorf("failed to find roadmap: %w", err)
	}
	return roadmap, nil
}
