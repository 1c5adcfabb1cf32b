package repository

import (
	"gorm.io/gorm"

	"studyhub/internal/models"
)

// GormRoadmapRepository is a GORM implementation of RoadmapRepository
type GormRoadmapRepository struct {
	db *gorm.DB
}

// NewRoadmapRepository creates a new RoadmapRepository
func NewRoadmapRepository(db *gorm.DB) RoadmapRepository {
	return &GormRoadmapRepository{db: db}
}

// ListActive lists active roadmaps ordered by creation time ascending.
func (r *GormRoadmapRepository) ListActive() ([]models.Roadmap, error) {
	var roadmaps []models.Roadmap
	if err := r.db.
		Where("is_active = ?", true).
		Order("created_at ASC").
		Find(&roadmaps).Error; err != nil {
		return nil, err
	}
	return roadmaps, nil
}

// FindByID finds a roadmap with its course list ordered by position. A
// roadmap with no courses comes back with an empty list, not an error.
func (r *GormRoadmapRepository) FindByID(id uint64) (*models.Roadmap, error) {
	var roadmap models.Roadmap
	if err := r.db.
		Preload("Courses", func(db *gorm.DB) *gorm.DB {
			return db.Order("roadmap_courses.position ASC")
		}).
		Preload("Courses.Course").
		First(&roadmap, id).Error; err != nil {
		return nil, err
	}
	return &roadmap, nil
}
