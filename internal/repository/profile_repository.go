package repository

import (
	"gorm.io/gorm"

	"studyhub/internal/models"
)

// GormProfileRepository is a GORM implementation of ProfileRepository
type GormProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &GormProfileRepository{db: db}
}

// FindByUserID finds a profile by its owner with enrollments preloaded.
func (r *GormProfileRepository) FindByUserID(userID uint64) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.
		Preload("Enrollments").
		Preload("Enrollments.Subject").
		Where("user_id = ?", userID).
		First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateFields applies a partial update scoped to the owner. Absent fields
// stay untouched.
func (r *GormProfileRepository) UpdateFields(userID uint64, updates map[string]interface{}) (int64, error) {
	if len(updates) == 0 {
		return 1, nil
	}
	result := r.db.Model(&models.Profile{}).
		Where("user_id = ?", userID).
		Updates(updates)
	return result.RowsAffected, result.Error
}
