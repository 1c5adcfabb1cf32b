package repository

import (
	"gorm.io/gorm"

	"studyhub/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindOwned finds a task by (id, owner).
func (r *GormTaskRepository) FindOwned(id, userID uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.
		Preload("Subject").
		Where("id = ? AND user_id = ?", id, userID).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByOwner lists the owner's tasks ordered pending-first, then
// soonest-due-first with undated tasks last, then by insertion order.
func (r *GormTaskRepository) ListByOwner(userID uint64) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.
		Preload("Subject").
		Where("user_id = ?", userID).
		Order("is_completed ASC").
		Order("CASE WHEN due_date IS NULL THEN 1 ELSE 0 END, due_date ASC").
		Order("id ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateOwned applies a partial update scoped to (id, owner). A zero row
// count means not-found-or-not-owned; callers must not distinguish the two.
func (r *GormTaskRepository) UpdateOwned(id, userID uint64, updates map[string]interface{}) (int64, error) {
	result := r.db.Model(&models.Task{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	return result.RowsAffected, result.Error
}

// CountByOwner returns open and completed task counts for the owner.
func (r *GormTaskRepository) CountByOwner(userID uint64) (open, completed int64, err error) {
	if err = r.db.Model(&models.Task{}).
		Where("user_id = ? AND is_completed = ?", userID, false).
		Count(&open).Error; err != nil {
		return 0, 0, err
	}
	if err = r.db.Model(&models.Task{}).
		Where("user_id = ? AND is_completed = ?", userID, true).
		Count(&completed).Error; err != nil {
		return 0, 0, err
	}
	return open, completed, nil
}
