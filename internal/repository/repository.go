package repository

import (
	"studyhub/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// CreateWithProfile creates a user and their empty profile atomically.
	CreateWithProfile(user *models.User, profile *models.Profile) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// UpdateDisplayName updates the denormalized display name copy.
	UpdateDisplayName(id uint64, name string) error
}

// ProfileRepository defines the interface for profile data access
type ProfileRepository interface {
	// FindByUserID finds a profile by its owner, with enrollments preloaded.
	FindByUserID(userID uint64) (*models.Profile, error)

	// UpdateFields applies a partial update to the owner's profile. Fields not
	// present in updates are left untouched. Returns the number of rows
	// matched by the owner predicate.
	UpdateFields(userID uint64, updates map[string]interface{}) (int64, error)
}

// TaskRepository defines the interface for task data access. Every mutation
// carries an explicit owner predicate; a mutation matching zero rows means
// the task does not exist or is not owned by the caller.
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindOwned finds a task by (id, owner).
	FindOwned(id, userID uint64) (*models.Task, error)

	// ListByOwner lists the owner's tasks, pending-first then soonest-due,
	// insertion order breaking ties.
	ListByOwner(userID uint64) ([]models.Task, error)

	// UpdateOwned applies a partial update scoped to (id, owner) and returns
	// the number of rows matched.
	UpdateOwned(id, userID uint64, updates map[string]interface{}) (int64, error)

	// CountByOwner returns the owner's open and completed task counts.
	CountByOwner(userID uint64) (open, completed int64, err error)
}

// RoadmapRepository defines the interface for roadmap data access. Roadmaps
// are read-only from this service's perspective.
type RoadmapRepository interface {
	// ListActive lists active roadmaps ordered by creation time ascending.
	ListActive() ([]models.Roadmap, error)

	// FindByID finds a roadmap with its courses ordered by position.
	FindByID(id uint64) (*models.Roadmap, error)
}
