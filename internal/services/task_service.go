package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"studyhub/internal/models"
	"studyhub/internal/repository"
	"studyhub/internal/validation"
)

var (
	// ErrTaskNotFound covers both a nonexistent task and one owned by someone
	// else; callers never learn which.
	ErrTaskNotFound = errors.New("task not found")
)

// TaskService handles the task board: creation defaults, the status
// lifecycle, and owner-scoped mutations.
type TaskService struct {
	taskRepo repository.TaskRepository
	now      func() time.Time
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		now:      time.Now,
	}
}

// CreateTaskInput represents input for creating a task. Status and
// is_completed are not accepted: a new task always starts Pending.
type CreateTaskInput struct {
	Title       string
	Description string
	SubjectID   *uint64
	DueDate     *time.Time
	Priority    models.TaskPriority
}

// UpdateTaskInput represents input for a partial task update. Nil fields were
// absent from the submission.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	SubjectID    *uint64
	DueDate      *time.Time
	ClearDueDate bool
	Priority     *models.TaskPriority
	Status       *models.TaskStatus
	IsCompleted  *bool
}

// List returns the owner's tasks, pending-first then soonest-due-first.
func (s *TaskService) List(userID uint64) ([]models.Task, error) {
	return s.taskRepo.ListByOwner(userID)
}

// Get returns an owned task.
func (s *TaskService) Get(id, userID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindOwned(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// Create validates the input and creates a task with the forced defaults
// status=Pending, is_completed=false.
func (s *TaskService) Create(userID uint64, input CreateTaskInput) (*models.Task, error) {
	errs := validation.FieldErrors{}
	validation.ValidateTaskTitle(input.Title, errs)

	priority := input.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}
	validation.ValidateTaskPriority(priority, errs)

	if errs.HasErrors() {
		return nil, &ValidationError{Fields: errs}
	}

	task := &models.Task{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		SubjectID:   input.SubjectID,
		DueDate:     input.DueDate,
		Priority:    priority,
		Status:      models.TaskStatusPending,
		IsCompleted: false,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// Update applies a partial, owner-scoped update. Status and is_completed are
// reconciled so that is_completed == (status == Completed) always holds, and
// completed_at is set exactly on the transition into Completed.
func (s *TaskService) Update(id, userID uint64, input UpdateTaskInput) (*models.Task, error) {
	errs := validation.FieldErrors{}
	if input.Title != nil {
		validation.ValidateTaskTitle(*input.Title, errs)
	}
	if input.Priority != nil {
		validation.ValidateTaskPriority(*input.Priority, errs)
	}
	if input.Status != nil {
		validation.ValidateTaskStatus(*input.Status, errs)
	}
	if errs.HasErrors() {
		return nil, &ValidationError{Fields: errs}
	}

	current, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.SubjectID != nil {
		updates["subject_id"] = *input.SubjectID
	}
	if input.ClearDueDate {
		updates["due_date"] = nil
	} else if input.DueDate != nil {
		updates["due_date"] = *input.DueDate
	}
	if input.Priority != nil {
		updates["priority"] = *input.Priority
	}

	// A submission carrying only is_completed still moves the status, keeping
	// the two fields coupled.
	status := input.Status
	if status == nil && input.IsCompleted != nil {
		derived := models.TaskStatusPending
		if *input.IsCompleted {
			derived = models.TaskStatusCompleted
		}
		status = &derived
	}
	if status != nil {
		applyStatusChange(updates, current, *status, s.now())
	}

	if len(updates) == 0 {
		return current, nil
	}
	return s.applyOwned(id, userID, updates)
}

// Start moves a task into InProgress.
func (s *TaskService) Start(id, userID uint64) (*models.Task, error) {
	current, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	applyStatusChange(updates, current, models.TaskStatusInProgress, s.now())
	return s.applyOwned(id, userID, updates)
}

// Complete moves a task into Completed, stamping completed_at on the way in.
// No prior Start is required.
func (s *TaskService) Complete(id, userID uint64) (*models.Task, error) {
	current, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	applyStatusChange(updates, current, models.TaskStatusCompleted, s.now())
	return s.applyOwned(id, userID, updates)
}

// applyStatusChange writes the status move and its coupled fields into the
// update map. Re-completing keeps the original completed_at; leaving
// Completed clears it.
func applyStatusChange(updates map[string]interface{}, current *models.Task, status models.TaskStatus, now time.Time) {
	updates["status"] = status
	if status == models.TaskStatusCompleted {
		updates["is_completed"] = true
		if !current.IsCompleted {
			updates["completed_at"] = now
		}
	} else {
		updates["is_completed"] = false
		updates["completed_at"] = nil
	}
}

func (s *TaskService) applyOwned(id, userID uint64, updates map[string]interface{}) (*models.Task, error) {
	rows, err := s.taskRepo.UpdateOwned(id, userID, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	if rows == 0 {
		return nil, ErrTaskNotFound
	}
	return s.Get(id, userID)
}
