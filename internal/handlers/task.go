package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"studyhub/internal/dto"
	apierrors "studyhub/internal/errors"
	"studyhub/internal/models"
	"studyhub/internal/services"
)

// TaskHandler coordinates task-board HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
	log         *zap.SugaredLogger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService, log *zap.SugaredLogger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		log:         log,
	}
}

// ListTasks returns the caller's tasks, pending-first then soonest-due-first.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.List(userID)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	respondData(c, http.StatusOK, dto.ToTaskDTOs(tasks))
}

// CreateTask creates a new task. Caller-supplied status or is_completed are
// ignored: a new task always starts Pending and incomplete.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	type CreateTaskRequest struct {
		Title       string              `json:"title" binding:"required"`
		Description string              `json:"description"`
		SubjectID   *uint64             `json:"subject_id"`
		DueDate     *time.Time          `json:"due_date"`
		Priority    models.TaskPriority `json:"priority"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c)
		return
	}

	task, err := h.taskService.Create(userID, services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		SubjectID:   req.SubjectID,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	respondData(c, http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial, owner-scoped update. A task belonging to
// someone else answers exactly like a nonexistent one.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	// Parse raw JSON to detect which fields were sent; "due_date": null means
	// clear, an absent due_date means keep.
	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		abortBadRequest(c)
		return
	}

	input, ok := buildUpdateInput(c, rawReq)
	if !ok {
		return
	}

	task, err := h.taskService.Update(taskID, userID, input)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	respondData(c, http.StatusOK, dto.ToTaskDTO(*task))
}

// StartTask moves a task into InProgress.
func (h *TaskHandler) StartTask(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.Start(taskID, userID)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	respondData(c, http.StatusOK, dto.ToTaskDTO(*task))
}

// CompleteTask moves a task into Completed, stamping its completion time.
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.Complete(taskID, userID)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	respondData(c, http.StatusOK, dto.ToTaskDTO(*task))
}

func taskIDParam(c *gin.Context) (uint64, bool) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return 0, false
	}
	return taskID, true
}

// buildUpdateInput converts the raw field map into a typed update input.
func buildUpdateInput(c *gin.Context, rawReq map[string]any) (services.UpdateTaskInput, bool) {
	var input services.UpdateTaskInput

	if title, ok := rawReq["title"]; ok {
		if titleStr, ok := title.(string); ok {
			input.Title = &titleStr
		}
	}
	if description, ok := rawReq["description"]; ok {
		if descStr, ok := description.(string); ok {
			input.Description = &descStr
		}
	}
	if subjectID, ok := rawReq["subject_id"]; ok {
		if idNum, ok := subjectID.(float64); ok {
			id := uint64(idNum)
			input.SubjectID = &id
		}
	}
	if dueDate, ok := rawReq["due_date"]; ok {
		if dueDate == nil {
			input.ClearDueDate = true
		} else if dueDateStr, ok := dueDate.(string); ok {
			parsed, err := time.Parse(time.RFC3339, dueDateStr)
			if err != nil {
				apierrors.BadRequest(c, "Invalid due_date")
				return input, false
			}
			input.DueDate = &parsed
		}
	}
	if priority, ok := rawReq["priority"]; ok {
		if priorityStr, ok := priority.(string); ok {
			p := models.TaskPriority(priorityStr)
			input.Priority = &p
		}
	}
	if status, ok := rawReq["status"]; ok {
		if statusStr, ok := status.(string); ok {
			s := models.TaskStatus(statusStr)
			input.Status = &s
		}
	}
	if isCompleted, ok := rawReq["is_completed"]; ok {
		if isCompletedBool, ok := isCompleted.(bool); ok {
			input.IsCompleted = &isCompletedBool
		}
	}

	return input, true
}
