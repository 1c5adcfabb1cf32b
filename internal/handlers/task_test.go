package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"studyhub/internal/constants"
	"studyhub/internal/database"
	"studyhub/internal/dto"
	"studyhub/internal/logger"
	"studyhub/internal/models"
	"studyhub/internal/repository"
	"studyhub/internal/services"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	svc     *services.TaskService
	handler *TaskHandler
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	// Run migrations
	err = suite.db.AutoMigrate(
		&models.User{},
		&models.UniversitySubject{},
		&models.Task{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	suite.svc = services.NewTaskService(repository.NewTaskRepository(suite.db))
	suite.handler = NewTaskHandler(suite.svc, logger.NewNop())

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskHandlerTestSuite) createTestUser(username string) *models.User {
	user := &models.User{
		Username:     username,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *TaskHandlerTestSuite) createTestTask(title string, userID uint64) *models.Task {
	task, err := suite.svc.Create(userID, services.CreateTaskInput{Title: title})
	suite.Require().NoError(err)
	return task
}

// Helper function to create authenticated context
func (suite *TaskHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

func (suite *TaskHandlerTestSuite) setIDParam(c *gin.Context, id uint64) {
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(id, 10)}}
}

type taskEnvelope struct {
	Data dto.TaskDTO `json:"data"`
}

type taskListEnvelope struct {
	Data []dto.TaskDTO `json:"data"`
}

func (suite *TaskHandlerTestSuite) TestListTasks_Success() {
	user := suite.createTestUser("student")
	task := suite.createTestTask("Review lecture notes", user.ID)

	c, w := suite.createAuthContext("GET", "/api/tasks", nil, user.ID)

	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response taskListEnvelope
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	suite.Require().Len(response.Data, 1)
	assert.Equal(suite.T(), task.Title, response.Data[0].Title)
}

func (suite *TaskHandlerTestSuite) TestListTasks_Unauthorized() {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/tasks", nil)
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_Success() {
	user := suite.createTestUser("student")

	requestBody := map[string]interface{}{
		"title":       "Write lab report",
		"description": "Physics lab 3",
		"priority":    "High",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks", body, user.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response taskEnvelope
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Write lab report", response.Data.Title)
	assert.Equal(suite.T(), models.TaskPriorityHigh, response.Data.Priority)
	assert.Equal(suite.T(), models.TaskStatusPending, response.Data.Status)
	assert.False(suite.T(), response.Data.IsCompleted)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_StatusInBodyIgnored() {
	user := suite.createTestUser("student")

	// A client cannot create a task directly in a later state.
	requestBody := map[string]interface{}{
		"title":        "Write lab report",
		"status":       "Completed",
		"is_completed": true,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks", body, user.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response taskEnvelope
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.TaskStatusPending, response.Data.Status)
	assert.False(suite.T(), response.Data.IsCompleted)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_MissingTitle() {
	user := suite.createTestUser("student")

	requestBody := map[string]interface{}{
		"description": "no title here",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks", body, user.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_TitleTooShort() {
	user := suite.createTestUser("student")

	requestBody := map[string]interface{}{
		"title": "ab",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks", body, user.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "VALIDATION_FAILED", response["code"])
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_Success() {
	user := suite.createTestUser("student")
	task := suite.createTestTask("Old title", user.ID)

	requestBody := map[string]interface{}{
		"title":    "Updated title",
		"priority": "Low",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("PATCH", "/api/tasks/1", body, user.ID)
	suite.setIDParam(c, task.ID)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response taskEnvelope
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Updated title", response.Data.Title)
	assert.Equal(suite.T(), models.TaskPriorityLow, response.Data.Priority)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_NullDueDateClears() {
	user := suite.createTestUser("student")
	task := suite.createTestTask("Task with due date", user.ID)
	due := time.Now().Add(24 * time.Hour)
	suite.db.Model(&models.Task{}).Where("id = ?", task.ID).Update("due_date", due)

	c, w := suite.createAuthContext("PATCH", "/api/tasks/1", []byte(`{"due_date": null}`), user.ID)
	suite.setIDParam(c, task.ID)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response taskEnvelope
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), response.Data.DueDate)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_InvalidDueDate() {
	user := suite.createTestUser("student")
	task := suite.createTestTask("Task", user.ID)

	c, w := suite.createAuthContext("PATCH", "/api/tasks/1", []byte(`{"due_date": "tomorrow"}`), user.ID)
	suite.setIDParam(c, task.ID)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_InvalidJSON() {
	user := suite.createTestUser("student")
	task := suite.createTestTask("Task", user.ID)

	c, w := suite.createAuthContext("PATCH", "/api/tasks/1", []byte("invalid json"), user.ID)
	suite.setIDParam(c, task.ID)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_InvalidID() {
	user := suite.createTestUser("student")

	c, w := suite.createAuthContext("PATCH", "/api/tasks/abc", []byte(`{"title":"New"}`), user.ID)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_NotOwner() {
	owner := suite.createTestUser("owner")
	intruder := suite.createTestUser("intruder")
	task := suite.createTestTask("Owned task", owner.ID)

	body, _ := json.Marshal(map[string]interface{}{"title": "Hijacked"})

	c, w := suite.createAuthContext("PATCH", "/api/tasks/1", body, intruder.ID)
	suite.setIDParam(c, task.ID)

	suite.handler.UpdateTask(c)

	// Indistinguishable from a task that does not exist.
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestStartTask_Success() {
	user := suite.createTestUser("student")
	task := suite.createTestTask("Task to start", user.ID)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/start", nil, user.ID)
	suite.setIDParam(c, task.ID)

	suite.handler.StartTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response taskEnvelope
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.TaskStatusInProgress, response.Data.Status)
}

func (suite *TaskHandlerTestSuite) TestCompleteTask_Success() {
	user := suite.createTestUser("student")
	task := suite.createTestTask("Task to finish", user.ID)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/complete", nil, user.ID)
	suite.setIDParam(c, task.ID)

	suite.handler.CompleteTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response taskEnvelope
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.TaskStatusCompleted, response.Data.Status)
	assert.True(suite.T(), response.Data.IsCompleted)
	assert.NotNil(suite.T(), response.Data.CompletedAt)
}

func (suite *TaskHandlerTestSuite) TestCompleteTask_NotFound() {
	user := suite.createTestUser("student")

	c, w := suite.createAuthContext("POST", "/api/tasks/9999/complete", nil, user.ID)
	suite.setIDParam(c, 9999)

	suite.handler.CompleteTask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestSuite runs the test suite
func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
