package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"studyhub/internal/models"
	"studyhub/internal/repository"
)

// TaskServiceTestSuite defines the test suite for TaskService
type TaskServiceTestSuite struct {
	suite.Suite
	db  *gorm.DB
	svc *TaskService
	now time.Time
}

// SetupTest runs before each test
func (suite *TaskServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.UniversitySubject{},
		&models.Task{},
	)
	suite.Require().NoError(err)

	suite.now = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	suite.svc = NewTaskService(repository.NewTaskRepository(suite.db))
	suite.svc.now = func() time.Time { return suite.now }
}

// TearDownTest runs after each test
func (suite *TaskServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskServiceTestSuite) createTestUser(username string) *models.User {
	user := &models.User{
		Username:     username,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *TaskServiceTestSuite) TestCreate_Defaults() {
	user := suite.createTestUser("student")

	task, err := suite.svc.Create(user.ID, CreateTaskInput{
		Title: "Review lecture notes",
	})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusPending, task.Status)
	assert.Equal(suite.T(), models.TaskPriorityMedium, task.Priority)
	assert.False(suite.T(), task.IsCompleted)
	assert.Nil(suite.T(), task.CompletedAt)
}

func (suite *TaskServiceTestSuite) TestCreate_TitleTooShort() {
	user := suite.createTestUser("student")

	_, err := suite.svc.Create(user.ID, CreateTaskInput{Title: "ab"})

	var validationErr *ValidationError
	suite.Require().ErrorAs(err, &validationErr)
	assert.Contains(suite.T(), validationErr.Fields, "title")
}

func (suite *TaskServiceTestSuite) TestCreate_InvalidPriority() {
	user := suite.createTestUser("student")

	_, err := suite.svc.Create(user.ID, CreateTaskInput{
		Title:    "Review lecture notes",
		Priority: models.TaskPriority("Urgent"),
	})

	var validationErr *ValidationError
	suite.Require().ErrorAs(err, &validationErr)
	assert.Contains(suite.T(), validationErr.Fields, "priority")
}

func (suite *TaskServiceTestSuite) TestStartThenComplete() {
	user := suite.createTestUser("student")
	task, err := suite.svc.Create(user.ID, CreateTaskInput{Title: "Write lab report"})
	suite.Require().NoError(err)

	started, err := suite.svc.Start(task.ID, user.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusInProgress, started.Status)
	assert.False(suite.T(), started.IsCompleted)
	assert.Nil(suite.T(), started.CompletedAt)

	completed, err := suite.svc.Complete(task.ID, user.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusCompleted, completed.Status)
	assert.True(suite.T(), completed.IsCompleted)
	suite.Require().NotNil(completed.CompletedAt)
	assert.WithinDuration(suite.T(), suite.now, *completed.CompletedAt, time.Second)
}

func (suite *TaskServiceTestSuite) TestComplete_WithoutStart() {
	user := suite.createTestUser("student")
	task, err := suite.svc.Create(user.ID, CreateTaskInput{Title: "Write lab report"})
	suite.Require().NoError(err)

	completed, err := suite.svc.Complete(task.ID, user.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusCompleted, completed.Status)
	assert.True(suite.T(), completed.IsCompleted)
}

func (suite *TaskServiceTestSuite) TestRecomplete_KeepsOriginalTimestamp() {
	user := suite.createTestUser("student")
	task, err := suite.svc.Create(user.ID, CreateTaskInput{Title: "Write lab report"})
	suite.Require().NoError(err)

	firstNow := suite.now
	completed, err := suite.svc.Complete(task.ID, user.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(completed.CompletedAt)

	suite.now = firstNow.Add(48 * time.Hour)
	again, err := suite.svc.Complete(task.ID, user.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(again.CompletedAt)
	assert.WithinDuration(suite.T(), firstNow, *again.CompletedAt, time.Second)
}

func (suite *TaskServiceTestSuite) TestLeavingCompleted_ClearsCompletion() {
	user := suite.createTestUser("student")
	task, err := suite.svc.Create(user.ID, CreateTaskInput{Title: "Write lab report"})
	suite.Require().NoError(err)

	_, err = suite.svc.Complete(task.ID, user.ID)
	suite.Require().NoError(err)

	status := models.TaskStatusPending
	reopened, err := suite.svc.Update(task.ID, user.ID, UpdateTaskInput{Status: &status})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusPending, reopened.Status)
	assert.False(suite.T(), reopened.IsCompleted)
	assert.Nil(suite.T(), reopened.CompletedAt)
}

func (suite *TaskServiceTestSuite) TestUpdate_IsCompletedAloneMovesStatus() {
	user := suite.createTestUser("student")
	task, err := suite.svc.Create(user.ID, CreateTaskInput{Title: "Write lab report"})
	suite.Require().NoError(err)

	done := true
	updated, err := suite.svc.Update(task.ID, user.ID, UpdateTaskInput{IsCompleted: &done})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusCompleted, updated.Status)
	assert.True(suite.T(), updated.IsCompleted)
	suite.Require().NotNil(updated.CompletedAt)

	notDone := false
	updated, err = suite.svc.Update(task.ID, user.ID, UpdateTaskInput{IsCompleted: &notDone})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusPending, updated.Status)
	assert.False(suite.T(), updated.IsCompleted)
	assert.Nil(suite.T(), updated.CompletedAt)
}

func (suite *TaskServiceTestSuite) TestUpdate_EmptyInputIsNoop() {
	user := suite.createTestUser("student")
	task, err := suite.svc.Create(user.ID, CreateTaskInput{Title: "Write lab report"})
	suite.Require().NoError(err)

	updated, err := suite.svc.Update(task.ID, user.ID, UpdateTaskInput{})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), task.ID, updated.ID)
	assert.Equal(suite.T(), task.Title, updated.Title)
}

func (suite *TaskServiceTestSuite) TestUpdate_ClearDueDate() {
	user := suite.createTestUser("student")
	due := suite.now.Add(72 * time.Hour)
	task, err := suite.svc.Create(user.ID, CreateTaskInput{
		Title:   "Write lab report",
		DueDate: &due,
	})
	suite.Require().NoError(err)
	suite.Require().NotNil(task.DueDate)

	updated, err := suite.svc.Update(task.ID, user.ID, UpdateTaskInput{ClearDueDate: true})
	suite.Require().NoError(err)
	assert.Nil(suite.T(), updated.DueDate)
}

func (suite *TaskServiceTestSuite) TestUpdate_OtherOwnerLooksNonexistent() {
	owner := suite.createTestUser("owner")
	intruder := suite.createTestUser("intruder")
	task, err := suite.svc.Create(owner.ID, CreateTaskInput{Title: "Write lab report"})
	suite.Require().NoError(err)

	title := "Hijacked"
	_, err = suite.svc.Update(task.ID, intruder.ID, UpdateTaskInput{Title: &title})
	assert.ErrorIs(suite.T(), err, ErrTaskNotFound)

	_, err = suite.svc.Complete(task.ID, intruder.ID)
	assert.ErrorIs(suite.T(), err, ErrTaskNotFound)

	// The owner's task is untouched.
	kept, err := suite.svc.Get(task.ID, owner.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "Write lab report", kept.Title)
	assert.False(suite.T(), kept.IsCompleted)
}

func (suite *TaskServiceTestSuite) TestUpdate_NonexistentTask() {
	user := suite.createTestUser("student")

	_, err := suite.svc.Complete(9999, user.ID)
	assert.ErrorIs(suite.T(), err, ErrTaskNotFound)
}

func (suite *TaskServiceTestSuite) TestList_Ordering() {
	user := suite.createTestUser("student")
	soon := suite.now.Add(24 * time.Hour)
	later := suite.now.Add(96 * time.Hour)

	undated, err := suite.svc.Create(user.ID, CreateTaskInput{Title: "Undated task"})
	suite.Require().NoError(err)
	dueLater, err := suite.svc.Create(user.ID, CreateTaskInput{Title: "Due later", DueDate: &later})
	suite.Require().NoError(err)
	dueSoon, err := suite.svc.Create(user.ID, CreateTaskInput{Title: "Due soon", DueDate: &soon})
	suite.Require().NoError(err)
	finished, err := suite.svc.Create(user.ID, CreateTaskInput{Title: "Already finished", DueDate: &soon})
	suite.Require().NoError(err)
	_, err = suite.svc.Complete(finished.ID, user.ID)
	suite.Require().NoError(err)

	tasks, err := suite.svc.List(user.ID)
	suite.Require().NoError(err)
	suite.Require().Len(tasks, 4)

	// Open tasks first, soonest due date first, undated last; completed at the end.
	assert.Equal(suite.T(), dueSoon.ID, tasks[0].ID)
	assert.Equal(suite.T(), dueLater.ID, tasks[1].ID)
	assert.Equal(suite.T(), undated.ID, tasks[2].ID)
	assert.Equal(suite.T(), finished.ID, tasks[3].ID)
}

func (suite *TaskServiceTestSuite) TestList_OnlyOwnTasks() {
	user := suite.createTestUser("student")
	other := suite.createTestUser("other")
	_, err := suite.svc.Create(other.ID, CreateTaskInput{Title: "Someone else's task"})
	suite.Require().NoError(err)

	tasks, err := suite.svc.List(user.ID)
	suite.Require().NoError(err)
	assert.Empty(suite.T(), tasks)
}

// TestSuite runs the test suite
func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
