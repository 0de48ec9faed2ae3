package services_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"aula_backend/internal/database"
	"aula_backend/internal/email"
	"aula_backend/internal/models"
	"aula_backend/internal/repositories"
	"aula_backend/internal/services"
)

// testEnv assembles the service stack over a throwaway database file.
type testEnv struct {
	db *gorm.DB

	userRepo         repositories.UserRepository
	classRepo        repositories.ClassRepository
	notificationRepo repositories.NotificationRepository
	taskRepo         repositories.TaskRepository

	auth          services.AuthService
	classes       services.ClassService
	notifications services.NotificationService
	tasks         services.TaskService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.Connect(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	ids := repositories.NewIDAllocator(db)
	env := &testEnv{
		db:               db,
		userRepo:         repositories.NewUserRepository(db, ids),
		classRepo:        repositories.NewClassRepository(db, ids),
		notificationRepo: repositories.NewNotificationRepository(db, ids),
		taskRepo:         repositories.NewTaskRepository(db, ids),
	}
	env.auth = services.NewAuthService(env.userRepo, email.LogProvider{})
	env.classes = services.NewClassService(env.classRepo)
	env.notifications = services.NewNotificationService(env.notificationRepo, env.classes)
	env.tasks = services.NewTaskService(env.taskRepo)
	return env
}

func (e *testEnv) createUser(t *testing.T, name string, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, e.userRepo.Create(user))
	return user
}

func (e *testEnv) createClass(t *testing.T, teacherID, name string) string {
	t.Helper()

	class := &models.Class{Name: name, TeacherID: teacherID}
	require.NoError(t, e.classRepo.Create(class))
	return class.ID
}
