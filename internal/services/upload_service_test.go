package services_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aula_backend/internal/models"
	"aula_backend/internal/services"
	"aula_backend/internal/services/dto"
	"aula_backend/internal/storage"
	"aula_backend/pkg/apperrors"
)

func newUploadEnv(t *testing.T) (*testEnv, services.UploadService, *storage.LocalStorage) {
	t.Helper()

	env := newTestEnv(t)
	store, err := storage.NewLocalStorage(storage.Config{BasePath: t.TempDir()})
	require.NoError(t, err)
	return env, services.NewUploadService(env.taskRepo, store), store
}

func TestSaveAndOpenTaskFile(t *testing.T) {
	env, uploads, _ := newUploadEnv(t)
	teacher := env.createUser(t, "teacher", models.UserRoleTeacher)
	classID := env.createClass(t, teacher.ID, "Math")
	taskID, err := env.tasks.Create(classID, &dto.CreateTaskRequest{Title: "Essay", Description: "d"})
	require.NoError(t, err)

	saved, err := uploads.SaveTaskFile(context.Background(), taskID, "notes.txt", strings.NewReader("hello"))
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "notes.txt", saved.OriginalName)
	assert.NotEqual(t, "notes.txt", saved.Filename) // stored name carries a unique prefix
	assert.Contains(t, saved.URL, saved.ID)

	file, reader, err := uploads.OpenFile(context.Background(), saved.ID)
	require.NoError(t, err)
	defer reader.Close()
	assert.Equal(t, "notes.txt", file.OriginalName)

	content, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))
}

func TestListTaskFiles(t *testing.T) {
	env, uploads, _ := newUploadEnv(t)
	teacher := env.createUser(t, "teacher", models.UserRoleTeacher)
	classID := env.createClass(t, teacher.ID, "Math")
	taskID, err := env.tasks.Create(classID, &dto.CreateTaskRequest{Title: "Essay", Description: "d"})
	require.NoError(t, err)

	_, err = uploads.SaveTaskFile(context.Background(), taskID, "a.txt", strings.NewReader("a"))
	require.NoError(t, err)
	_, err = uploads.SaveTaskFile(context.Background(), taskID, "b.txt", strings.NewReader("b"))
	require.NoError(t, err)

	files, err := uploads.ListTaskFiles(taskID)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestDeleteTaskFile(t *testing.T) {
	env, uploads, store := newUploadEnv(t)
	teacher := env.createUser(t, "teacher", models.UserRoleTeacher)
	classID := env.createClass(t, teacher.ID, "Math")
	taskID, err := env.tasks.Create(classID, &dto.CreateTaskRequest{Title: "Essay", Description: "d"})
	require.NoError(t, err)

	saved, err := uploads.SaveTaskFile(context.Background(), taskID, "gone.txt", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, uploads.DeleteFile(context.Background(), saved.ID))

	_, _, err = uploads.OpenFile(context.Background(), saved.ID)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)

	files, err := env.taskRepo.ListFilesByTask(taskID)
	require.NoError(t, err)
	assert.Empty(t, files)

	exists, err := store.Exists(context.Background(), "tasks/"+taskID+"/"+saved.Filename)
	require.NoError(t, err)
	assert.False(t, exists)
}
