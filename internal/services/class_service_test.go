package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aula_backend/internal/models"
	"aula_backend/internal/services"
	"aula_backend/internal/services/dto"
	"aula_backend/pkg/apperrors"
)

func TestCreateClassEnrollsTeacher(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser(t, "teacher", models.UserRoleTeacher)

	classID, err := env.classes.Create(&dto.CreateClassRequest{Name: "Biology"}, teacher.ID)
	require.NoError(t, err)
	require.NotEmpty(t, classID)

	member, err := env.classRepo.IsMember(teacher.ID, classID)
	require.NoError(t, err)
	assert.True(t, member)

	classes, err := env.classes.ListForUser(teacher.ID)
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, "Biology", classes[0].Name)
	assert.Equal(t, "teacher", classes[0].TeacherName)
}

func TestJoinTwiceConflicts(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser(t, "teacher", models.UserRoleTeacher)
	student := env.createUser(t, "student", models.UserRoleStudent)
	classID := env.createClass(t, teacher.ID, "Art")

	require.NoError(t, env.classes.Join(student.ID, classID))

	err := env.classes.Join(student.ID, classID)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, services.ErrAlreadyMember))

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeAlreadyExists, appErr.Code)
}

func TestLeaveClass(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser(t, "teacher", models.UserRoleTeacher)
	student := env.createUser(t, "student", models.UserRoleStudent)
	classID := env.createClass(t, teacher.ID, "Music")

	require.NoError(t, env.classes.Join(student.ID, classID))
	require.NoError(t, env.classes.Leave(student.ID, classID))

	member, err := env.classRepo.IsMember(student.ID, classID)
	require.NoError(t, err)
	assert.False(t, member)

	// Leaving again is a no-op.
	assert.NoError(t, env.classes.Leave(student.ID, classID))
}

func TestMembersRoster(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser(t, "teacher", models.UserRoleTeacher)
	student := env.createUser(t, "student", models.UserRoleStudent)

	classID, err := env.classes.Create(&dto.CreateClassRequest{Name: "Drama"}, teacher.ID)
	require.NoError(t, err)
	require.NoError(t, env.classes.Join(student.ID, classID))

	roster, err := env.classes.Members(classID)
	require.NoError(t, err)
	require.Len(t, roster, 2)
	for _, entry := range roster {
		assert.Equal(t, "offline", entry.Status)
		assert.NotEmpty(t, entry.Photo)
	}
}

func TestDeleteClassRemovesMemberships(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser(t, "teacher", models.UserRoleTeacher)
	student := env.createUser(t, "student", models.UserRoleStudent)

	classID, err := env.classes.Create(&dto.CreateClassRequest{Name: "Latin"}, teacher.ID)
	require.NoError(t, err)
	require.NoError(t, env.classes.Join(student.ID, classID))

	require.NoError(t, env.classes.Delete(classID))

	_, err = env.classes.Get(classID)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)

	classes, err := env.classes.ListForUser(student.ID)
	require.NoError(t, err)
	assert.Empty(t, classes)
}
