package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aula_backend/internal/models"
	"aula_backend/internal/repositories"
	"aula_backend/internal/services"
	"aula_backend/internal/services/dto"
	"aula_backend/pkg/apperrors"
)

func TestDispatchCreatesUnseenAssignments(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser(t, "teacher", models.UserRoleTeacher)
	alice := env.createUser(t, "alice", models.UserRoleStudent)
	bob := env.createUser(t, "bob", models.UserRoleStudent)

	resp, err := env.notifications.CreateAndAssign(&dto.DispatchRequest{
		Type:    "message",
		Title:   "Field trip",
		Body:    "Friday at 9",
		UserIDs: []string{alice.ID, bob.ID},
	}, teacher.ID)
	require.NoError(t, err)
	require.NotEmpty(t, resp.NotificationID)
	require.Len(t, resp.Assignments, 2)

	// Assignment order follows the request's user order.
	assert.Equal(t, alice.ID, resp.Assignments[0].UserID)
	assert.Equal(t, bob.ID, resp.Assignments[1].UserID)
	assert.NotEqual(t, resp.Assignments[0].AssignmentID, resp.Assignments[1].AssignmentID)

	rows, err := env.notifications.ListForUser(alice.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, resp.Assignments[0].AssignmentID, rows[0].AssignmentID)
	assert.Equal(t, "Field trip", rows[0].Title)
	assert.Equal(t, "Friday at 9", rows[0].Body)
	assert.Equal(t, models.NotificationTypeMessage, rows[0].Type)
	assert.False(t, rows[0].Seen)
	assert.False(t, rows[0].Responded)
}

func TestListForUserNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser(t, "teacher", models.UserRoleTeacher)
	student := env.createUser(t, "student", models.UserRoleStudent)

	base := time.Now().Add(-time.Hour)
	for i, title := range []string{"oldest", "middle", "newest"} {
		notification := &models.Notification{
			Type:      models.NotificationTypeMessage,
			Title:     title,
			Body:      "b",
			CreatedBy: teacher.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, env.notificationRepo.Create(notification))
		_, err := env.notifications.Assign(notification.ID, student.ID)
		require.NoError(t, err)
	}

	rows, err := env.notifications.ListForUser(student.ID)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "newest", rows[0].Title)
	assert.Equal(t, "middle", rows[1].Title)
	assert.Equal(t, "oldest", rows[2].Title)
}

func TestMarkSeenIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser(t, "teacher", models.UserRoleTeacher)
	student := env.createUser(t, "student", models.UserRoleStudent)

	resp, err := env.notifications.CreateAndAssign(&dto.DispatchRequest{
		Type:    "other",
		Title:   "t",
		Body:    "b",
		UserIDs: []string{student.ID},
	}, teacher.ID)
	require.NoError(t, err)
	assignmentID := resp.Assignments[0].AssignmentID

	require.NoError(t, env.notifications.MarkSeen(assignmentID))
	require.NoError(t, env.notifications.MarkSeen(assignmentID))

	rows, err := env.notifications.ListForUser(student.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Seen)
}

func TestRejectConsumesAssignment(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser(t, "teacher", models.UserRoleTeacher)
	student := env.createUser(t, "student", models.UserRoleStudent)
	classID := env.createClass(t, teacher.ID, "Math")

	resp, err := env.notifications.CreateAndAssign(&dto.DispatchRequest{
		Type:    "invitation",
		ClassID: &classID,
		Title:   "Join Math",
		Body:    "b",
		UserIDs: []string{student.ID},
	}, teacher.ID)
	require.NoError(t, err)
	assignmentID := resp.Assignments[0].AssignmentID

	require.NoError(t, env.notifications.Respond(assignmentID, models.ResponseActionReject))

	// Rejection does not enroll.
	member, err := env.classRepo.IsMember(student.ID, classID)
	require.NoError(t, err)
	assert.False(t, member)

	rows, err := env.notifications.ListForUser(student.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)

	// A second response finds nothing.
	err = env.notifications.Respond(assignmentID, models.ResponseActionAccept)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)

	// Seen and delete on the removed assignment stay silent.
	assert.NoError(t, env.notifications.MarkSeen(assignmentID))
	assert.NoError(t, env.notifications.DeleteAssignment(assignmentID))
}

func TestAcceptInvitationJoinsClass(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser(t, "teacher", models.UserRoleTeacher)
	student := env.createUser(t, "student", models.UserRoleStudent)
	classID := env.createClass(t, teacher.ID, "Physics")

	resp, err := env.notifications.CreateAndAssign(&dto.DispatchRequest{
		Type:    "invitation",
		ClassID: &classID,
		Title:   "Join Physics",
		Body:    "b",
		UserIDs: []string{student.ID},
	}, teacher.ID)
	require.NoError(t, err)
	assignmentID := resp.Assignments[0].AssignmentID

	require.NoError(t, env.notifications.Respond(assignmentID, models.ResponseActionAccept))

	member, err := env.classRepo.IsMember(student.ID, classID)
	require.NoError(t, err)
	assert.True(t, member)

	rows, err := env.notifications.ListForUser(student.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestAcceptWhenAlreadyMember(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser(t, "teacher", models.UserRoleTeacher)
	student := env.createUser(t, "student", models.UserRoleStudent)
	classID := env.createClass(t, teacher.ID, "Chemistry")

	require.NoError(t, env.classes.Join(student.ID, classID))

	resp, err := env.notifications.CreateAndAssign(&dto.DispatchRequest{
		Type:    "invitation",
		ClassID: &classID,
		Title:   "Join Chemistry",
		Body:    "b",
		UserIDs: []string{student.ID},
	}, teacher.ID)
	require.NoError(t, err)

	// The duplicate enrollment is swallowed and the assignment still goes.
	require.NoError(t, env.notifications.Respond(resp.Assignments[0].AssignmentID, models.ResponseActionAccept))

	rows, err := env.notifications.ListForUser(student.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestAcceptWithoutClassLink(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser(t, "teacher", models.UserRoleTeacher)
	student := env.createUser(t, "student", models.UserRoleStudent)

	resp, err := env.notifications.CreateAndAssign(&dto.DispatchRequest{
		Type:    "message",
		Title:   "Plain note",
		Body:    "b",
		UserIDs: []string{student.ID},
	}, teacher.ID)
	require.NoError(t, err)

	require.NoError(t, env.notifications.Respond(resp.Assignments[0].AssignmentID, models.ResponseActionAccept))

	rows, err := env.notifications.ListForUser(student.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestInvitationFanOutAcceptAndReject(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser(t, "teacher", models.UserRoleTeacher)
	alice := env.createUser(t, "alice", models.UserRoleStudent)
	bob := env.createUser(t, "bob", models.UserRoleStudent)
	classID := env.createClass(t, teacher.ID, "Spanish")

	resp, err := env.notifications.CreateAndAssign(&dto.DispatchRequest{
		Type:    "invitation",
		ClassID: &classID,
		Title:   "Join Spanish",
		Body:    "b",
		UserIDs: []string{alice.ID, bob.ID},
	}, teacher.ID)
	require.NoError(t, err)
	require.Len(t, resp.Assignments, 2)

	require.NoError(t, env.notifications.Respond(resp.Assignments[0].AssignmentID, models.ResponseActionAccept))

	// Alice's response leaves Bob's copy untouched.
	bobRows, err := env.notifications.ListForUser(bob.ID)
	require.NoError(t, err)
	require.Len(t, bobRows, 1)

	require.NoError(t, env.notifications.Respond(resp.Assignments[1].AssignmentID, models.ResponseActionReject))

	aliceMember, err := env.classRepo.IsMember(alice.ID, classID)
	require.NoError(t, err)
	assert.True(t, aliceMember)

	bobMember, err := env.classRepo.IsMember(bob.ID, classID)
	require.NoError(t, err)
	assert.False(t, bobMember)

	for _, userID := range []string{alice.ID, bob.ID} {
		rows, err := env.notifications.ListForUser(userID)
		require.NoError(t, err)
		assert.Empty(t, rows)
	}
}

// flakyAssignRepo fails CreateAssignment after a fixed number of successes.
type flakyAssignRepo struct {
	repositories.NotificationRepository
	failAfter int
	calls     int
}

func (r *flakyAssignRepo) CreateAssignment(assignment *models.NotificationAssignment) error {
	r.calls++
	if r.calls > r.failAfter {
		return errors.New("insert failed")
	}
	return r.NotificationRepository.CreateAssignment(assignment)
}

func TestDispatchPartialFailureKeepsEarlierRows(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser(t, "teacher", models.UserRoleTeacher)
	alice := env.createUser(t, "alice", models.UserRoleStudent)
	bob := env.createUser(t, "bob", models.UserRoleStudent)

	flaky := &flakyAssignRepo{NotificationRepository: env.notificationRepo, failAfter: 1}
	notifications := services.NewNotificationService(flaky, env.classes)

	_, err := notifications.CreateAndAssign(&dto.DispatchRequest{
		Type:    "message",
		Title:   "Partial",
		Body:    "b",
		UserIDs: []string{alice.ID, bob.ID},
	}, teacher.ID)
	require.Error(t, err)

	// The error reports how far the batch got.
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	details, ok := appErr.Details.(map[string]interface{})
	require.True(t, ok, "details: %#v", appErr.Details)
	assert.Equal(t, 1, details["assignments_created"])
	notificationID, _ := details["notification_id"].(string)
	require.NotEmpty(t, notificationID)

	// No rollback: the notification and the first assignment survive.
	_, err = env.notificationRepo.FindNotificationByID(notificationID)
	require.NoError(t, err)

	aliceRows, err := env.notifications.ListForUser(alice.ID)
	require.NoError(t, err)
	assert.Len(t, aliceRows, 1)

	bobRows, err := env.notifications.ListForUser(bob.ID)
	require.NoError(t, err)
	assert.Empty(t, bobRows)
}

func TestAcceptOrphanedAssignment(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser(t, "teacher", models.UserRoleTeacher)
	student := env.createUser(t, "student", models.UserRoleStudent)
	classID := env.createClass(t, teacher.ID, "History")

	resp, err := env.notifications.CreateAndAssign(&dto.DispatchRequest{
		Type:    "invitation",
		ClassID: &classID,
		Title:   "Join History",
		Body:    "b",
		UserIDs: []string{student.ID},
	}, teacher.ID)
	require.NoError(t, err)

	// Drop the parent notification, leaving the assignment dangling.
	require.NoError(t, env.db.Where("id = ?", resp.NotificationID).Delete(&models.Notification{}).Error)

	_, err = env.notificationRepo.FindNotificationByID(resp.NotificationID)
	assert.True(t, apperrors.Is(err, repositories.ErrNotificationNotFound))

	require.NoError(t, env.notifications.Respond(resp.Assignments[0].AssignmentID, models.ResponseActionAccept))

	member, err := env.classRepo.IsMember(student.ID, classID)
	require.NoError(t, err)
	assert.False(t, member)
}
