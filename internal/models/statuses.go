package models

type UserRole string

const (
	UserRoleTeacher UserRole = "teacher"
	UserRoleStudent UserRole = "student"
)

func (r UserRole) Valid() bool {
	return r == UserRoleTeacher || r == UserRoleStudent
}

// NotificationType is the closed set of notification kinds.
type NotificationType string

const (
	NotificationTypeTask       NotificationType = "task"
	NotificationTypeInvitation NotificationType = "invitation"
	NotificationTypeMessage    NotificationType = "message"
	NotificationTypeOther      NotificationType = "other"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationTypeTask, NotificationTypeInvitation, NotificationTypeMessage, NotificationTypeOther:
		return true
	}
	return false
}

// ResponseAction is what a user can do with a notification assignment.
type ResponseAction string

const (
	ResponseActionAccept ResponseAction = "accept"
	ResponseActionReject ResponseAction = "reject"
)

func (a ResponseAction) Valid() bool {
	return a == ResponseActionAccept || a == ResponseActionReject
}

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	return s == TaskStatusTodo || s == TaskStatusInProgress || s == TaskStatusDone
}
