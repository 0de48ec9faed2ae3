package dto

type CreateNotificationRequest struct {
	Type    string  `json:"type" validate:"required,notification-type"`
	ClassID *string `json:"class_id"`
	Title   string  `json:"title" validate:"required"`
	Body    string  `json:"body" validate:"required"`
}

type CreateNotificationResponse struct {
	Status string `json:"status"`
	ID     string `json:"id"`
}

type AssignRequest struct {
	NotificationID string `json:"notification_id" validate:"required"`
	UserID         string `json:"user_id" validate:"required"`
}

type AssignResponse struct {
	Status       string `json:"status"`
	AssignmentID string `json:"assignment_id"`
}

// DispatchRequest creates a notification and assigns it to every listed user
// in one call.
type DispatchRequest struct {
	Type    string   `json:"type" validate:"required,notification-type"`
	ClassID *string  `json:"class_id"`
	Title   string   `json:"title" validate:"required"`
	Body    string   `json:"body" validate:"required"`
	UserIDs []string `json:"user_ids" validate:"required,min=1"`
}

type DispatchAssignment struct {
	UserID       string `json:"user_id"`
	AssignmentID string `json:"assignment_id"`
}

type DispatchResponse struct {
	Status         string               `json:"status"`
	NotificationID string               `json:"notification_id"`
	Assignments    []DispatchAssignment `json:"assignments"`
}

type RespondRequest struct {
	Action string `json:"action" validate:"required,response-action"`
}
