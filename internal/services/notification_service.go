package services

import (
	"aula_backend/internal/logger"
	"aula_backend/internal/models"
	"aula_backend/internal/repositories"
	"aula_backend/internal/services/dto"
	"aula_backend/pkg/apperrors"
)

// NotificationService owns notifications and their per-user assignments.
//
// An assignment moves Created -> (Seen)* -> removed. "Seen" can be set any
// number of times; accept, reject and delete all end with the row gone.
// Responding to an already-removed assignment returns NotFound; MarkSeen and
// DeleteAssignment on a removed assignment stay silent no-ops.
type NotificationService interface {
	Create(req *dto.CreateNotificationRequest, createdBy string) (string, error)
	Assign(notificationID, userID string) (string, error)
	CreateAndAssign(req *dto.DispatchRequest, createdBy string) (*dto.DispatchResponse, error)
	MarkSeen(assignmentID string) error
	ListForUser(userID string) ([]repositories.UserNotificationRow, error)
	Respond(assignmentID string, action models.ResponseAction) error
	DeleteAssignment(assignmentID string) error
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	classService     ClassService
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	classService ClassService,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		classService:     classService,
	}
}

func (s *notificationService) Create(req *dto.CreateNotificationRequest, createdBy string) (string, error) {
	notification := &models.Notification{
		Type:      models.NotificationType(req.Type),
		ClassID:   req.ClassID,
		Title:     req.Title,
		Body:      req.Body,
		CreatedBy: createdBy,
	}

	if err := s.notificationRepo.Create(notification); err != nil {
		return "", apperrors.StoreError("notification", err)
	}
	return notification.ID, nil
}

// Assign creates the delivery record for one user. Neither the notification
// id nor the user id is verified to exist.
func (s *notificationService) Assign(notificationID, userID string) (string, error) {
	assignment := &models.NotificationAssignment{
		NotificationID: notificationID,
		UserID:         userID,
	}

	if err := s.notificationRepo.CreateAssignment(assignment); err != nil {
		return "", apperrors.StoreError("notification", err)
	}
	return assignment.ID, nil
}

// CreateAndAssign creates the notification then assigns it to each user in
// the given order. There is no rollback: a failure mid-batch leaves the
// notification and every assignment created so far in place, and the error
// reports how far the batch got.
func (s *notificationService) CreateAndAssign(req *dto.DispatchRequest, createdBy string) (*dto.DispatchResponse, error) {
	notificationID, err := s.Create(&dto.CreateNotificationRequest{
		Type:    req.Type,
		ClassID: req.ClassID,
		Title:   req.Title,
		Body:    req.Body,
	}, createdBy)
	if err != nil {
		return nil, err
	}

	assignments := make([]dto.DispatchAssignment, 0, len(req.UserIDs))
	for _, userID := range req.UserIDs {
		assignmentID, err := s.Assign(notificationID, userID)
		if err != nil {
			if appErr, ok := apperrors.AsAppError(err); ok {
				return nil, appErr.WithDetails(map[string]interface{}{
					"notification_id":     notificationID,
					"assignments_created": len(assignments),
				})
			}
			return nil, err
		}
		assignments = append(assignments, dto.DispatchAssignment{
			UserID:       userID,
			AssignmentID: assignmentID,
		})
	}

	return &dto.DispatchResponse{
		Status:         "ok",
		NotificationID: notificationID,
		Assignments:    assignments,
	}, nil
}

func (s *notificationService) MarkSeen(assignmentID string) error {
	if err := s.notificationRepo.MarkSeen(assignmentID); err != nil {
		return apperrors.StoreError("notification", err)
	}
	return nil
}

func (s *notificationService) ListForUser(userID string) ([]repositories.UserNotificationRow, error) {
	rows, err := s.notificationRepo.ListForUser(userID)
	if err != nil {
		return nil, apperrors.StoreError("notification", err)
	}
	return rows, nil
}

// Respond accepts or rejects an assignment. Accepting a class-linked
// notification joins the user to that class first; an "already a member"
// outcome is swallowed. In both cases the assignment row is deleted so the
// notification disappears for that user.
//
// Join and delete are two separate store calls, not one transaction: a crash
// between them leaves the user joined with the assignment still listed.
func (s *notificationService) Respond(assignmentID string, action models.ResponseAction) error {
	assignment, err := s.notificationRepo.FindAssignmentByID(assignmentID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAssignmentNotFound) {
			return apperrors.NotFoundError("notification", "Assignment not found")
		}
		return apperrors.StoreError("notification", err)
	}

	if action == models.ResponseActionAccept {
		// A missing parent notification means an orphaned assignment;
		// accepting one is a plain acknowledgement with no class to join.
		notification, err := s.notificationRepo.FindNotificationByID(assignment.NotificationID)
		if err != nil && !apperrors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.StoreError("notification", err)
		}

		if notification != nil && notification.ClassID != nil {
			if err := s.classService.Join(assignment.UserID, *notification.ClassID); err != nil {
				if apperrors.Is(err, ErrAlreadyMember) {
					logger.Warn("accept on a class the user already joined",
						"user_id", assignment.UserID, "class_id", *notification.ClassID)
				} else {
					return err
				}
			}
		}
	}

	if err := s.notificationRepo.DeleteAssignment(assignmentID); err != nil {
		return apperrors.StoreError("notification", err)
	}
	return nil
}

func (s *notificationService) DeleteAssignment(assignmentID string) error {
	if err := s.notificationRepo.DeleteAssignment(assignmentID); err != nil {
		return apperrors.StoreError("notification", err)
	}
	return nil
}
