package repositories

import (
	"errors"
	"time"

	"aula_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrAssignmentNotFound   = errors.New("notification assignment not found")
)

// UserNotificationRow is one entry of a user's notification feed: an
// assignment joined with its parent notification.
type UserNotificationRow struct {
	AssignmentID string                  `json:"assignment_id"`
	Title        string                  `json:"title"`
	Body         string                  `json:"body"`
	Seen         bool                    `json:"seen"`
	Responded    bool                    `json:"responded"`
	Type         models.NotificationType `json:"type"`
	CreatedAt    time.Time               `json:"created_at"`
}

type NotificationRepository interface {
	Create(notification *models.Notification) error
	CreateAssignment(assignment *models.NotificationAssignment) error
	FindAssignmentByID(id string) (*models.NotificationAssignment, error)
	FindNotificationByID(id string) (*models.Notification, error)
	MarkSeen(assignmentID string) error
	ListForUser(userID string) ([]UserNotificationRow, error)
	DeleteAssignment(assignmentID string) error
}

type NotificationRepositoryImpl struct {
	db  *gorm.DB
	ids *IDAllocator
}

func NewNotificationRepository(db *gorm.DB, ids *IDAllocator) NotificationRepository {
	return &NotificationRepositoryImpl{db: db, ids: ids}
}

func (r *NotificationRepositoryImpl) Create(notification *models.Notification) error {
	if notification.ID == "" {
		id, err := r.ids.Allocate("notifications")
		if err != nil {
			return err
		}
		notification.ID = id
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}
	return r.db.Create(notification).Error
}

// CreateAssignment inserts the delivery record without checking that the
// notification or the user exist. Integrity is advisory here.
func (r *NotificationRepositoryImpl) CreateAssignment(assignment *models.NotificationAssignment) error {
	if assignment.ID == "" {
		id, err := r.ids.Allocate("notification_assignments")
		if err != nil {
			return err
		}
		assignment.ID = id
	}
	if assignment.ReceivedAt.IsZero() {
		assignment.ReceivedAt = time.Now()
	}
	return r.db.Create(assignment).Error
}

func (r *NotificationRepositoryImpl) FindAssignmentByID(id string) (*models.NotificationAssignment, error) {
	var assignment models.NotificationAssignment
	err := r.db.First(&assignment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	return &assignment, nil
}

func (r *NotificationRepositoryImpl) FindNotificationByID(id string) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.First(&notification, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &notification, nil
}

// MarkSeen sets seen unconditionally. A missing id affects zero rows and is
// not an error.
func (r *NotificationRepositoryImpl) MarkSeen(assignmentID string) error {
	return r.db.Model(&models.NotificationAssignment{}).
		Where("id = ?", assignmentID).
		Update("seen", true).Error
}

func (r *NotificationRepositoryImpl) ListForUser(userID string) ([]UserNotificationRow, error) {
	var rows []UserNotificationRow
	err := r.db.Table("notification_assignments a").
		Select("a.id AS assignment_id, n.title, n.body, a.seen, a.responded, n.type, n.created_at").
		Joins("JOIN notifications n ON a.notification_id = n.id").
		Where("a.user_id = ?", userID).
		Order("n.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

// DeleteAssignment is idempotent; deleting an absent id is a no-op.
func (r *NotificationRepositoryImpl) DeleteAssignment(assignmentID string) error {
	return r.db.Where("id = ?", assignmentID).Delete(&models.NotificationAssignment{}).Error
}
