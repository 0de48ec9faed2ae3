package models

import "time"

// Notification is authored once and immutable afterwards. Deleting a class
// does not cascade here; orphaned assignments are tolerated.
type Notification struct {
	ID        string           `gorm:"primaryKey"`
	Type      NotificationType `gorm:"type:varchar(20);not null"`
	ClassID   *string          `gorm:"index"`
	Title     string
	Body      string
	CreatedBy string `gorm:"index"`
	CreatedAt time.Time
}

// NotificationAssignment is the per-user delivery record of a Notification
// and the id all client-facing operations use. Accept/reject removes the row.
type NotificationAssignment struct {
	ID             string `gorm:"primaryKey"`
	NotificationID string `gorm:"index;not null"`
	UserID         string `gorm:"index;not null"`
	Seen           bool   `gorm:"default:false"`
	Responded      bool   `gorm:"default:false"`
	ReceivedAt     time.Time
}
