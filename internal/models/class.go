package models

import "time"

type Class struct {
	ID          string `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Description string
	TeacherID   string `gorm:"index;not null"`
	CreatedAt   time.Time
}

// ClassMembership links one user to one class. At most one row per
// (user, class) pair; the service layer enforces this, not the schema.
type ClassMembership struct {
	ID       string `gorm:"primaryKey"`
	UserID   string `gorm:"index;not null"`
	ClassID  string `gorm:"index;not null"`
	JoinedAt time.Time
}
