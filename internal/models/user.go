package models

import "time"

// IDs across all tables are opaque hex tokens allocated by
// repositories.IDAllocator, never database defaults.

type User struct {
	ID           string   `gorm:"primaryKey"`
	Name         string   `gorm:"not null"`
	Email        string   `gorm:"uniqueIndex;not null"`
	PasswordHash string   `gorm:"not null"`
	Role         UserRole `gorm:"type:varchar(20);not null"`
	CreatedAt    time.Time
}

// PendingRegistration holds a registration that has not confirmed its email
// code yet. A User row is created only on confirmation.
type PendingRegistration struct {
	Token        string `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	Email        string `gorm:"index;not null"`
	PasswordHash string `gorm:"not null"`
	Role         UserRole
	Code         string `gorm:"not null"`
	ExpiresAt    time.Time
	CreatedAt    time.Time
}
