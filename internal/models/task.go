package models

import "time"

type Task struct {
	ID          string `gorm:"primaryKey"`
	ClassID     string `gorm:"index;not null"`
	Title       string `gorm:"not null"`
	Description string
	CreatedAt   time.Time
}

// TaskProgress tracks one student's status on one task. Absence of a row
// means the task is still todo for that student.
type TaskProgress struct {
	ID        string     `gorm:"primaryKey"`
	TaskID    string     `gorm:"index;not null"`
	StudentID string     `gorm:"index;not null"`
	Status    TaskStatus `gorm:"type:varchar(20);not null"`
	UpdatedAt time.Time
}

type TaskFile struct {
	ID           string `gorm:"primaryKey"`
	TaskID       string `gorm:"index;not null"`
	Filename     string `gorm:"not null"`
	OriginalName string
	Path         string `gorm:"not null"`
	UploadedAt   time.Time
}
