package database

import (
	"fmt"
	"os"
	"path/filepath"

	"aula_backend/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the sqlite database at path, creating the parent directory
// when missing.
func Connect(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	return db, nil
}

// AutoMigrate creates or updates the schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.PendingRegistration{},
		&models.Class{},
		&models.ClassMembership{},
		&models.Notification{},
		&models.NotificationAssignment{},
		&models.Task{},
		&models.TaskProgress{},
		&models.TaskFile{},
	)
}
