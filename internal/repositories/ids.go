package repositories

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

const (
	idByteLen     = 10 // 20 hex characters
	maxIDAttempts = 5
)

// ErrIDSpaceExhausted means maxIDAttempts consecutive collisions, which in
// practice indicates a broken random source rather than a full table.
var ErrIDSpaceExhausted = errors.New("exhausted attempts to allocate a unique id")

// IDAllocator produces opaque ids that are verified unique against the
// target table before use. Collisions trigger regeneration, capped at
// maxIDAttempts.
type IDAllocator struct {
	db *gorm.DB
}

func NewIDAllocator(db *gorm.DB) *IDAllocator {
	return &IDAllocator{db: db}
}

// Allocate returns a fresh id that does not yet exist in table.
func (a *IDAllocator) Allocate(table string) (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := randomHexID()
		if err != nil {
			return "", err
		}

		var count int64
		if err := a.db.Table(table).Where("id = ?", id).Count(&count).Error; err != nil {
			return "", fmt.Errorf("id existence check on %s: %w", table, err)
		}
		if count == 0 {
			return id, nil
		}
	}
	return "", ErrIDSpaceExhausted
}

func randomHexID() (string, error) {
	buf := make([]byte, idByteLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("random id generation: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
