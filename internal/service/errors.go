package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error kinds surfaced by the feed services. Handlers translate these into
// HTTP statuses; everything else is treated as internal.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrDuplicateReaction = errors.New("already reacted")
	ErrStorage           = errors.New("storage failure")
)

// resolveErr maps a repository lookup failure for a referenced entity.
func resolveErr(err error, entity string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
	}
	return fmt.Errorf("%s %d: %w", entity, id, ErrStorage)
}

// storageErr wraps a write failure from the durability layer.
func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrStorage, err)
}
