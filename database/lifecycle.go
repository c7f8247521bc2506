package database

import (
	"errors"

	"acadmin/model"

	"gorm.io/gorm"
)

var (
	// ErrAlreadyDeleted is returned when deleting a record that is already
	// soft-deleted. Double deletes are rejected rather than absorbed so
	// client bugs surface.
	ErrAlreadyDeleted = errors.New("record is already deleted")

	// ErrNotDeleted is returned when restoring a record that is active.
	ErrNotDeleted = errors.New("record is not deleted")
)

// SoftDelete transitions a record from active to deleted. The record keeps
// all of its data and its natural key; physical deletion never happens
// through this package.
func SoftDelete(db *gorm.DB, record model.SoftDeletable) error {
	if record.IsDeleted() {
		return ErrAlreadyDeleted
	}

	if err := db.Model(record).Update("deleted", true).Error; err != nil {
		return err
	}

	record.SetDeleted(true)
	return nil
}

// Restore transitions a record from deleted back to active.
func Restore(db *gorm.DB, record model.SoftDeletable) error {
	if !record.IsDeleted() {
		return ErrNotDeleted
	}

	if err := db.Model(record).Update("deleted", false).Error; err != nil {
		return err
	}

	record.SetDeleted(false)
	return nil
}
