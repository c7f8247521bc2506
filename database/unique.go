package database

import (
	"errors"

	"gorm.io/gorm"
)

// Conflict classifies the outcome of a natural-key uniqueness check.
type Conflict int

const (
	// ConflictNone: no record holds the key, creation may proceed.
	ConflictNone Conflict = iota
	// ConflictActive: an active record already holds the key.
	ConflictActive
	// ConflictDeleted: a soft-deleted record holds the key. The caller
	// should restore it instead of creating a duplicate.
	ConflictDeleted
)

// CheckNaturalKey is the pre-commit existence check for a scoped natural
// key. It looks at deleted rows too: a deleted record retains its key, and
// recreating it must be rejected with guidance to restore.
//
// The check is not atomic with the subsequent insert. The compound unique
// index on every entity table closes that race; IsDuplicateKey recognizes
// the index violation so both paths produce the same conflict response.
func CheckNaturalKey(db *gorm.DB, entity interface{}, query string, args ...interface{}) (Conflict, error) {
	var row struct {
		Deleted bool
	}

	err := db.Model(entity).Select("deleted").Where(query, args...).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ConflictNone, nil
	}
	if err != nil {
		return ConflictNone, err
	}

	if row.Deleted {
		return ConflictDeleted, nil
	}
	return ConflictActive, nil
}

// IsDuplicateKey reports whether err is a storage-level unique-index
// violation. Requires TranslateError on the GORM config.
func IsDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
