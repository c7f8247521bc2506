package model

import "time"

// Base provides the common fields shared by every entity kind: the internal
// storage identifier, automatic timestamps, and the soft-delete flag.
// Deleted defaults to false; rows migrated from older datasets that never
// carried the column are backfilled to false by the NOT NULL default.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Deleted   bool      `gorm:"not null;default:false;index" json:"deleted"`
}

// IsDeleted reports whether the record is soft-deleted.
func (b *Base) IsDeleted() bool { return b.Deleted }

// SetDeleted flips the soft-delete flag.
func (b *Base) SetDeleted(deleted bool) { b.Deleted = deleted }

// SoftDeletable is implemented by every entity via the embedded Base.
type SoftDeletable interface {
	IsDeleted() bool
	SetDeleted(bool)
}
