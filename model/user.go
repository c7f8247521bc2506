package model

// User represents an administrative or teaching account. Email is the
// natural key; like every other entity a deleted user keeps its email and
// blocks re-registration until restored.
//
// Root marks the designated root administrative account seeded on startup.
// It can never be soft-deleted, not even by another admin.
type User struct {
	Base
	Email        string `gorm:"uniqueIndex;not null;type:varchar(255)" json:"email"`
	Name         string `gorm:"not null" json:"name"`
	Role         string `gorm:"type:varchar(20);default:'teacher'" json:"role"` // admin, teacher, student
	PasswordHash string `gorm:"not null" json:"-"`
	Root         bool   `gorm:"not null;default:false" json:"root"`
}
