package model

// Faculty belongs to a university. Its code (e.g. "frm") is unique within
// the owning university.
type Faculty struct {
	Base
	UniversityCode string `gorm:"uniqueIndex:udx_faculties_scope_code;not null;type:varchar(100);index" json:"university_id"`
	Code           string `gorm:"uniqueIndex:udx_faculties_scope_code;not null;type:varchar(100)" json:"faculty_id"`
	Name           string `gorm:"not null" json:"name"`
	City           string `gorm:"type:varchar(100)" json:"city"`
}
