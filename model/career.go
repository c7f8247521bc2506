package model

// Career is a degree program within a faculty (e.g. "isi-frm"). The
// university code is denormalized onto the row so listings can filter by any
// ancestor without joins.
type Career struct {
	Base
	UniversityCode string `gorm:"not null;type:varchar(100);index" json:"university_id"`
	FacultyCode    string `gorm:"uniqueIndex:udx_careers_scope_code;not null;type:varchar(100);index" json:"faculty_id"`
	Code           string `gorm:"uniqueIndex:udx_careers_scope_code;not null;type:varchar(100)" json:"career_id"`
	Name           string `gorm:"not null" json:"name"`
}
