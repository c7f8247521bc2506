package model

// Course is a subject within a career (e.g. "programacion-1" in "isi-frm").
// The code is unique per career: the same course code may exist under
// unrelated careers, which is why under-scoped listings can return several
// rows sharing one code.
type Course struct {
	Base
	UniversityCode string `gorm:"not null;type:varchar(100);index" json:"university_id"`
	FacultyCode    string `gorm:"not null;type:varchar(100);index" json:"faculty_id"`
	CareerCode     string `gorm:"uniqueIndex:udx_courses_scope_code;not null;type:varchar(100);index" json:"career_id"`
	Code           string `gorm:"uniqueIndex:udx_courses_scope_code;not null;type:varchar(100)" json:"course_id"`
	Name           string `gorm:"not null" json:"name"`
	Year           int    `gorm:"default:1" json:"year"` // position in the study plan, 1..7
}
