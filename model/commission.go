package model

// Commission is a class section of a course for a calendar year
// (e.g. "1k1-2025"). Its code is unique per course.
type Commission struct {
	Base
	UniversityCode string `gorm:"not null;type:varchar(100);index" json:"university_id"`
	FacultyCode    string `gorm:"not null;type:varchar(100);index" json:"faculty_id"`
	CareerCode     string `gorm:"not null;type:varchar(100);index" json:"career_id"`
	CourseCode     string `gorm:"uniqueIndex:udx_commissions_scope_code;not null;type:varchar(100);index" json:"course_id"`
	Code           string `gorm:"uniqueIndex:udx_commissions_scope_code;not null;type:varchar(100)" json:"commission_id"`
	Name           string `gorm:"not null" json:"name"`
	Year           int    `gorm:"not null;index" json:"year"` // calendar year
	Shift          string `gorm:"type:varchar(20)" json:"shift"`
}
