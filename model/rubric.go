package model

import "gorm.io/datatypes"

// Rubric is an evaluation rubric attached to a course, optionally narrowed
// to one commission. Criteria holds the structured rubric body (criteria with
// weighted achievement levels) as JSON, either authored by hand or produced
// by the external PDF generator.
type Rubric struct {
	Base
	UniversityCode string         `gorm:"not null;type:varchar(100);index" json:"university_id"`
	FacultyCode    string         `gorm:"not null;type:varchar(100);index" json:"faculty_id"`
	CareerCode     string         `gorm:"not null;type:varchar(100);index" json:"career_id"`
	CourseCode     string         `gorm:"uniqueIndex:udx_rubrics_scope_code;not null;type:varchar(100);index" json:"course_id"`
	CommissionCode string         `gorm:"type:varchar(100);index" json:"commission_id,omitempty"`
	Code           string         `gorm:"uniqueIndex:udx_rubrics_scope_code;not null;type:varchar(100)" json:"rubric_id"`
	Name           string         `gorm:"not null" json:"name"`
	Year           int            `gorm:"index" json:"year"`
	Criteria       datatypes.JSON `json:"criteria"`
	// Object key of the uploaded PDF the rubric was generated from, empty for
	// hand-authored rubrics. The object itself is removed after processing.
	SourceDocument string `gorm:"type:varchar(255)" json:"source_document,omitempty"`
}

// RubricCriterion is one evaluation criterion within a rubric body.
type RubricCriterion struct {
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Weight      float64       `json:"weight"`
	Levels      []RubricLevel `json:"levels"`
}

// RubricLevel is one achievement level within a criterion.
type RubricLevel struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Score       float64 `json:"score"`
}
