package course

import (
	"errors"

	"acadmin/database"
	"acadmin/model"
	"acadmin/utils/response"
	"acadmin/utils/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var scopeColumns = database.Columns{
	University: "university_code",
	Faculty:    "faculty_code",
	Career:     "career_code",
	Course:     "code",
	Year:       "year",
}

// CourseHandler handles course-related requests
type CourseHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(db *gorm.DB) *CourseHandler {
	return &CourseHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateCourseRequest represents the request body for creating a course
type CreateCourseRequest struct {
	CareerCode string `json:"career_id" validate:"required,slug"`
	Code       string `json:"course_id" validate:"required,slug"`
	Name       string `json:"name" validate:"required,min=3,max=255"`
	Year       int    `json:"year" validate:"omitempty,gte=1,lte=7"`
}

// UpdateCourseRequest represents the request body for updating a course.
// The owning career cannot be changed through update.
type UpdateCourseRequest struct {
	Code string `json:"course_id" validate:"omitempty,slug"`
	Name string `json:"name" validate:"omitempty,min=3,max=255"`
	Year *int   `json:"year" validate:"omitempty,gte=1,lte=7"`
}

// ListCourses handles GET /api/v1/courses
//
// Querying a course code without its career is allowed and may return rows
// from several unrelated careers that share the code. distinct=true collapses
// those to one representative per code; which one is arbitrary, so consumers
// that care about a specific career must pass career_id.
func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	filter, err := database.ParseFilter(c.Query)
	if err != nil {
		return response.ValidationError(c, err)
	}

	var courses []model.Course
	q := filter.Apply(h.db.Model(&model.Course{}), scopeColumns)
	if err := q.Order("name ASC").Find(&courses).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch courses")
	}

	if filter.Distinct {
		courses = database.DedupByKey(courses, func(course model.Course) string {
			return course.Code
		})
	}

	return response.List(c, courses, len(courses))
}

// GetCourse handles GET /api/v1/courses/:id
func (h *CourseHandler) GetCourse(c *fiber.Ctx) error {
	id := c.Params("id")

	var course model.Course
	if err := h.db.First(&course, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	return response.Success(c, course)
}

// CreateCourse handles POST /api/v1/courses
func (h *CourseHandler) CreateCourse(c *fiber.Ctx) error {
	var req CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	req.Name = validation.SanitizeString(req.Name)

	var parent model.Career
	if err := h.db.Where("code = ? AND deleted = ?", req.CareerCode, false).Take(&parent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.BadRequest(c, "Career "+req.CareerCode+" does not exist")
		}
		return response.InternalServerError(c, "Failed to check career")
	}

	conflict, err := database.CheckNaturalKey(h.db, &model.Course{},
		"career_code = ? AND code = ?", req.CareerCode, req.Code)
	if err != nil {
		return response.InternalServerError(c, "Failed to check course code")
	}
	switch conflict {
	case database.ConflictActive:
		return response.Conflict(c, "Course with this code already exists in this career")
	case database.ConflictDeleted:
		return response.Conflict(c, "A deleted course with this code exists; restore it instead of creating a new one")
	}

	year := req.Year
	if year == 0 {
		year = 1
	}

	course := model.Course{
		UniversityCode: parent.UniversityCode,
		FacultyCode:    parent.FacultyCode,
		CareerCode:     req.CareerCode,
		Code:           req.Code,
		Name:           req.Name,
		Year:           year,
	}

	if err := h.db.Create(&course).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return response.Conflict(c, "Course with this code already exists in this career")
		}
		return response.InternalServerError(c, "Failed to create course")
	}

	return response.Created(c, course)
}

// UpdateCourse handles PUT /api/v1/courses/:id
func (h *CourseHandler) UpdateCourse(c *fiber.Ctx) error {
	id := c.Params("id")

	var req UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var course model.Course
	if err := h.db.First(&course, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	if req.Code != "" && req.Code != course.Code {
		conflict, err := database.CheckNaturalKey(h.db, &model.Course{},
			"career_code = ? AND code = ? AND id <> ?", course.CareerCode, req.Code, course.ID)
		if err != nil {
			return response.InternalServerError(c, "Failed to check course code")
		}
		if conflict != database.ConflictNone {
			return response.Conflict(c, "Course with this code already exists in this career")
		}
		course.Code = req.Code
	}
	if req.Name != "" {
		course.Name = validation.SanitizeString(req.Name)
	}
	if req.Year != nil {
		course.Year = *req.Year
	}

	if err := h.db.Save(&course).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return response.Conflict(c, "Course with this code already exists in this career")
		}
		return response.InternalServerError(c, "Failed to update course")
	}

	return response.SuccessWithMessage(c, "Course updated successfully", course)
}

// DeleteCourse handles DELETE /api/v1/courses/:id
func (h *CourseHandler) DeleteCourse(c *fiber.Ctx) error {
	id := c.Params("id")

	var course model.Course
	if err := h.db.First(&course, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	if err := database.SoftDelete(h.db, &course); err != nil {
		if errors.Is(err, database.ErrAlreadyDeleted) {
			return response.InvalidState(c, "Course is already deleted")
		}
		return response.InternalServerError(c, "Failed to delete course")
	}

	return response.SuccessWithMessage(c, "Course deleted successfully", course)
}

// RestoreCourse handles PUT /api/v1/courses/:id/restore
func (h *CourseHandler) RestoreCourse(c *fiber.Ctx) error {
	id := c.Params("id")

	var course model.Course
	if err := h.db.First(&course, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	if err := database.Restore(h.db, &course); err != nil {
		if errors.Is(err, database.ErrNotDeleted) {
			return response.InvalidState(c, "Course is not deleted")
		}
		return response.InternalServerError(c, "Failed to restore course")
	}

	return response.SuccessWithMessage(c, "Course restored successfully", course)
}
