package faculty

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
	Faculty:    "code",
}

// FacultyHandler handles faculty-related requests
type FacultyHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewFacultyHandler creates a new faculty handler
func NewFacultyHandler(db *gorm.DB) *FacultyHandler {
	return &FacultyHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateFacultyRequest represents the request body for creating a faculty
type CreateFacultyRequest struct {
	UniversityCode string `json:"university_id" validate:"required,slug"`
	Code           string `json:"faculty_id" validate:"required,slug"`
	Name           string `json:"name" validate:"required,min=3,max=255"`
	City           string `json:"city" validate:"omitempty,max=100"`
}

// UpdateFacultyRequest represents the request body for updating a faculty.
// The owning university cannot be changed through update.
type UpdateFacultyRequest struct {
	Code string `json:"faculty_id" validate:"omitempty,slug"`
	Name string `json:"name" validate:"omitempty,min=3,max=255"`
	City string `json:"city" validate:"omitempty,max=100"`
}

// ListFaculties handles GET /api/v1/faculties
func (h *FacultyHandler) ListFaculties(c *fiber.Ctx) error {
	filter, err := database.ParseFilter(c.Query)
	if err != nil {
		return response.ValidationError(c, err)
	}

	var faculties []model.Faculty
	q := filter.Apply(h.db.Model(&model.Faculty{}), scopeColumns)
	if err := q.Order("name ASC").Find(&faculties).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch faculties")
	}

	return response.List(c, faculties, len(faculties))
}

// GetFaculty handles GET /api/v1/faculties/:id
func (h *FacultyHandler) GetFaculty(c *fiber.Ctx) error {
	id := c.Params("id")

	var faculty model.Faculty
	if err := h.db.First(&faculty, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Faculty not found")
		}
		return response.InternalServerError(c, "Failed to fetch faculty")
	}

	return response.Success(c, faculty)
}

// CreateFaculty handles POST /api/v1/faculties
func (h *FacultyHandler) CreateFaculty(c *fiber.Ctx) error {
	var req CreateFacultyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	req.Name = validation.SanitizeString(req.Name)
	req.City = validation.SanitizeString(req.City)

	// The named university must exist and be active.
	var parent model.University
	if err := h.db.Where("code = ? AND deleted = ?", req.UniversityCode, false).Take(&parent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.BadRequest(c, "University "+req.UniversityCode+" does not exist")
		}
		return response.InternalServerError(c, "Failed to check university")
	}

	conflict, err := database.CheckNaturalKey(h.db, &model.Faculty{},
		"university_code = ? AND code = ?", req.UniversityCode, req.Code)
	if err != nil {
		return response.InternalServerError(c, "Failed to check faculty code")
	}
	switch conflict {
	case database.ConflictActive:
		return response.Conflict(c, "Faculty with this code already exists in this university")
	case database.ConflictDeleted:
		return response.Conflict(c, "A deleted faculty with this code exists; restore it instead of creating a new one")
	}

	faculty := model.Faculty{
		UniversityCode: req.UniversityCode,
		Code:           req.Code,
		Name:           req.Name,
		City:           req.City,
	}

	if err := h.db.Create(&faculty).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return response.Conflict(c, "Faculty with this code already exists in this university")
		}
		return response.InternalServerError(c, "Failed to create faculty")
	}

	return response.Created(c, faculty)
}

// UpdateFaculty handles PUT /api/v1/faculties/:id
func (h *FacultyHandler) UpdateFaculty(c *fiber.Ctx) error {
	id := c.Params("id")

	var req UpdateFacultyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var faculty model.Faculty
	if err := h.db.First(&faculty, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Faculty not found")
		}
		return response.InternalServerError(c, "Failed to fetch faculty")
	}

	if req.Code != "" && req.Code != faculty.Code {
		conflict, err := database.CheckNaturalKey(h.db, &model.Faculty{},
			"university_code = ? AND code = ? AND id <> ?", faculty.UniversityCode, req.Code, faculty.ID)
		if err != nil {
			return response.InternalServerError(c, "Failed to check faculty code")
		}
		if conflict != database.ConflictNone {
			return response.Conflict(c, "Faculty with this code already exists in this university")
		}
		faculty.Code = req.Code
	}
	if req.Name != "" {
		faculty.Name = validation.SanitizeString(req.Name)
	}
	if req.City != "" {
		faculty.City = validation.SanitizeString(req.City)
	}

	if err := h.db.Save(&faculty).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return response.Conflict(c, "Faculty with this code already exists in this university")
		}
		return response.InternalServerError(c, "Failed to update faculty")
	}

	return response.SuccessWithMessage(c, "Faculty updated successfully", faculty)
}

// DeleteFaculty handles DELETE /api/v1/faculties/:id
func (h *FacultyHandler) DeleteFaculty(c *fiber.Ctx) error {
	id := c.Params("id")

	var faculty model.Faculty
	if err := h.db.First(&faculty, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Faculty not found")
		}
		return response.InternalServerError(c, "Failed to fetch faculty")
	}

	if err := database.SoftDelete(h.db, &faculty); err != nil {
		if errors.Is(err, database.ErrAlreadyDeleted) {
			return response.InvalidState(c, "Faculty is already deleted")
		}
		return response.InternalServerError(c, "Failed to delete faculty")
	}

	return response.SuccessWithMessage(c, "Faculty deleted successfully", faculty)
}

// RestoreFaculty handles PUT /api/v1/faculties/:id/restore
func (h *FacultyHandler) RestoreFaculty(c *fiber.Ctx) error {
	id := c.Params("id")

	var faculty model.Faculty
	if err := h.db.First(&faculty, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Faculty not found")
		}
		return response.InternalServerError(c, "Failed to fetch faculty")
	}

	if err := database.Restore(h.db, &faculty); err != nil {
		if errors.Is(err, database.ErrNotDeleted) {
			return response.InvalidState(c, "Faculty is not deleted")
		}
		return response.InternalServerError(c, "Failed to restore faculty")
	}

	return response.SuccessWithMessage(c, "Faculty restored successfully", faculty)
}
