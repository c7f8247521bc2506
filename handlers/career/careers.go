package career

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
	Career:     "code",
}

// CareerHandler handles career-related requests
type CareerHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewCareerHandler creates a new career handler
func NewCareerHandler(db *gorm.DB) *CareerHandler {
	return &CareerHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateCareerRequest represents the request body for creating a career
type CreateCareerRequest struct {
	FacultyCode string `json:"faculty_id" validate:"required,slug"`
	Code        string `json:"career_id" validate:"required,slug"`
	Name        string `json:"name" validate:"required,min=3,max=255"`
}

// UpdateCareerRequest represents the request body for updating a career.
// The owning faculty cannot be changed through update.
type UpdateCareerRequest struct {
	Code string `json:"career_id" validate:"omitempty,slug"`
	Name string `json:"name" validate:"omitempty,min=3,max=255"`
}

// ListCareers handles GET /api/v1/careers
func (h *CareerHandler) ListCareers(c *fiber.Ctx) error {
	filter, err := database.ParseFilter(c.Query)
	if err != nil {
		return response.ValidationError(c, err)
	}

	var careers []model.Career
	q := filter.Apply(h.db.Model(&model.Career{}), scopeColumns)
	if err := q.Order("name ASC").Find(&careers).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch careers")
	}

	return response.List(c, careers, len(careers))
}

// GetCareer handles GET /api/v1/careers/:id
func (h *CareerHandler) GetCareer(c *fiber.Ctx) error {
	id := c.Params("id")

	var career model.Career
	if err := h.db.First(&career, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Career not found")
		}
		return response.InternalServerError(c, "Failed to fetch career")
	}

	return response.Success(c, career)
}

// CreateCareer handles POST /api/v1/careers
func (h *CareerHandler) CreateCareer(c *fiber.Ctx) error {
	var req CreateCareerRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	req.Name = validation.SanitizeString(req.Name)

	// The named faculty must exist and be active; its university code is
	// copied down so the scope chain stays internally consistent.
	var parent model.Faculty
	if err := h.db.Where("code = ? AND deleted = ?", req.FacultyCode, false).Take(&parent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.BadRequest(c, "Faculty "+req.FacultyCode+" does not exist")
		}
		return response.InternalServerError(c, "Failed to check faculty")
	}

	conflict, err := database.CheckNaturalKey(h.db, &model.Career{},
		"faculty_code = ? AND code = ?", req.FacultyCode, req.Code)
	if err != nil {
		return response.InternalServerError(c, "Failed to check career code")
	}
	switch conflict {
	case database.ConflictActive:
		return response.Conflict(c, "Career with this code already exists in this faculty")
	case database.ConflictDeleted:
		return response.Conflict(c, "A deleted career with this code exists; restore it instead of creating a new one")
	}

	career := model.Career{
		UniversityCode: parent.UniversityCode,
		FacultyCode:    req.FacultyCode,
		Code:           req.Code,
		Name:           req.Name,
	}

	if err := h.db.Create(&career).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return response.Conflict(c, "Career with this code already exists in this faculty")
		}
		return response.InternalServerError(c, "Failed to create career")
	}

	return response.Created(c, career)
}

// UpdateCareer handles PUT /api/v1/careers/:id
func (h *CareerHandler) UpdateCareer(c *fiber.Ctx) error {
	id := c.Params("id")

	var req UpdateCareerRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var career model.Career
	if err := h.db.First(&career, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Career not found")
		}
		return response.InternalServerError(c, "Failed to fetch career")
	}

	if req.Code != "" && req.Code != career.Code {
		conflict, err := database.CheckNaturalKey(h.db, &model.Career{},
			"faculty_code = ? AND code = ? AND id <> ?", career.FacultyCode, req.Code, career.ID)
		if err != nil {
			return response.InternalServerError(c, "Failed to check career code")
		}
		if conflict != database.ConflictNone {
			return response.Conflict(c, "Career with this code already exists in this faculty")
		}
		career.Code = req.Code
	}
	if req.Name != "" {
		career.Name = validation.SanitizeString(req.Name)
	}

	if err := h.db.Save(&career).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return response.Conflict(c, "Career with this code already exists in this faculty")
		}
		return response.InternalServerError(c, "Failed to update career")
	}

	return response.SuccessWithMessage(c, "Career updated successfully", career)
}

// DeleteCareer handles DELETE /api/v1/careers/:id
func (h *CareerHandler) DeleteCareer(c *fiber.Ctx) error {
	id := c.Params("id")

	var career model.Career
	if err := h.db.First(&career, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Career not found")
		}
		return response.InternalServerError(c, "Failed to fetch career")
	}

	if err := database.SoftDelete(h.db, &career); err != nil {
		if errors.Is(err, database.ErrAlreadyDeleted) {
			return response.InvalidState(c, "Career is already deleted")
		}
		return response.InternalServerError(c, "Failed to delete career")
	}

	return response.SuccessWithMessage(c, "Career deleted successfully", career)
}

// RestoreCareer handles PUT /api/v1/careers/:id/restore
func (h *CareerHandler) RestoreCareer(c *fiber.Ctx) error {
	id := c.Params("id")

	var career model.Career
	if err := h.db.First(&career, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Career not found")
		}
		return response.InternalServerError(c, "Failed to fetch career")
	}

	if err := database.Restore(h.db, &career); err != nil {
		if errors.Is(err, database.ErrNotDeleted) {
			return response.InvalidState(c, "Career is not deleted")
		}
		return response.InternalServerError(c, "Failed to restore career")
	}

	return response.SuccessWithMessage(c, "Career restored successfully", career)
}
