package university

import (
	"errors"

	"acadmin/database"
	"acadmin/model"
	"acadmin/utils/response"
	"acadmin/utils/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// scopeColumns maps list filters onto the universities table. A university
// is the scope root, so only its own code applies.
var scopeColumns = database.Columns{
	University: "code",
}

// UniversityHandler handles university-related requests
type UniversityHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewUniversityHandler creates a new university handler
func NewUniversityHandler(db *gorm.DB) *UniversityHandler {
	return &UniversityHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateUniversityRequest represents the request body for creating a university
type CreateUniversityRequest struct {
	Code    string `json:"university_id" validate:"required,slug"`
	Name    string `json:"name" validate:"required,min=3,max=255"`
	Country string `json:"country" validate:"omitempty,max=100"`
	Website string `json:"website" validate:"omitempty,url,max=255"`
}

// UpdateUniversityRequest represents the request body for updating a
// university. Absent fields leave the record untouched.
type UpdateUniversityRequest struct {
	Code    string `json:"university_id" validate:"omitempty,slug"`
	Name    string `json:"name" validate:"omitempty,min=3,max=255"`
	Country string `json:"country" validate:"omitempty,max=100"`
	Website string `json:"website" validate:"omitempty,url,max=255"`
}

// ListUniversities handles GET /api/v1/universities
func (h *UniversityHandler) ListUniversities(c *fiber.Ctx) error {
	filter, err := database.ParseFilter(c.Query)
	if err != nil {
		return response.ValidationError(c, err)
	}

	var universities []model.University
	q := filter.Apply(h.db.Model(&model.University{}), scopeColumns)
	if err := q.Order("name ASC").Find(&universities).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch universities")
	}

	return response.List(c, universities, len(universities))
}

// GetUniversity handles GET /api/v1/universities/:id
func (h *UniversityHandler) GetUniversity(c *fiber.Ctx) error {
	id := c.Params("id")

	var university model.University
	if err := h.db.First(&university, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "University not found")
		}
		return response.InternalServerError(c, "Failed to fetch university")
	}

	return response.Success(c, university)
}

// CreateUniversity handles POST /api/v1/universities
func (h *UniversityHandler) CreateUniversity(c *fiber.Ctx) error {
	var req CreateUniversityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	req.Name = validation.SanitizeString(req.Name)
	req.Country = validation.SanitizeString(req.Country)

	conflict, err := database.CheckNaturalKey(h.db, &model.University{}, "code = ?", req.Code)
	if err != nil {
		return response.InternalServerError(c, "Failed to check university code")
	}
	switch conflict {
	case database.ConflictActive:
		return response.Conflict(c, "University with this code already exists")
	case database.ConflictDeleted:
		return response.Conflict(c, "A deleted university with this code exists; restore it instead of creating a new one")
	}

	university := model.University{
		Code:    req.Code,
		Name:    req.Name,
		Country: req.Country,
		Website: req.Website,
	}

	if err := h.db.Create(&university).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return response.Conflict(c, "University with this code already exists")
		}
		return response.InternalServerError(c, "Failed to create university")
	}

	return response.Created(c, university)
}

// UpdateUniversity handles PUT /api/v1/universities/:id
func (h *UniversityHandler) UpdateUniversity(c *fiber.Ctx) error {
	id := c.Params("id")

	var req UpdateUniversityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var university model.University
	if err := h.db.First(&university, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "University not found")
		}
		return response.InternalServerError(c, "Failed to fetch university")
	}

	// Update fields if provided
	if req.Code != "" && req.Code != university.Code {
		conflict, err := database.CheckNaturalKey(h.db, &model.University{},
			"code = ? AND id <> ?", req.Code, university.ID)
		if err != nil {
			return response.InternalServerError(c, "Failed to check university code")
		}
		if conflict != database.ConflictNone {
			return response.Conflict(c, "University with this code already exists")
		}
		university.Code = req.Code
	}
	if req.Name != "" {
		university.Name = validation.SanitizeString(req.Name)
	}
	if req.Country != "" {
		university.Country = validation.SanitizeString(req.Country)
	}
	if req.Website != "" {
		university.Website = req.Website
	}

	if err := h.db.Save(&university).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return response.Conflict(c, "University with this code already exists")
		}
		return response.InternalServerError(c, "Failed to update university")
	}

	return response.SuccessWithMessage(c, "University updated successfully", university)
}

// DeleteUniversity handles DELETE /api/v1/universities/:id
func (h *UniversityHandler) DeleteUniversity(c *fiber.Ctx) error {
	id := c.Params("id")

	var university model.University
	if err := h.db.First(&university, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "University not found")
		}
		return response.InternalServerError(c, "Failed to fetch university")
	}

	if err := database.SoftDelete(h.db, &university); err != nil {
		if errors.Is(err, database.ErrAlreadyDeleted) {
			return response.InvalidState(c, "University is already deleted")
		}
		return response.InternalServerError(c, "Failed to delete university")
	}

	return response.SuccessWithMessage(c, "University deleted successfully", university)
}

// RestoreUniversity handles PUT /api/v1/universities/:id/restore
func (h *UniversityHandler) RestoreUniversity(c *fiber.Ctx) error {
	id := c.Params("id")

	var university model.University
	if err := h.db.First(&university, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "University not found")
		}
		return response.InternalServerError(c, "Failed to fetch university")
	}

	if err := database.Restore(h.db, &university); err != nil {
		if errors.Is(err, database.ErrNotDeleted) {
			return response.InvalidState(c, "University is not deleted")
		}
		return response.InternalServerError(c, "Failed to restore university")
	}

	return response.SuccessWithMessage(c, "University restored successfully", university)
}
