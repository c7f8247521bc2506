package commission

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
	Course:     "course_code",
	Commission: "code",
	Year:       "year",
}

// CommissionHandler handles commission-related requests
type CommissionHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewCommissionHandler creates a new commission handler
func NewCommissionHandler(db *gorm.DB) *CommissionHandler {
	return &CommissionHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateCommissionRequest represents the request body for creating a
// commission. The career disambiguates the course code, which is only
// unique within its career.
type CreateCommissionRequest struct {
	CareerCode string `json:"career_id" validate:"required,slug"`
	CourseCode string `json:"course_id" validate:"required,slug"`
	Code       string `json:"commission_id" validate:"required,slug"`
	Name       string `json:"name" validate:"required,min=2,max=255"`
	Year       int    `json:"year" validate:"required,gte=2000,lte=2100"`
	Shift      string `json:"shift" validate:"omitempty,oneof=morning afternoon evening"`
}

// UpdateCommissionRequest represents the request body for updating a
// commission. The owning course cannot be changed through update.
type UpdateCommissionRequest struct {
	Code  string `json:"commission_id" validate:"omitempty,slug"`
	Name  string `json:"name" validate:"omitempty,min=2,max=255"`
	Year  *int   `json:"year" validate:"omitempty,gte=2000,lte=2100"`
	Shift string `json:"shift" validate:"omitempty,oneof=morning afternoon evening"`
}

// ListCommissions handles GET /api/v1/commissions
func (h *CommissionHandler) ListCommissions(c *fiber.Ctx) error {
	filter, err := database.ParseFilter(c.Query)
	if err != nil {
		return response.ValidationError(c, err)
	}

	var commissions []model.Commission
	q := filter.Apply(h.db.Model(&model.Commission{}), scopeColumns)
	if err := q.Order("name ASC").Find(&commissions).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch commissions")
	}

	if filter.Distinct {
		commissions = database.DedupByKey(commissions, func(commission model.Commission) string {
			return commission.Code
		})
	}

	return response.List(c, commissions, len(commissions))
}

// GetCommission handles GET /api/v1/commissions/:id
func (h *CommissionHandler) GetCommission(c *fiber.Ctx) error {
	id := c.Params("id")

	var commission model.Commission
	if err := h.db.First(&commission, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Commission not found")
		}
		return response.InternalServerError(c, "Failed to fetch commission")
	}

	return response.Success(c, commission)
}

// CreateCommission handles POST /api/v1/commissions
func (h *CommissionHandler) CreateCommission(c *fiber.Ctx) error {
	var req CreateCommissionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	req.Name = validation.SanitizeString(req.Name)

	var parent model.Course
	if err := h.db.Where("career_code = ? AND code = ? AND deleted = ?",
		req.CareerCode, req.CourseCode, false).Take(&parent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.BadRequest(c, "Course "+req.CourseCode+" does not exist in career "+req.CareerCode)
		}
		return response.InternalServerError(c, "Failed to check course")
	}

	conflict, err := database.CheckNaturalKey(h.db, &model.Commission{},
		"course_code = ? AND code = ?", req.CourseCode, req.Code)
	if err != nil {
		return response.InternalServerError(c, "Failed to check commission code")
	}
	switch conflict {
	case database.ConflictActive:
		return response.Conflict(c, "Commission with this code already exists in this course")
	case database.ConflictDeleted:
		return response.Conflict(c, "A deleted commission with this code exists; restore it instead of creating a new one")
	}

	commission := model.Commission{
		UniversityCode: parent.UniversityCode,
		FacultyCode:    parent.FacultyCode,
		CareerCode:     parent.CareerCode,
		CourseCode:     req.CourseCode,
		Code:           req.Code,
		Name:           req.Name,
		Year:           req.Year,
		Shift:          req.Shift,
	}

	if err := h.db.Create(&commission).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return response.Conflict(c, "Commission with this code already exists in this course")
		}
		return response.InternalServerError(c, "Failed to create commission")
	}

	return response.Created(c, commission)
}

// UpdateCommission handles PUT /api/v1/commissions/:id
func (h *CommissionHandler) UpdateCommission(c *fiber.Ctx) error {
	id := c.Params("id")

	var req UpdateCommissionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var commission model.Commission
	if err := h.db.First(&commission, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Commission not found")
		}
		return response.InternalServerError(c, "Failed to fetch commission")
	}

	if req.Code != "" && req.Code != commission.Code {
		conflict, err := database.CheckNaturalKey(h.db, &model.Commission{},
			"course_code = ? AND code = ? AND id <> ?", commission.CourseCode, req.Code, commission.ID)
		if err != nil {
			return response.InternalServerError(c, "Failed to check commission code")
		}
		if conflict != database.ConflictNone {
			return response.Conflict(c, "Commission with this code already exists in this course")
		}
		commission.Code = req.Code
	}
	if req.Name != "" {
		commission.Name = validation.SanitizeString(req.Name)
	}
	if req.Year != nil {
		commission.Year = *req.Year
	}
	if req.Shift != "" {
		commission.Shift = req.Shift
	}

	if err := h.db.Save(&commission).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return response.Conflict(c, "Commission with this code already exists in this course")
		}
		return response.InternalServerError(c, "Failed to update commission")
	}

	return response.SuccessWithMessage(c, "Commission updated successfully", commission)
}

// DeleteCommission handles DELETE /api/v1/commissions/:id
func (h *CommissionHandler) DeleteCommission(c *fiber.Ctx) error {
	id := c.Params("id")

	var commission model.Commission
	if err := h.db.First(&commission, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Commission not found")
		}
		return response.InternalServerError(c, "Failed to fetch commission")
	}

	if err := database.SoftDelete(h.db, &commission); err != nil {
		if errors.Is(err, database.ErrAlreadyDeleted) {
			return response.InvalidState(c, "Commission is already deleted")
		}
		return response.InternalServerError(c, "Failed to delete commission")
	}

	return response.SuccessWithMessage(c, "Commission deleted successfully", commission)
}

// RestoreCommission handles PUT /api/v1/commissions/:id/restore
func (h *CommissionHandler) RestoreCommission(c *fiber.Ctx) error {
	id := c.Params("id")

	var commission model.Commission
	if err := h.db.First(&commission, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Commission not found")
		}
		return response.InternalServerError(c, "Failed to fetch commission")
	}

	if err := database.Restore(h.db, &commission); err != nil {
		if errors.Is(err, database.ErrNotDeleted) {
			return response.InvalidState(c, "Commission is not deleted")
		}
		return response.InternalServerError(c, "Failed to restore commission")
	}

	return response.SuccessWithMessage(c, "Commission restored successfully", commission)
}
