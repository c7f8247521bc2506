package rubric

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"acadmin/database"
	"acadmin/model"
	"acadmin/services/rubricgen"
	"acadmin/services/storage"
	"acadmin/utils/pdfcheck"
	"acadmin/utils/response"
	"acadmin/utils/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var scopeColumns = database.Columns{
	University: "university_code",
	Faculty:    "faculty_code",
	Career:     "career_code",
	Course:     "course_code",
	Commission: "commission_code",
	Year:       "year",
}

// RubricHandler handles rubric CRUD and PDF-based generation
type RubricHandler struct {
	db        *gorm.DB
	validator *validation.Validator
	generator *rubricgen.Client
	storage   *storage.Client
}

// NewRubricHandler creates a new rubric handler. generator may be nil when
// RUBRIC_SERVICE_URL is not configured, and storage may be nil when the
// bucket is not configured; generation degrades accordingly.
func NewRubricHandler(db *gorm.DB, generator *rubricgen.Client, storageClient *storage.Client) *RubricHandler {
	return &RubricHandler{
		db:        db,
		validator: validation.NewValidator(),
		generator: generator,
		storage:   storageClient,
	}
}

// CreateRubricRequest represents the request body for creating a rubric by hand
type CreateRubricRequest struct {
	CareerCode     string                  `json:"career_id" validate:"required,slug"`
	CourseCode     string                  `json:"course_id" validate:"required,slug"`
	CommissionCode string                  `json:"commission_id" validate:"omitempty,slug"`
	Code           string                  `json:"rubric_id" validate:"required,slug"`
	Name           string                  `json:"name" validate:"required,min=3,max=255"`
	Year           int                     `json:"year" validate:"omitempty,gte=2000,lte=2100"`
	Criteria       []model.RubricCriterion `json:"criteria" validate:"required,min=1,dive"`
}

// UpdateRubricRequest represents the request body for updating a rubric.
// The owning course cannot be changed through update.
type UpdateRubricRequest struct {
	Code     string                  `json:"rubric_id" validate:"omitempty,slug"`
	Name     string                  `json:"name" validate:"omitempty,min=3,max=255"`
	Year     *int                    `json:"year" validate:"omitempty,gte=2000,lte=2100"`
	Criteria []model.RubricCriterion `json:"criteria" validate:"omitempty,min=1,dive"`
}

// GenerateRubricRequest carries the multipart form fields accompanying the
// uploaded PDF on the generate endpoint.
type GenerateRubricRequest struct {
	CareerCode     string `form:"career_id" validate:"required,slug"`
	CourseCode     string `form:"course_id" validate:"required,slug"`
	CommissionCode string `form:"commission_id" validate:"omitempty,slug"`
	Code           string `form:"rubric_id" validate:"required,slug"`
	Name           string `form:"name" validate:"omitempty,min=3,max=255"`
	Year           int    `form:"year" validate:"omitempty,gte=2000,lte=2100"`
}

// ListRubrics handles GET /api/v1/rubrics
func (h *RubricHandler) ListRubrics(c *fiber.Ctx) error {
	filter, err := database.ParseFilter(c.Query)
	if err != nil {
		return response.ValidationError(c, err)
	}

	var rubrics []model.Rubric
	q := filter.Apply(h.db.Model(&model.Rubric{}), scopeColumns)
	if err := q.Order("name ASC").Find(&rubrics).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch rubrics")
	}

	if filter.Distinct {
		rubrics = database.DedupByKey(rubrics, func(rubric model.Rubric) string {
			return rubric.Code
		})
	}

	return response.List(c, rubrics, len(rubrics))
}

// GetRubric handles GET /api/v1/rubrics/:id
func (h *RubricHandler) GetRubric(c *fiber.Ctx) error {
	id := c.Params("id")

	var rubric model.Rubric
	if err := h.db.First(&rubric, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Rubric not found")
		}
		return response.InternalServerError(c, "Failed to fetch rubric")
	}

	return response.Success(c, rubric)
}

// resolveCourse loads the active course identified by (career, course) and
// optionally checks the commission belongs to it.
func (h *RubricHandler) resolveCourse(careerCode, courseCode, commissionCode string) (*model.Course, error) {
	var course model.Course
	err := h.db.Where("career_code = ? AND code = ? AND deleted = ?",
		careerCode, courseCode, false).Take(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("course %s does not exist in career %s", courseCode, careerCode)
		}
		return nil, err
	}

	if commissionCode != "" {
		var commission model.Commission
		err := h.db.Where("course_code = ? AND code = ? AND deleted = ?",
			courseCode, commissionCode, false).Take(&commission).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("commission %s does not exist in course %s", commissionCode, courseCode)
			}
			return nil, err
		}
	}

	return &course, nil
}

// CreateRubric handles POST /api/v1/rubrics
func (h *RubricHandler) CreateRubric(c *fiber.Ctx) error {
	var req CreateRubricRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	course, err := h.resolveCourse(req.CareerCode, req.CourseCode, req.CommissionCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || strings.Contains(err.Error(), "does not exist") {
			return response.BadRequest(c, err.Error())
		}
		return response.InternalServerError(c, "Failed to check course")
	}

	conflict, err := database.CheckNaturalKey(h.db, &model.Rubric{},
		"course_code = ? AND code = ?", req.CourseCode, req.Code)
	if err != nil {
		return response.InternalServerError(c, "Failed to check rubric code")
	}
	switch conflict {
	case database.ConflictActive:
		return response.Conflict(c, "Rubric with this code already exists for this course")
	case database.ConflictDeleted:
		return response.Conflict(c, "A deleted rubric with this code exists; restore it instead of creating a new one")
	}

	criteriaJSON, err := json.Marshal(req.Criteria)
	if err != nil {
		return response.BadRequest(c, "Invalid criteria")
	}

	rubric := model.Rubric{
		UniversityCode: course.UniversityCode,
		FacultyCode:    course.FacultyCode,
		CareerCode:     req.CareerCode,
		CourseCode:     req.CourseCode,
		CommissionCode: req.CommissionCode,
		Code:           req.Code,
		Name:           validation.SanitizeString(req.Name),
		Year:           req.Year,
		Criteria:       datatypes.JSON(criteriaJSON),
	}

	if err := h.db.Create(&rubric).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return response.Conflict(c, "Rubric with this code already exists for this course")
		}
		return response.InternalServerError(c, "Failed to create rubric")
	}

	return response.Created(c, rubric)
}

// GenerateRubric handles POST /api/v1/rubrics/generate
//
// The uploaded original is persisted to object storage before the generator
// is called and removed afterwards regardless of outcome. The generator call
// is bounded by the client timeout and is never retried.
func (h *RubricHandler) GenerateRubric(c *fiber.Ctx) error {
	if h.generator == nil {
		return response.ServiceUnavailable(c, "Rubric generation service is not configured")
	}

	var req GenerateRubricRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "A PDF file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.InternalServerError(c, "Failed to open uploaded file")
	}
	content, err := io.ReadAll(file)
	file.Close()
	if err != nil {
		return response.InternalServerError(c, "Failed to read uploaded file")
	}

	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".pdf") {
		return response.BadRequest(c, "Only PDF files are supported")
	}

	check, err := pdfcheck.ValidateBytes(content, pdfcheck.RubricLimits)
	if err != nil {
		return response.InternalServerError(c, "Failed to validate PDF")
	}
	if !check.Valid {
		return response.BadRequest(c, check.Error)
	}

	course, err := h.resolveCourse(req.CareerCode, req.CourseCode, req.CommissionCode)
	if err != nil {
		if strings.Contains(err.Error(), "does not exist") {
			return response.BadRequest(c, err.Error())
		}
		return response.InternalServerError(c, "Failed to check course")
	}

	conflict, err := database.CheckNaturalKey(h.db, &model.Rubric{},
		"course_code = ? AND code = ?", req.CourseCode, req.Code)
	if err != nil {
		return response.InternalServerError(c, "Failed to check rubric code")
	}
	switch conflict {
	case database.ConflictActive:
		return response.Conflict(c, "Rubric with this code already exists for this course")
	case database.ConflictDeleted:
		return response.Conflict(c, "A deleted rubric with this code exists; restore it instead of creating a new one")
	}

	// Persist the original while the generator works on it. Removed below
	// whether generation succeeds or not; the janitor sweeps up anything a
	// crash leaves behind.
	objectKey := ""
	if h.storage != nil {
		objectKey = storage.UploadPrefix + uuid.New().String() + ".pdf"
		if err := h.storage.UploadBytes(c.Context(), objectKey, content, "application/pdf"); err != nil {
			log.Println("Failed to persist uploaded original:", err)
			objectKey = ""
		}
		if objectKey != "" {
			defer func(key string) {
				if err := h.storage.DeleteObject(c.Context(), key); err != nil {
					log.Println("Failed to remove uploaded original:", err)
				}
			}(objectKey)
		}
	}

	generated, err := h.generator.GenerateFromPDF(c.Context(), content, fileHeader.Filename)
	if err != nil {
		return response.UpstreamError(c, "Rubric generation failed", err)
	}

	name := validation.SanitizeString(req.Name)
	if name == "" {
		name = validation.SanitizeString(generated.Name)
	}
	if name == "" {
		name = req.Code
	}

	criteriaJSON, err := json.Marshal(generated.Criteria)
	if err != nil {
		return response.InternalServerError(c, "Failed to encode generated criteria")
	}

	rubric := model.Rubric{
		UniversityCode: course.UniversityCode,
		FacultyCode:    course.FacultyCode,
		CareerCode:     req.CareerCode,
		CourseCode:     req.CourseCode,
		CommissionCode: req.CommissionCode,
		Code:           req.Code,
		Name:           name,
		Year:           req.Year,
		Criteria:       datatypes.JSON(criteriaJSON),
		SourceDocument: objectKey,
	}

	if err := h.db.Create(&rubric).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return response.Conflict(c, "Rubric with this code already exists for this course")
		}
		return response.InternalServerError(c, "Failed to create rubric")
	}

	return response.Created(c, rubric)
}

// UpdateRubric handles PUT /api/v1/rubrics/:id
func (h *RubricHandler) UpdateRubric(c *fiber.Ctx) error {
	id := c.Params("id")

	var req UpdateRubricRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var rubric model.Rubric
	if err := h.db.First(&rubric, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Rubric not found")
		}
		return response.InternalServerError(c, "Failed to fetch rubric")
	}

	if req.Code != "" && req.Code != rubric.Code {
		conflict, err := database.CheckNaturalKey(h.db, &model.Rubric{},
			"course_code = ? AND code = ? AND id <> ?", rubric.CourseCode, req.Code, rubric.ID)
		if err != nil {
			return response.InternalServerError(c, "Failed to check rubric code")
		}
		if conflict != database.ConflictNone {
			return response.Conflict(c, "Rubric with this code already exists for this course")
		}
		rubric.Code = req.Code
	}
	if req.Name != "" {
		rubric.Name = validation.SanitizeString(req.Name)
	}
	if req.Year != nil {
		rubric.Year = *req.Year
	}
	if len(req.Criteria) > 0 {
		criteriaJSON, err := json.Marshal(req.Criteria)
		if err != nil {
			return response.BadRequest(c, "Invalid criteria")
		}
		rubric.Criteria = datatypes.JSON(criteriaJSON)
	}

	if err := h.db.Save(&rubric).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return response.Conflict(c, "Rubric with this code already exists for this course")
		}
		return response.InternalServerError(c, "Failed to update rubric")
	}

	return response.SuccessWithMessage(c, "Rubric updated successfully", rubric)
}

// DeleteRubric handles DELETE /api/v1/rubrics/:id
func (h *RubricHandler) DeleteRubric(c *fiber.Ctx) error {
	id := c.Params("id")

	var rubric model.Rubric
	if err := h.db.First(&rubric, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Rubric not found")
		}
		return response.InternalServerError(c, "Failed to fetch rubric")
	}

	if err := database.SoftDelete(h.db, &rubric); err != nil {
		if errors.Is(err, database.ErrAlreadyDeleted) {
			return response.InvalidState(c, "Rubric is already deleted")
		}
		return response.InternalServerError(c, "Failed to delete rubric")
	}

	return response.SuccessWithMessage(c, "Rubric deleted successfully", rubric)
}

// RestoreRubric handles PUT /api/v1/rubrics/:id/restore
func (h *RubricHandler) RestoreRubric(c *fiber.Ctx) error {
	id := c.Params("id")

	var rubric model.Rubric
	if err := h.db.First(&rubric, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Rubric not found")
		}
		return response.InternalServerError(c, "Failed to restore rubric")
	}

	if err := database.Restore(h.db, &rubric); err != nil {
		if errors.Is(err, database.ErrNotDeleted) {
			return response.InvalidState(c, "Rubric is not deleted")
		}
		return response.InternalServerError(c, "Failed to restore rubric")
	}

	return response.SuccessWithMessage(c, "Rubric restored successfully", rubric)
}
