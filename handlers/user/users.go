package user

import (
	"errors"

	"acadmin/database"
	"acadmin/model"
	"acadmin/utils/auth"
	"acadmin/utils/response"
	"acadmin/utils/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UserHandler handles user account management
type UserHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewUserHandler creates a new user handler
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Role     string `json:"role" validate:"required,oneof=admin teacher student"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// UpdateUserRequest represents the request body for updating a user.
// Absent fields leave the record untouched.
type UpdateUserRequest struct {
	Email    string `json:"email" validate:"omitempty,email,max=255"`
	Name     string `json:"name" validate:"omitempty,min=2,max=255"`
	Role     string `json:"role" validate:"omitempty,oneof=admin teacher student"`
	Password string `json:"password" validate:"omitempty,min=8,max=128"`
}

// ListUsers handles GET /api/v1/users
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	q := h.db.Model(&model.User{})

	if c.Query("include_deleted") != "true" {
		q = q.Where("deleted = ?", false)
	}
	if role := c.Query("role"); role != "" {
		q = q.Where("role = ?", role)
	}

	var users []model.User
	if err := q.Order("name ASC").Find(&users).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch users")
	}

	return response.List(c, users, len(users))
}

// GetUser handles GET /api/v1/users/:id
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id := c.Params("id")

	var user model.User
	if err := h.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to fetch user")
	}

	return response.Success(c, user)
}

// CreateUser handles POST /api/v1/users
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	conflict, err := database.CheckNaturalKey(h.db, &model.User{}, "email = ?", req.Email)
	if err != nil {
		return response.InternalServerError(c, "Failed to check email")
	}
	switch conflict {
	case database.ConflictActive:
		return response.Conflict(c, "User with this email already exists")
	case database.ConflictDeleted:
		return response.Conflict(c, "A deleted user with this email exists; restore it instead of creating a new one")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	user := model.User{
		Email:        req.Email,
		Name:         validation.SanitizeString(req.Name),
		Role:         req.Role,
		PasswordHash: hash,
	}

	if err := h.db.Create(&user).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return response.Conflict(c, "User with this email already exists")
		}
		return response.InternalServerError(c, "Failed to create user")
	}

	return response.Created(c, user)
}

// UpdateUser handles PUT /api/v1/users/:id
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id := c.Params("id")

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var user model.User
	if err := h.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to fetch user")
	}

	if req.Email != "" && req.Email != user.Email {
		conflict, err := database.CheckNaturalKey(h.db, &model.User{},
			"email = ? AND id <> ?", req.Email, user.ID)
		if err != nil {
			return response.InternalServerError(c, "Failed to check email")
		}
		if conflict != database.ConflictNone {
			return response.Conflict(c, "User with this email already exists")
		}
		user.Email = req.Email
	}
	if req.Name != "" {
		user.Name = validation.SanitizeString(req.Name)
	}
	if req.Role != "" {
		// The root account keeps admin no matter what the payload says.
		if user.Root && req.Role != "admin" {
			return response.Forbidden(c, "The root administrator account must remain an admin")
		}
		user.Role = req.Role
	}
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return response.BadRequest(c, err.Error())
		}
		user.PasswordHash = hash
	}

	if err := h.db.Save(&user).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return response.Conflict(c, "User with this email already exists")
		}
		return response.InternalServerError(c, "Failed to update user")
	}

	return response.SuccessWithMessage(c, "User updated successfully", user)
}

// DeleteUser handles DELETE /api/v1/users/:id
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id := c.Params("id")

	var user model.User
	if err := h.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to fetch user")
	}

	// The root administrative account is protected unconditionally. This is
	// deliberately a different rejection than the already-deleted case.
	if user.Root {
		return response.Forbidden(c, "The root administrator account cannot be deleted")
	}

	if err := database.SoftDelete(h.db, &user); err != nil {
		if errors.Is(err, database.ErrAlreadyDeleted) {
			return response.InvalidState(c, "User is already deleted")
		}
		return response.InternalServerError(c, "Failed to delete user")
	}

	return response.SuccessWithMessage(c, "User deleted successfully", user)
}

// RestoreUser handles PUT /api/v1/users/:id/restore
func (h *UserHandler) RestoreUser(c *fiber.Ctx) error {
	id := c.Params("id")

	var user model.User
	if err := h.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to fetch user")
	}

	if err := database.Restore(h.db, &user); err != nil {
		if errors.Is(err, database.ErrNotDeleted) {
			return response.InvalidState(c, "User is not deleted")
		}
		return response.InternalServerError(c, "Failed to restore user")
	}

	return response.SuccessWithMessage(c, "User restored successfully", user)
}
