package user

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"testing"

	"acadmin/model"
	"acadmin/utils/auth"
	"acadmin/utils/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Integration tests run against a dedicated database. Set TEST_DATABASE_URL
// to enable them.

func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("Skipping integration test. Set TEST_DATABASE_URL to run")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&model.User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	if err := db.Exec("DELETE FROM users").Error; err != nil {
		t.Fatalf("failed to clean users: %v", err)
	}

	handler := NewUserHandler(db)

	app := fiber.New()
	app.Get("/users", handler.ListUsers)
	app.Get("/users/:id", handler.GetUser)
	app.Post("/users", handler.CreateUser)
	app.Put("/users/:id", handler.UpdateUser)
	app.Put("/users/:id/restore", handler.RestoreUser)
	app.Delete("/users/:id", handler.DeleteUser)

	return app, db
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, response.Response) {
	t.Helper()

	var reqBody bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&reqBody).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &reqBody)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var parsed response.Response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp.StatusCode, parsed
}

func seedRootAdmin(t *testing.T, db *gorm.DB) uint {
	t.Helper()

	hash, err := auth.HashPassword("a-strong-password")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	root := model.User{
		Email:        "root@example.edu",
		Name:         "Root Administrator",
		Role:         "admin",
		PasswordHash: hash,
		Root:         true,
	}
	if err := db.Create(&root).Error; err != nil {
		t.Fatalf("failed to seed root admin: %v", err)
	}
	return root.ID
}

func TestDeleteRootAdminForbidden(t *testing.T) {
	app, db := setupTestApp(t)

	rootID := seedRootAdmin(t, db)

	status, body := doRequest(t, app, "DELETE", fmt.Sprintf("/users/%d", rootID), nil)
	if status != fiber.StatusForbidden {
		t.Fatalf("status = %d, want 403", status)
	}
	// Root protection is a FORBIDDEN, not the INVALID_STATE a double delete
	// would produce.
	if body.Error == nil || body.Error.Code != "FORBIDDEN" {
		t.Errorf("error = %+v, want FORBIDDEN", body.Error)
	}

	var root model.User
	if err := db.First(&root, rootID).Error; err != nil {
		t.Fatalf("failed to reload root: %v", err)
	}
	if root.Deleted {
		t.Error("root admin must stay active")
	}
}

func TestRootAdminRoleLocked(t *testing.T) {
	app, db := setupTestApp(t)

	rootID := seedRootAdmin(t, db)

	status, body := doRequest(t, app, "PUT", fmt.Sprintf("/users/%d", rootID), map[string]interface{}{
		"role": "teacher",
	})
	if status != fiber.StatusForbidden {
		t.Fatalf("status = %d, want 403, body = %+v", status, body)
	}
}

func TestUserLifecycle(t *testing.T) {
	app, _ := setupTestApp(t)

	status, body := doRequest(t, app, "POST", "/users", map[string]interface{}{
		"email":    "teacher@example.edu",
		"name":     "A Teacher",
		"role":     "teacher",
		"password": "teaching-is-fun",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("create: status = %d, body = %+v", status, body)
	}

	data, ok := body.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected data shape: %+v", body.Data)
	}
	id := uint(data["id"].(float64))

	// The password hash never leaves the API.
	if _, leaked := data["password_hash"]; leaked {
		t.Error("password hash must not be serialized")
	}

	// A deleted user keeps the email and blocks re-registration.
	if status, _ := doRequest(t, app, "DELETE", fmt.Sprintf("/users/%d", id), nil); status != fiber.StatusOK {
		t.Fatalf("delete: status = %d", status)
	}

	status, body = doRequest(t, app, "POST", "/users", map[string]interface{}{
		"email":    "teacher@example.edu",
		"name":     "Impostor",
		"role":     "teacher",
		"password": "another-password",
	})
	if status != fiber.StatusConflict {
		t.Fatalf("re-register deleted email: status = %d, want 409", status)
	}
	if body.Error == nil || body.Error.Code != "CONFLICT" {
		t.Errorf("error = %+v, want CONFLICT", body.Error)
	}

	// Restore brings the account back.
	if status, _ := doRequest(t, app, "PUT", fmt.Sprintf("/users/%d/restore", id), nil); status != fiber.StatusOK {
		t.Fatalf("restore: status = %d", status)
	}

	status, body = doRequest(t, app, "GET", "/users?role=teacher", nil)
	if status != fiber.StatusOK {
		t.Fatalf("list: status = %d", status)
	}
	if body.Count == nil || *body.Count != 1 {
		t.Errorf("count = %v, want 1", body.Count)
	}
}
