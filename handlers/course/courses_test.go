package course

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"testing"

	"acadmin/model"
	"acadmin/utils/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Integration tests run against a dedicated database. Set TEST_DATABASE_URL
// to enable them. Two careers named "isi" under different faculties are
// seeded so code collisions across scopes can be exercised.

func setupTestApp(t *testing.T) *fiber.App {
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

	if err := db.AutoMigrate(&model.Career{}, &model.Course{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	if err := db.Exec("DELETE FROM courses").Error; err != nil {
		t.Fatalf("failed to clean courses: %v", err)
	}
	if err := db.Exec("DELETE FROM careers").Error; err != nil {
		t.Fatalf("failed to clean careers: %v", err)
	}

	careers := []model.Career{
		{UniversityCode: "utn", FacultyCode: "frm", Code: "isi", Name: "Sistemas (Mendoza)"},
		{UniversityCode: "utn", FacultyCode: "frba", Code: "isi-ba", Name: "Sistemas (Buenos Aires)"},
	}
	if err := db.Create(&careers).Error; err != nil {
		t.Fatalf("failed to seed careers: %v", err)
	}

	handler := NewCourseHandler(db)

	app := fiber.New()
	app.Get("/courses", handler.ListCourses)
	app.Get("/courses/:id", handler.GetCourse)
	app.Post("/courses", handler.CreateCourse)
	app.Put("/courses/:id", handler.UpdateCourse)
	app.Put("/courses/:id/restore", handler.RestoreCourse)
	app.Delete("/courses/:id", handler.DeleteCourse)

	return app
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

func createCourse(t *testing.T, app *fiber.App, career, code string) map[string]interface{} {
	t.Helper()

	status, body := doRequest(t, app, "POST", "/courses", map[string]interface{}{
		"career_id": career,
		"course_id": code,
		"name":      "Course " + code,
		"year":      1,
	})
	if status != fiber.StatusCreated {
		t.Fatalf("create %s/%s: status = %d, body = %+v", career, code, status, body)
	}

	data, ok := body.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected data shape: %+v", body.Data)
	}
	return data
}

func TestSameCodeAcrossCareers(t *testing.T) {
	app := setupTestApp(t)

	// The same course code under two different careers is fine.
	createCourse(t, app, "isi", "programacion-1")
	createCourse(t, app, "isi-ba", "programacion-1")

	// Within one career it is a conflict.
	status, body := doRequest(t, app, "POST", "/courses", map[string]interface{}{
		"career_id": "isi",
		"course_id": "programacion-1",
		"name":      "Duplicate Course",
	})
	if status != fiber.StatusConflict {
		t.Fatalf("duplicate in career: status = %d, want 409", status)
	}
	if body.Error == nil || body.Error.Code != "CONFLICT" {
		t.Errorf("error = %+v, want CONFLICT", body.Error)
	}
}

func TestScopeChainDenormalized(t *testing.T) {
	app := setupTestApp(t)

	data := createCourse(t, app, "isi", "analisis-matematico-1")

	// The ancestor chain is copied down from the career at create time.
	if data["university_id"] != "utn" {
		t.Errorf("university_id = %v, want utn", data["university_id"])
	}
	if data["faculty_id"] != "frm" {
		t.Errorf("faculty_id = %v, want frm", data["faculty_id"])
	}
	if data["career_id"] != "isi" {
		t.Errorf("career_id = %v, want isi", data["career_id"])
	}
}

func TestCreateCourseUnknownCareer(t *testing.T) {
	app := setupTestApp(t)

	status, body := doRequest(t, app, "POST", "/courses", map[string]interface{}{
		"career_id": "no-such-career",
		"course_id": "programacion-1",
		"name":      "Orphan Course",
	})
	if status != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if body.Error == nil || body.Error.Code != "BAD_REQUEST" {
		t.Errorf("error = %+v, want BAD_REQUEST", body.Error)
	}
}

func TestListScopeFilters(t *testing.T) {
	app := setupTestApp(t)

	createCourse(t, app, "isi", "programacion-1")
	createCourse(t, app, "isi-ba", "programacion-1")

	// Unscoped code lookup returns both homonyms.
	status, body := doRequest(t, app, "GET", "/courses?course_id=programacion-1", nil)
	if status != fiber.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if body.Count == nil || *body.Count != 2 {
		t.Errorf("unscoped count = %v, want 2", body.Count)
	}

	// distinct=true collapses them to one representative.
	status, body = doRequest(t, app, "GET", "/courses?course_id=programacion-1&distinct=true", nil)
	if status != fiber.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if body.Count == nil || *body.Count != 1 {
		t.Errorf("distinct count = %v, want 1", body.Count)
	}

	// Narrowing by career disambiguates.
	status, body = doRequest(t, app, "GET", "/courses?course_id=programacion-1&career_id=isi", nil)
	if status != fiber.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if body.Count == nil || *body.Count != 1 {
		t.Errorf("career-scoped count = %v, want 1", body.Count)
	}

	// Ancestor filters apply through the denormalized chain.
	status, body = doRequest(t, app, "GET", "/courses?faculty_id=frba", nil)
	if status != fiber.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if body.Count == nil || *body.Count != 1 {
		t.Errorf("faculty-scoped count = %v, want 1", body.Count)
	}
}

func TestListNonNumericYear(t *testing.T) {
	app := setupTestApp(t)

	status, body := doRequest(t, app, "GET", "/courses?year=abc", nil)
	if status != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if body.Error == nil || body.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("error = %+v, want VALIDATION_ERROR", body.Error)
	}
}
