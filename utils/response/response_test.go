package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func perform(t *testing.T, handler fiber.Handler) (int, Response) {
	t.Helper()

	app := fiber.New()
	app.Get("/", handler)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var body Response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp.StatusCode, body
}

func TestList(t *testing.T) {
	status, body := perform(t, func(c *fiber.Ctx) error {
		return List(c, []string{"utn", "uba"}, 2)
	})

	if status != fiber.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
	if !body.Success {
		t.Error("success should be true")
	}
	if body.Count == nil || *body.Count != 2 {
		t.Errorf("count = %v, want 2", body.Count)
	}
}

func TestListZeroCount(t *testing.T) {
	_, body := perform(t, func(c *fiber.Ctx) error {
		return List(c, []string{}, 0)
	})

	// A zero count is still serialized; only a nil pointer is omitted.
	if body.Count == nil || *body.Count != 0 {
		t.Errorf("count = %v, want 0", body.Count)
	}
}

func TestCreated(t *testing.T) {
	status, body := perform(t, func(c *fiber.Ctx) error {
		return Created(c, map[string]string{"university_id": "utn"})
	})

	if status != fiber.StatusCreated {
		t.Errorf("status = %d, want 201", status)
	}
	if !body.Success {
		t.Error("success should be true")
	}
}

func TestErrorCodes(t *testing.T) {
	cases := []struct {
		name       string
		handler    fiber.Handler
		wantStatus int
		wantCode   string
	}{
		{
			name:       "conflict",
			handler:    func(c *fiber.Ctx) error { return Conflict(c, "duplicate code") },
			wantStatus: fiber.StatusConflict,
			wantCode:   "CONFLICT",
		},
		{
			name:       "invalid state",
			handler:    func(c *fiber.Ctx) error { return InvalidState(c, "already deleted") },
			wantStatus: fiber.StatusBadRequest,
			wantCode:   "INVALID_STATE",
		},
		{
			name:       "not found",
			handler:    func(c *fiber.Ctx) error { return NotFound(c, "") },
			wantStatus: fiber.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "forbidden",
			handler:    func(c *fiber.Ctx) error { return Forbidden(c, "") },
			wantStatus: fiber.StatusForbidden,
			wantCode:   "FORBIDDEN",
		},
		{
			name:       "upstream",
			handler:    func(c *fiber.Ctx) error { return UpstreamError(c, "generation failed", nil) },
			wantStatus: fiber.StatusBadGateway,
			wantCode:   "UPSTREAM_ERROR",
		},
		{
			name:       "too many requests",
			handler:    func(c *fiber.Ctx) error { return TooManyRequests(c, "") },
			wantStatus: fiber.StatusTooManyRequests,
			wantCode:   "TOO_MANY_REQUESTS",
		},
		{
			name:       "internal",
			handler:    func(c *fiber.Ctx) error { return InternalServerError(c, "") },
			wantStatus: fiber.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := perform(t, tc.handler)

			if status != tc.wantStatus {
				t.Errorf("status = %d, want %d", status, tc.wantStatus)
			}
			if body.Success {
				t.Error("success should be false")
			}
			if body.Error == nil {
				t.Fatal("error detail missing")
			}
			if body.Error.Code != tc.wantCode {
				t.Errorf("code = %q, want %q", body.Error.Code, tc.wantCode)
			}
		})
	}
}

func TestValidationErrorCarriesDetails(t *testing.T) {
	status, body := perform(t, func(c *fiber.Ctx) error {
		return ValidationError(c, fiber.NewError(fiber.StatusBadRequest, "invalid year \"abc\": must be numeric"))
	})

	if status != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
	if body.Error == nil || body.Error.Code != "VALIDATION_ERROR" {
		t.Fatalf("error = %+v, want VALIDATION_ERROR", body.Error)
	}
	if body.Error.Details == "" {
		t.Error("details should carry the underlying error text")
	}
}
