package router

import (
	"log"
	"os"
	"time"

	"acadmin/config"
	"acadmin/database"
	"acadmin/handlers"
	career_handlers "acadmin/handlers/career"
	commission_handlers "acadmin/handlers/commission"
	course_handlers "acadmin/handlers/course"
	faculty_handlers "acadmin/handlers/faculty"
	rubric_handlers "acadmin/handlers/rubric"
	university_handlers "acadmin/handlers/university"
	user_handlers "acadmin/handlers/user"
	"acadmin/services/rubricgen"
	"acadmin/services/storage"
	"acadmin/utils/auth"
	"acadmin/utils/cache"
	"acadmin/utils/middleware"

	"github.com/gofiber/fiber/v2"
)

// Dependencies carries the shared collaborators handlers need. Everything is
// constructed on startup and injected; nothing is global.
type Dependencies struct {
	Store     database.Storage
	Env       *config.EnviornmentVariable
	Cache     *cache.RedisCache
	Storage   *storage.Client
	Generator *rubricgen.Client
}

// SetupRoutes wires middleware, handlers and routes onto the app.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	if deps.Env.JWT_SECRET == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := deps.Env.JWT_ISSUER
	if jwtIssuer == "" {
		jwtIssuer = "acadmin-identity"
	}

	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret: deps.Env.JWT_SECRET,
		Issuer: jwtIssuer,
		Leeway: 30 * time.Second,
	})

	db := deps.Store.DB()

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)

	// Redis-backed throttle on admin mutations. Optional: without Redis the
	// routes run unthrottled.
	admin := func(handler fiber.Handler) []fiber.Handler {
		return []fiber.Handler{authMiddleware.RequireAdmin(), handler}
	}
	if deps.Cache != nil {
		throttle := middleware.NewWriteThrottle(deps.Cache, 60, time.Minute)
		admin = func(handler fiber.Handler) []fiber.Handler {
			return []fiber.Handler{authMiddleware.RequireAdmin(), throttle.Limit(), handler}
		}
	}

	universityHandler := university_handlers.NewUniversityHandler(db)
	facultyHandler := faculty_handlers.NewFacultyHandler(db)
	careerHandler := career_handlers.NewCareerHandler(db)
	courseHandler := course_handlers.NewCourseHandler(db)
	commissionHandler := commission_handlers.NewCommissionHandler(db)
	rubricHandler := rubric_handlers.NewRubricHandler(db, deps.Generator, deps.Storage)
	userHandler := user_handlers.NewUserHandler(db)

	// Apply security middleware
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,
		RateLimitWindow:   1 * time.Minute,
	})

	// Health check endpoint (public)
	app.Get("/ping", handlers.HandleCheckHealth(deps.Store, deps.Cache))

	// API v1 group
	api := app.Group("/api/v1")

	// Universities
	universities := api.Group("/universities")
	universities.Get("/", universityHandler.ListUniversities)
	universities.Get("/:id", universityHandler.GetUniversity)
	universities.Post("/", admin(universityHandler.CreateUniversity)...)
	universities.Put("/:id/restore", admin(universityHandler.RestoreUniversity)...)
	universities.Put("/:id", admin(universityHandler.UpdateUniversity)...)
	universities.Delete("/:id", admin(universityHandler.DeleteUniversity)...)

	// Faculties
	faculties := api.Group("/faculties")
	faculties.Get("/", facultyHandler.ListFaculties)
	faculties.Get("/:id", facultyHandler.GetFaculty)
	faculties.Post("/", admin(facultyHandler.CreateFaculty)...)
	faculties.Put("/:id/restore", admin(facultyHandler.RestoreFaculty)...)
	faculties.Put("/:id", admin(facultyHandler.UpdateFaculty)...)
	faculties.Delete("/:id", admin(facultyHandler.DeleteFaculty)...)

	// Careers
	careers := api.Group("/careers")
	careers.Get("/", careerHandler.ListCareers)
	careers.Get("/:id", careerHandler.GetCareer)
	careers.Post("/", admin(careerHandler.CreateCareer)...)
	careers.Put("/:id/restore", admin(careerHandler.RestoreCareer)...)
	careers.Put("/:id", admin(careerHandler.UpdateCareer)...)
	careers.Delete("/:id", admin(careerHandler.DeleteCareer)...)

	// Courses
	courses := api.Group("/courses")
	courses.Get("/", courseHandler.ListCourses)
	courses.Get("/:id", courseHandler.GetCourse)
	courses.Post("/", admin(courseHandler.CreateCourse)...)
	courses.Put("/:id/restore", admin(courseHandler.RestoreCourse)...)
	courses.Put("/:id", admin(courseHandler.UpdateCourse)...)
	courses.Delete("/:id", admin(courseHandler.DeleteCourse)...)

	// Commissions
	commissions := api.Group("/commissions")
	commissions.Get("/", commissionHandler.ListCommissions)
	commissions.Get("/:id", commissionHandler.GetCommission)
	commissions.Post("/", admin(commissionHandler.CreateCommission)...)
	commissions.Put("/:id/restore", admin(commissionHandler.RestoreCommission)...)
	commissions.Put("/:id", admin(commissionHandler.UpdateCommission)...)
	commissions.Delete("/:id", admin(commissionHandler.DeleteCommission)...)

	// Rubrics
	rubrics := api.Group("/rubrics")
	rubrics.Get("/", rubricHandler.ListRubrics)
	rubrics.Post("/generate", admin(rubricHandler.GenerateRubric)...)
	rubrics.Get("/:id", rubricHandler.GetRubric)
	rubrics.Post("/", admin(rubricHandler.CreateRubric)...)
	rubrics.Put("/:id/restore", admin(rubricHandler.RestoreRubric)...)
	rubrics.Put("/:id", admin(rubricHandler.UpdateRubric)...)
	rubrics.Delete("/:id", admin(rubricHandler.DeleteRubric)...)

	// Users (admin only, including reads)
	users := api.Group("/users", authMiddleware.RequireAdmin())
	users.Get("/", userHandler.ListUsers)
	users.Get("/:id", userHandler.GetUser)
	users.Post("/", userHandler.CreateUser)
	users.Put("/:id/restore", userHandler.RestoreUser)
	users.Put("/:id", userHandler.UpdateUser)
	users.Delete("/:id", userHandler.DeleteUser)
}
