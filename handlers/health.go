package handlers

import (
	"acadmin/database"
	"acadmin/utils/cache"
	"acadmin/utils/response"

	"github.com/gofiber/fiber/v2"
)

// HandleCheckHealth reports readiness of the store and, when configured, the
// cache.
func HandleCheckHealth(store database.Storage, redisCache *cache.RedisCache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := fiber.Map{
			"database": "ok",
		}

		if err := store.HealthCheck(); err != nil {
			status["database"] = "unreachable"
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"success": false,
				"message": "Database is unreachable",
				"data":    status,
			})
		}

		if redisCache != nil {
			status["cache"] = "ok"
			if err := redisCache.HealthCheck(c.Context()); err != nil {
				// Degraded but serving: the throttle falls open without Redis.
				status["cache"] = "unreachable"
			}
		}

		return response.Success(c, status)
	}
}
