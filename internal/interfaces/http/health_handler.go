package http

import (
	"github.com/gofiber/fiber/v2"
)

// Health GET /health.
func Health(service string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": service})
	}
}
