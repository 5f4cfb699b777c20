package middleware

import (
	"github.com/gofiber/fiber/v2"

	"staffdir/internal/database"
)

func AdminMiddleware(c *fiber.Ctx) error {
	emp := c.Locals("employee").(database.Employee)

	if !emp.IsAdmin() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"detail": "Forbidden"})
	}

	return c.Next()
}
