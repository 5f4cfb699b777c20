package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"staffdir/internal/auth"
	"staffdir/internal/config"
	"staffdir/internal/platform/employee"
)

// AuthMiddleware resolves the bearer token to a live employee record and
// stores it in the request locals. Missing, invalid and expired tokens,
// and tokens referencing a deleted account, all answer 401.
func AuthMiddleware(c *fiber.Ctx) error {
	cfg := c.Locals("config").(*config.Config)
	db := c.Locals("db").(*gorm.DB)

	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "Unauthorized"})
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "Unauthorized"})
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := auth.VerifyToken(cfg.JWTSecret, token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "Unauthorized"})
	}

	employeeService := employee.NewService(db)

	emp, err := employeeService.GetByEmail(claims.Subject)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "Unauthorized"})
	}

	c.Locals("employee", *emp)

	return c.Next()
}
