package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"staffdir/internal/auth"
	"staffdir/internal/config"
	"staffdir/internal/database"
	"staffdir/internal/mail"
	"staffdir/internal/platform/employee"
	"staffdir/pkg/utils"
)

type AuthToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

const tokenType = "bearer"

// SigninWithPassword handles the form-encoded login. Unknown email and
// wrong password answer identically so accounts cannot be enumerated.
func SigninWithPassword(c *fiber.Ctx) error {
	cfg := c.Locals("config").(*config.Config)
	db := c.Locals("db").(*gorm.DB)

	employeeService := employee.NewService(db)

	username := c.FormValue("username")
	password := c.FormValue("password")
	if username == "" || password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid input"})
	}

	emp, err := employeeService.Authenticate(username, password)
	if err != nil {
		if errors.Is(err, employee.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "Invalid credentials"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Internal server error"})
	}

	token, err := auth.GenerateToken(cfg.JWTSecret, emp.Email, emp.Role, cfg.TokenTTL())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Internal server error"})
	}

	return c.JSON(AuthToken{AccessToken: token, TokenType: tokenType})
}

// Register is the self-service signup. The role is always employee here;
// admins are provisioned through the management endpoint.
func Register(c *fiber.Ctx) error {
	cfg := c.Locals("config").(*config.Config)
	db := c.Locals("db").(*gorm.DB)
	notifier := c.Locals("mailer").(mail.Notifier)

	employeeService := employee.NewService(db)

	type RegisterInput struct {
		EmployeeID string `json:"employee_id" validate:"required"`
		Name       string `json:"name" validate:"required"`
		Email      string `json:"email" validate:"required,email"`
	}

	var input RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid input"})
	}

	if err := config.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
	}

	emp := &database.Employee{
		EmployeeID: input.EmployeeID,
		Name:       input.Name,
		Email:      input.Email,
		Role:       database.RoleEmployee,
	}

	temp, err := employeeService.Create(emp)
	if err != nil {
		if errors.Is(err, employee.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"detail": "Employee already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Internal server error"})
	}

	if err := notifier.NotifyWelcome(emp.Email, emp.Name, temp); err != nil {
		log.Error().Err(err).Str("email", emp.Email).Msg("failed to send welcome mail")
	}

	token, err := auth.GenerateToken(cfg.JWTSecret, emp.Email, emp.Role, cfg.TokenTTL())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Internal server error"})
	}

	return c.JSON(AuthToken{AccessToken: token, TokenType: tokenType})
}

// ChangePassword sets a new permanent password for the signed-in
// employee and clears any outstanding temporary credential.
func ChangePassword(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)
	emp := c.Locals("employee").(database.Employee)

	employeeService := employee.NewService(db)

	type ChangePasswordInput struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required,min=6"`
	}

	var input ChangePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid input"})
	}

	if err := config.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
	}

	if !utils.VerifyPassword(input.CurrentPassword, emp.PasswordHash) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "Invalid credentials"})
	}

	if err := employeeService.UpdatePassword(&emp, input.NewPassword); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Internal server error"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ForgotPassword issues a temporary credential and mails it. The mail is
// best-effort; a delivery failure does not undo the reset.
func ForgotPassword(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)
	notifier := c.Locals("mailer").(mail.Notifier)

	employeeService := employee.NewService(db)

	type ForgotPasswordInput struct {
		Email string `json:"email" validate:"required,email"`
	}

	var input ForgotPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid input"})
	}

	if err := config.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
	}

	emp, err := employeeService.GetByEmail(input.Email)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Email not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Internal server error"})
	}

	temp, err := employeeService.IssueTempCredential(emp)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Internal server error"})
	}

	if err := notifier.NotifyPasswordReset(emp.Email, temp); err != nil {
		log.Error().Err(err).Str("email", emp.Email).Msg("failed to send password reset mail")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
