package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"staffdir/internal/config"
	"staffdir/internal/database"
	"staffdir/internal/mail"
	"staffdir/internal/platform/employee"
)

// CreateEmployee provisions an account with a generated temporary
// password and mails it. Mail delivery is fire-and-forget; a failed
// welcome mail never rolls back the creation.
func CreateEmployee(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)
	notifier := c.Locals("mailer").(mail.Notifier)

	employeeService := employee.NewService(db)

	type EmployeeInput struct {
		EmployeeID string  `json:"employee_id" validate:"required"`
		Name       string  `json:"name" validate:"required"`
		Email      string  `json:"email" validate:"required,email"`
		Role       string  `json:"role" validate:"omitempty,oneof=admin employee"`
		Department *string `json:"department"`
	}

	var input EmployeeInput
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
		Role:       input.Role,
		Department: input.Department,
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

	return c.JSON(emp)
}

func GetEmployee(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)

	employeeService := employee.NewService(db)

	emp, err := employeeService.GetByEmployeeID(c.Params("employee_id"))
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Employee not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Internal server error"})
	}

	return c.JSON(emp)
}

// DeleteEmployee removes a record. An admin cannot delete the account
// they are signed in with, whatever its role.
func DeleteEmployee(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)
	current := c.Locals("employee").(database.Employee)

	employeeService := employee.NewService(db)

	target, err := employeeService.GetByEmployeeID(c.Params("employee_id"))
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Employee not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Internal server error"})
	}

	if target.ID == current.ID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Cannot delete own account"})
	}

	if err := employeeService.Delete(target); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Internal server error"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func ResetEmployeePassword(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)
	notifier := c.Locals("mailer").(mail.Notifier)

	employeeService := employee.NewService(db)

	target, err := employeeService.GetByEmployeeID(c.Params("employee_id"))
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Employee not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Internal server error"})
	}

	temp, err := employeeService.IssueTempCredential(target)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Internal server error"})
	}

	if err := notifier.NotifyPasswordReset(target.Email, temp); err != nil {
		log.Error().Err(err).Str("email", target.Email).Msg("failed to send password reset mail")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
