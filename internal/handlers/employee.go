package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"staffdir/internal/config"
	"staffdir/internal/database"
	"staffdir/internal/platform/employee"
	"staffdir/internal/platform/storage"
)

func GetCurrentEmployee(c *fiber.Ctx) error {
	emp := c.Locals("employee").(database.Employee)

	return c.JSON(emp)
}

func ListEmployees(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)

	employeeService := employee.NewService(db)

	limit := c.QueryInt("limit", 100)
	offset := c.QueryInt("offset", 0)

	emps, err := employeeService.ListAll(limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Internal server error"})
	}

	return c.JSON(emps)
}

func UpdateCurrentEmployee(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)
	emp := c.Locals("employee").(database.Employee)

	employeeService := employee.NewService(db)

	type UpdateSelfInput struct {
		Name       *string `json:"name"`
		Department *string `json:"department"`
	}

	var input UpdateSelfInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid input"})
	}

	applyEmployeeFields(&emp, input.Name, input.Department)

	if err := employeeService.Update(&emp); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Internal server error"})
	}

	return c.JSON(emp)
}

// UpdateEmployee is the self-or-admin partial update by business id. A
// provided password goes through the hashing path, which also clears the
// temporary credential; other fields leave it untouched.
func UpdateEmployee(c *fiber.Ctx) error {
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

	if !current.IsAdmin() && current.ID != target.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"detail": "Forbidden"})
	}

	type UpdateEmployeeInput struct {
		Name       *string `json:"name"`
		Department *string `json:"department"`
		Password   *string `json:"password" validate:"omitempty,min=6"`
	}

	var input UpdateEmployeeInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid input"})
	}

	if err := config.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
	}

	applyEmployeeFields(target, input.Name, input.Department)

	if err := employeeService.Update(target); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Internal server error"})
	}

	if input.Password != nil {
		if err := employeeService.UpdatePassword(target, *input.Password); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Internal server error"})
		}
	}

	return c.JSON(target)
}

// UploadAvatar stores a new profile image for the signed-in employee.
// The extension is checked before any storage call.
func UploadAvatar(c *fiber.Ctx) error {
	cfg := c.Locals("config").(*config.Config)
	db := c.Locals("db").(*gorm.DB)
	emp := c.Locals("employee").(database.Employee)
	storageService := c.Locals("storage").(storage.StorageService)

	employeeService := employee.NewService(db)

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Missing file"})
	}

	if !storageService.IsExtensionAllowed(file.Filename) {
		return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{"detail": "Unsupported file type"})
	}

	key := storageService.AvatarKey(emp.EmployeeID, file.Filename)
	if err := storageService.SaveAvatar(c, file, key); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Internal server error"})
	}

	iconURL := strings.TrimRight(cfg.AssetBaseURL, "/") + "/" + key
	emp.IconURL = &iconURL

	if err := employeeService.Update(&emp); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Internal server error"})
	}

	return c.JSON(emp)
}

func applyEmployeeFields(emp *database.Employee, name, department *string) {
	if name != nil && *name != "" {
		emp.Name = *name
	}

	if department != nil {
		if *department != "" {
			emp.Department = department
		} else {
			emp.Department = nil
		}
	}
}
