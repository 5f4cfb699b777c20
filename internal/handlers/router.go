package handlers

import (
	"github.com/gofiber/fiber/v2"

	"staffdir/internal/middleware"
)

// RegisterRoutes mounts the API surface on the given app. Locals for
// config, db, mailer and storage must already be injected.
func RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/token", SigninWithPassword)
	auth.Post("/register", Register)
	auth.Post("/forgot-password", ForgotPassword)
	auth.Post("/change-password", middleware.AuthMiddleware, ChangePassword)

	emp := api.Group("/employee", middleware.AuthMiddleware)
	emp.Get("/me", GetCurrentEmployee)
	emp.Put("/me", UpdateCurrentEmployee)
	emp.Post("/me/avatar", UploadAvatar)
	emp.Put("/:employee_id", UpdateEmployee)

	api.Get("/employees", middleware.AuthMiddleware, ListEmployees)

	admin := api.Group("/admin", middleware.AuthMiddleware, middleware.AdminMiddleware)
	admin.Post("/employees", CreateEmployee)
	admin.Get("/employees/:employee_id", GetEmployee)
	admin.Delete("/employees/:employee_id", DeleteEmployee)
	admin.Post("/employees/:employee_id/reset-password", ResetEmployeePassword)
}
