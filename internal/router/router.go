package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/assignment-tracker/internal/config"
	"github.com/noah-isme/assignment-tracker/internal/handler"
	"github.com/noah-isme/assignment-tracker/internal/middleware"
	"github.com/noah-isme/assignment-tracker/internal/models"
	"github.com/noah-isme/assignment-tracker/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler            *handler.AuthHandler
	AdminStudentHandler    *handler.AdminStudentHandler
	AdminAssignmentHandler *handler.AdminAssignmentHandler
	AdminReviewHandler     *handler.AdminReviewHandler
	AdminDashboardHandler  *handler.AdminDashboardHandler
	AdminDataHandler       *handler.AdminDataHandler
	StudentHandler         *handler.StudentHandler
	NotificationHandler    *handler.NotificationHandler
	JWTMiddleware          fiber.Handler
	LoginLimiter           fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = middleware.JWTProtected(cfg.JWTSecret)
	}
	loginLimiter := deps.LoginLimiter
	if loginLimiter == nil {
		loginLimiter = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api.Group("/auth"), loginLimiter, jwtMiddleware)
	}

	admin := api.Group("/admin", jwtMiddleware, middleware.RequireRole(models.RoleAdmin))
	if deps.AdminStudentHandler != nil {
		deps.AdminStudentHandler.Register(admin.Group("/students"))
	}
	if deps.AdminAssignmentHandler != nil {
		deps.AdminAssignmentHandler.Register(admin.Group("/assignments"))
	}
	if deps.AdminReviewHandler != nil {
		deps.AdminReviewHandler.Register(admin.Group("/submissions"))
	}
	if deps.AdminDashboardHandler != nil {
		deps.AdminDashboardHandler.Register(admin.Group("/dashboard"))
	}
	if deps.AdminDataHandler != nil {
		deps.AdminDataHandler.Register(admin.Group("/data"))
	}

	student := api.Group("/student", jwtMiddleware, middleware.RequireRole(models.RoleStudent))
	if deps.StudentHandler != nil {
		deps.StudentHandler.Register(student)
	}
	if deps.NotificationHandler != nil {
		deps.NotificationHandler.Register(student.Group("/notifications"))
	}
}
