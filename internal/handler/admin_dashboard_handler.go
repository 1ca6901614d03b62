package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/assignment-tracker/internal/service"
	"github.com/noah-isme/assignment-tracker/internal/utils"
)

// AdminDashboardHandler serves the admin overview.
type AdminDashboardHandler struct {
	service service.DashboardService
	logger  zerolog.Logger
}

// NewAdminDashboardHandler constructs an AdminDashboardHandler.
func NewAdminDashboardHandler(service service.DashboardService, logger zerolog.Logger) *AdminDashboardHandler {
	return &AdminDashboardHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_dashboard_handler").Logger(),
	}
}

// Register binds the dashboard route.
func (h *AdminDashboardHandler) Register(router fiber.Router) {
	router.Get("", h.overview)
}

func (h *AdminDashboardHandler) overview(c *fiber.Ctx) error {
	overview, err := h.service.AdminOverview(requestContext(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "dashboard overview", overview)
}
