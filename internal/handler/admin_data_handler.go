package handler

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/assignment-tracker/internal/service"
	"github.com/noah-isme/assignment-tracker/internal/utils"
)

// AdminDataHandler exposes the backup endpoints for assignment data.
type AdminDataHandler struct {
	service service.DataService
	logger  zerolog.Logger
}

// NewAdminDataHandler constructs an AdminDataHandler.
func NewAdminDataHandler(service service.DataService, logger zerolog.Logger) *AdminDataHandler {
	return &AdminDataHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_data_handler").Logger(),
	}
}

// Register binds the data routes.
func (h *AdminDataHandler) Register(router fiber.Router) {
	router.Get("/export", h.export)
	router.Post("/import", h.importData)
	router.Delete("", h.clear)
}

// export returns the raw backup document as a download.
func (h *AdminDataHandler) export(c *fiber.Ctx) error {
	export, err := h.service.Export(requestContext(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	filename := fmt.Sprintf("assignment-data-%s.json", export.ExportedAt.Format(time.DateOnly))
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.JSON(export)
}

func (h *AdminDataHandler) importData(c *fiber.Ctx) error {
	result, err := h.service.Import(requestContext(c), c.Body())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "data imported", result)
}

func (h *AdminDataHandler) clear(c *fiber.Ctx) error {
	if err := h.service.Clear(requestContext(c)); err != nil {
		return respondError(c, h.logger, err)
	}
	requestLogger(h.logger, c).Warn().Msg("assignment data cleared")
	return utils.SendSuccess(c, "data cleared", nil)
}
