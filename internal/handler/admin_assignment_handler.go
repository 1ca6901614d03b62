package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/assignment-tracker/internal/dto"
	"github.com/noah-isme/assignment-tracker/internal/service"
	"github.com/noah-isme/assignment-tracker/internal/utils"
)

// AdminAssignmentHandler exposes assignment management for administrators.
type AdminAssignmentHandler struct {
	service service.AssignmentService
	logger  zerolog.Logger
}

// NewAdminAssignmentHandler constructs an AdminAssignmentHandler.
func NewAdminAssignmentHandler(service service.AssignmentService, logger zerolog.Logger) *AdminAssignmentHandler {
	return &AdminAssignmentHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_assignment_handler").Logger(),
	}
}

// Register binds assignment routes to the router group.
func (h *AdminAssignmentHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
	router.Get("/:id/stats", h.stats)
	router.Get("/:id/submissions", h.submissions)
}

func (h *AdminAssignmentHandler) list(c *fiber.Ctx) error {
	var query dto.AssignmentListQuery
	if err := c.QueryParser(&query); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}

	assignments, err := h.service.List(requestContext(c), query)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "assignments retrieved", assignments)
}

func (h *AdminAssignmentHandler) create(c *fiber.Ctx) error {
	var payload dto.AssignmentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	assignment, err := h.service.Create(requestContext(c), payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "assignment created", assignment)
}

func (h *AdminAssignmentHandler) get(c *fiber.Ctx) error {
	assignment, err := h.service.Get(requestContext(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "assignment retrieved", assignment)
}

func (h *AdminAssignmentHandler) update(c *fiber.Ctx) error {
	var payload dto.AssignmentUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	assignment, err := h.service.Update(requestContext(c), c.Params("id"), payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "assignment updated", assignment)
}

func (h *AdminAssignmentHandler) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(requestContext(c), c.Params("id")); err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "assignment deleted", nil)
}

func (h *AdminAssignmentHandler) stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(requestContext(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "assignment stats", stats)
}

func (h *AdminAssignmentHandler) submissions(c *fiber.Ctx) error {
	submissions, err := h.service.Submissions(requestContext(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "submissions retrieved", submissions)
}
