package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/assignment-tracker/internal/dto"
	"github.com/noah-isme/assignment-tracker/internal/service"
	"github.com/noah-isme/assignment-tracker/internal/utils"
)

// AdminStudentHandler manages the student roster.
type AdminStudentHandler struct {
	service service.StudentService
	logger  zerolog.Logger
}

// NewAdminStudentHandler constructs an AdminStudentHandler.
func NewAdminStudentHandler(service service.StudentService, logger zerolog.Logger) *AdminStudentHandler {
	return &AdminStudentHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_student_handler").Logger(),
	}
}

// Register binds the roster routes.
func (h *AdminStudentHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Delete("/:id", h.delete)
	router.Get("/:id/stats", h.stats)
}

func (h *AdminStudentHandler) list(c *fiber.Ctx) error {
	students, err := h.service.List(requestContext(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "students retrieved", students)
}

func (h *AdminStudentHandler) create(c *fiber.Ctx) error {
	var payload dto.StudentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	student, err := h.service.Create(requestContext(c), payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "student created", student)
}

func (h *AdminStudentHandler) get(c *fiber.Ctx) error {
	student, err := h.service.Get(requestContext(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "student retrieved", student)
}

func (h *AdminStudentHandler) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(requestContext(c), c.Params("id")); err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "student deleted", nil)
}

func (h *AdminStudentHandler) stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(requestContext(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "student stats", stats)
}
