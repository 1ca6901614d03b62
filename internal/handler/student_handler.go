package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/assignment-tracker/internal/dto"
	"github.com/noah-isme/assignment-tracker/internal/service"
	"github.com/noah-isme/assignment-tracker/internal/utils"
)

// StudentHandler serves the student's own dashboard and submissions.
type StudentHandler struct {
	dashboard   service.DashboardService
	assignments service.AssignmentService
	submissions service.SubmissionService
	logger      zerolog.Logger
}

// NewStudentHandler constructs a StudentHandler.
func NewStudentHandler(dashboard service.DashboardService, assignments service.AssignmentService, submissions service.SubmissionService, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		dashboard:   dashboard,
		assignments: assignments,
		submissions: submissions,
		logger:      logger.With().Str("component", "student_handler").Logger(),
	}
}

// Register binds the student routes.
func (h *StudentHandler) Register(router fiber.Router) {
	router.Get("/dashboard", h.getDashboard)
	router.Get("/assignments", h.listAssignments)
	router.Post("/assignments/:id/submit", h.submit)
}

func (h *StudentHandler) getDashboard(c *fiber.Ctx) error {
	studentID := userIDFromContext(c)
	if studentID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	dashboard, err := h.dashboard.StudentDashboard(requestContext(c), studentID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "student dashboard", dashboard)
}

func (h *StudentHandler) listAssignments(c *fiber.Ctx) error {
	studentID := userIDFromContext(c)
	if studentID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	assignments, err := h.assignments.ListForStudent(requestContext(c), studentID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "assignments retrieved", assignments)
}

func (h *StudentHandler) submit(c *fiber.Ctx) error {
	studentID := userIDFromContext(c)
	if studentID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	var payload dto.SubmitRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&payload); err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
		}
	}

	submission, err := h.submissions.Submit(requestContext(c), c.Params("id"), studentID, payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "assignment submitted", submission)
}
