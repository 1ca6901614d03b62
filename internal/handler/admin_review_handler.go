package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/assignment-tracker/internal/dto"
	"github.com/noah-isme/assignment-tracker/internal/service"
	"github.com/noah-isme/assignment-tracker/internal/utils"
)

// AdminReviewHandler serves the review queue and records feedback.
type AdminReviewHandler struct {
	service   service.SubmissionService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAdminReviewHandler constructs an AdminReviewHandler.
func NewAdminReviewHandler(service service.SubmissionService, validate *validator.Validate, logger zerolog.Logger) *AdminReviewHandler {
	return &AdminReviewHandler{
		service:   service,
		validator: validate,
		logger:    logger.With().Str("component", "admin_review_handler").Logger(),
	}
}

// Register binds the review routes.
func (h *AdminReviewHandler) Register(router fiber.Router) {
	router.Get("", h.queue)
	router.Get("/stats", h.stats)
	router.Post("/:id/feedback", h.feedback)
}

func (h *AdminReviewHandler) queue(c *fiber.Ctx) error {
	var filter dto.SubmissionFilter
	if err := c.QueryParser(&filter); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}

	submissions, err := h.service.ReviewQueue(requestContext(c), filter)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "review queue", submissions)
}

func (h *AdminReviewHandler) stats(c *fiber.Ctx) error {
	stats, err := h.service.ReviewStats(requestContext(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "review stats", stats)
}

// feedback rejects an empty message here; the service accepts any text.
func (h *AdminReviewHandler) feedback(c *fiber.Ctx) error {
	var payload dto.FeedbackRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.validator.Struct(payload); err != nil {
		return respondError(c, h.logger, err)
	}

	result, err := h.service.GiveFeedback(requestContext(c), c.Params("id"), *payload.Approved, payload.Message)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	requestLogger(h.logger, c).Info().
		Str("submission_id", result.Submission.ID).
		Bool("approved", *payload.Approved).
		Msg("feedback submitted")

	return utils.SendSuccess(c, "feedback recorded", result)
}
