package handler

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/assignment-tracker/internal/middleware"
	"github.com/noah-isme/assignment-tracker/internal/service"
	"github.com/noah-isme/assignment-tracker/internal/utils"
)

func userIDFromContext(c *fiber.Ctx) string {
	if id, ok := c.Locals(middleware.LocalUserID).(string); ok {
		return strings.TrimSpace(id)
	}
	return ""
}

// requestContext carries the correlation id into service calls.
func requestContext(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()
	if ctx == nil {
		ctx = context.Background()
	}
	return middleware.ContextWithCorrelation(ctx, middleware.GetCorrelationID(c))
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

// respondError translates service errors into HTTP responses.
func respondError(c *fiber.Ctx, logger zerolog.Logger, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrors):
		return utils.SendValidationError(c, validationErrors)
	case errors.Is(err, service.ErrStudentNotFound),
		errors.Is(err, service.ErrAssignmentNotFound),
		errors.Is(err, service.ErrSubmissionNotFound),
		errors.Is(err, service.ErrNotificationNotFound),
		errors.Is(err, service.ErrNoSession):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSubmissionNotSubmitted):
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidAttachment),
		errors.Is(err, service.ErrInvalidDueDate),
		errors.Is(err, service.ErrUnknownStudent),
		errors.Is(err, service.ErrInvalidImport):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(logger, c).Error().Err(err).Str("path", c.Path()).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
