package utils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// APIResponse describes the common structure for API responses.
type APIResponse struct {
	Success bool              `json:"success"`
	Data    interface{}       `json:"data,omitempty"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// SendSuccess sends a successful JSON response with a message.
func SendSuccess(c *fiber.Ctx, message string, data interface{}) error {
	if message == "" {
		message = "success"
	}

	return SendSuccessWithStatus(c, fiber.StatusOK, message, data)
}

// SendSuccessWithStatus sends a success payload using the provided HTTP status code.
func SendSuccessWithStatus(c *fiber.Ctx, status int, message string, data interface{}) error {
	if message == "" {
		message = "success"
	}
	if status == 0 {
		status = fiber.StatusOK
	}

	return c.Status(status).JSON(APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// SendError sends an error JSON response with the given status code.
func SendError(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "error"
	}

	return c.Status(status).JSON(APIResponse{
		Success: false,
		Message: message,
	})
}

// SendValidationError reports every failed field with a 400 status.
func SendValidationError(c *fiber.Ctx, errs validator.ValidationErrors) error {
	return c.Status(fiber.StatusBadRequest).JSON(APIResponse{
		Success: false,
		Message: "validation failed",
		Errors:  ValidationMessages(errs),
	})
}

// ValidationMessages maps field names to a readable description of the failed rule.
func ValidationMessages(errs validator.ValidationErrors) map[string]string {
	messages := make(map[string]string, len(errs))
	for _, fieldErr := range errs {
		field := fieldErr.Field()
		if namespace := fieldErr.Namespace(); strings.Contains(namespace, ".") {
			field = namespace[strings.Index(namespace, ".")+1:]
		}
		if _, exists := messages[field]; exists {
			continue
		}
		messages[field] = describeRule(fieldErr)
	}
	return messages
}

func describeRule(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "loose_email":
		return "must be a valid email address"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fieldErr.Param(), " ", ", "))
	case "gte":
		return fmt.Sprintf("must be at least %s", fieldErr.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fieldErr.Param())
	case "min":
		return fmt.Sprintf("must contain at least %s item(s)", fieldErr.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fieldErr.Param())
	case "datetime":
		return fmt.Sprintf("must match the format %s", fieldErr.Param())
	case "url":
		return "must be a valid url"
	default:
		return fmt.Sprintf("failed the %s rule", fieldErr.Tag())
	}
}
