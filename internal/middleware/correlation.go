package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderCorrelationID carries the request identifier in both directions.
const HeaderCorrelationID = "X-Correlation-ID"

// LocalCorrelationID is the fiber locals key holding the request identifier.
const LocalCorrelationID = "correlation_id"

type correlationKey struct{}

// CorrelationID tags every request with an identifier taken from X-Correlation-ID or
// X-Request-ID, or generated when neither is sent. It is echoed back and stored in the user
// context so services can log it.
func CorrelationID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := firstNonEmpty(c.Get(HeaderCorrelationID), c.Get(fiber.HeaderXRequestID))
		if id == "" {
			id = uuid.NewString()
		}

		c.Locals(LocalCorrelationID, id)
		c.Set(HeaderCorrelationID, id)
		c.SetUserContext(ContextWithCorrelation(c.UserContext(), id))

		return c.Next()
	}
}

// CorrelationIDFromContext extracts the identifier stored by ContextWithCorrelation.
func CorrelationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

// GetCorrelationID returns the identifier bound to the active request.
func GetCorrelationID(c *fiber.Ctx) string {
	if c == nil {
		return ""
	}
	if id, ok := c.Locals(LocalCorrelationID).(string); ok && id != "" {
		return id
	}
	return CorrelationIDFromContext(c.UserContext())
}

// ContextWithCorrelation attaches the identifier to ctx. Blank identifiers leave ctx as is.
func ContextWithCorrelation(ctx context.Context, correlationID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	correlationID = strings.TrimSpace(correlationID)
	if correlationID == "" {
		return ctx
	}
	return context.WithValue(ctx, correlationKey{}, correlationID)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
