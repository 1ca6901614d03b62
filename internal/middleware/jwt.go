package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/assignment-tracker/internal/utils"
)

// Locals keys populated from validated tokens.
const (
	LocalUserID    = "user_id"
	LocalUserRole  = "user_role"
	LocalUserEmail = "user_email"
)

// JWTProtected returns a middleware that validates JWT bearer tokens. Browsers cannot set
// headers on EventSource or WebSocket requests, so the token may also arrive in the
// access_token query parameter.
func JWTProtected(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractToken(c)
		if err != nil {
			return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token claims")
		}

		subject, err := claims.GetSubject()
		if err != nil || strings.TrimSpace(subject) == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "token subject missing")
		}

		c.Locals(LocalUserID, subject)
		if role := extractUserRoleFromClaims(claims); role != "" {
			c.Locals(LocalUserRole, role)
		}
		if email, ok := claims["email"].(string); ok {
			c.Locals(LocalUserEmail, email)
		}

		return c.Next()
	}
}

func extractToken(c *fiber.Ctx) (string, error) {
	authorization := c.Get("Authorization")
	if authorization == "" {
		if token := strings.TrimSpace(c.Query("access_token")); token != "" {
			return token, nil
		}
		return "", fmt.Errorf("authorization header missing")
	}

	const bearer = "Bearer "
	if len(authorization) < len(bearer) || !strings.EqualFold(authorization[:len(bearer)], bearer) {
		return "", fmt.Errorf("invalid authorization header")
	}

	token := strings.TrimSpace(authorization[len(bearer):])
	if token == "" {
		return "", fmt.Errorf("invalid token")
	}
	return token, nil
}

func extractUserRoleFromClaims(claims jwt.MapClaims) string {
	candidates := []string{"role", "roles"}
	for _, key := range candidates {
		if value, ok := claims[key]; ok {
			if role := normalizeRole(value); role != "" {
				return role
			}
		}
	}
	return ""
}

func normalizeRole(value interface{}) string {
	switch v := value.(type) {
	case string:
		return strings.ToLower(strings.TrimSpace(v))
	case []interface{}:
		for _, item := range v {
			if str, ok := item.(string); ok {
				role := strings.ToLower(strings.TrimSpace(str))
				if role != "" {
					return role
				}
			}
		}
	}
	return ""
}
