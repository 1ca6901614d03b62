package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name   string
		userID interface{}
		role   string
		want   int
	}{
		{"admin allowed", "u1", "Admin", fiber.StatusOK},
		{"student forbidden", "u2", "student", fiber.StatusForbidden},
		{"anonymous rejected", nil, "", fiber.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(func(c *fiber.Ctx) error {
				if tc.userID != nil {
					c.Locals(LocalUserID, tc.userID)
					c.Locals(LocalUserRole, tc.role)
				}
				return c.Next()
			})
			app.Use(RequireRole("admin"))
			app.Get("/admin", func(c *fiber.Ctx) error {
				return c.SendStatus(fiber.StatusOK)
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin", nil))
			require.NoError(t, err)
			require.Equal(t, tc.want, resp.StatusCode)
		})
	}
}
