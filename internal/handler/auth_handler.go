package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/assignment-tracker/internal/dto"
	"github.com/noah-isme/assignment-tracker/internal/middleware"
	"github.com/noah-isme/assignment-tracker/internal/service"
	"github.com/noah-isme/assignment-tracker/internal/utils"
)

// AuthHandler exposes the mock session endpoints.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register binds the routes. Login is public and rate limited; the others need a token.
func (h *AuthHandler) Register(router fiber.Router, loginLimiter, jwt fiber.Handler) {
	router.Post("/login", loginLimiter, h.login)
	router.Post("/logout", jwt, middleware.WithAuth(h.logout, middleware.AuthOptions{Role: middleware.AuthRoleAny}))
	router.Get("/me", jwt, middleware.WithAuth(h.me, middleware.AuthOptions{Role: middleware.AuthRoleAny}))
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	resp, err := h.service.Login(requestContext(c), payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "logged in", resp)
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	if err := h.service.Logout(requestContext(c)); err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "logged out", nil)
}

func (h *AuthHandler) me(c *fiber.Ctx) error {
	session, err := h.service.Me(requestContext(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "current session", session)
}
