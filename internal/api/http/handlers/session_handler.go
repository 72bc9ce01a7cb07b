package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/stacktrack/stacktrack/internal/api/dto"
	"github.com/stacktrack/stacktrack/internal/config"
	"github.com/stacktrack/stacktrack/internal/service"
	"github.com/stacktrack/stacktrack/internal/session"
)

// SessionHandler exposes the session relay to the UI.
type SessionHandler struct {
	service *service.SessionService
	cfg     config.SessionConfig
}

// NewSessionHandler constructs handler.
func NewSessionHandler(sessionService *service.SessionService, cfg config.SessionConfig) *SessionHandler {
	return &SessionHandler{service: sessionService, cfg: cfg}
}

// Me GET /api/session/me. Returns the current user or null; an absent or
// rejected session is not an error here.
func (h *SessionHandler) Me(c *fiber.Ctx) error {
	token, _ := session.TokenFromContext(c)
	user, err := h.service.CurrentUser(c.UserContext(), token)
	if err != nil {
		return err
	}
	if user == nil {
		session.ClearCookie(c, h.cfg)
		return c.JSON(fiber.Map{"data": nil})
	}
	return c.JSON(fiber.Map{"data": dto.UserResponse{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		Avatar: user.Avatar,
	}})
}

// Logout POST /api/session/logout. Clears the cookie regardless of
// upstream outcome.
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	token, _ := session.TokenFromContext(c)
	h.service.Logout(c.UserContext(), token)
	session.ClearCookie(c, h.cfg)
	return c.JSON(fiber.Map{"data": fiber.Map{"logged_out": true}})
}
