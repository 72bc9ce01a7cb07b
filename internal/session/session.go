package session

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/stacktrack/stacktrack/internal/config"
)

const tokenKey = "session_token"

// Middleware extracts the opaque session token from the HTTP-only cookie
// and stores it in request locals. Requests without a usable token pass
// through with no token set; handlers decide whether that is an error.
type Middleware struct {
	cfg config.SessionConfig
}

// NewMiddleware constructs the session middleware.
func NewMiddleware(cfg config.SessionConfig) *Middleware {
	return &Middleware{cfg: cfg}
}

// Handle reads the session cookie into locals. Tokens that are JWTs with
// a passed expiry are treated as absent and the cookie is cleared.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	token := c.Cookies(m.cfg.CookieName)
	if token != "" {
		if Expired(token, time.Now()) {
			ClearCookie(c, m.cfg)
		} else {
			c.Locals(tokenKey, token)
		}
	}
	return c.Next()
}

// TokenFromContext returns the session token placed by Handle.
func TokenFromContext(c *fiber.Ctx) (string, bool) {
	token, ok := c.Locals(tokenKey).(string)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// SetCookie writes the session cookie.
func SetCookie(c *fiber.Ctx, cfg config.SessionConfig, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     cfg.CookieName,
		Value:    token,
		Domain:   cfg.CookieDomain,
		Path:     "/",
		Expires:  expires,
		Secure:   cfg.CookieSecure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie.
func ClearCookie(c *fiber.Ctx, cfg config.SessionConfig) {
	c.Cookie(&fiber.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Domain:   cfg.CookieDomain,
		Path:     "/",
		Expires:  time.Unix(0, 0),
		Secure:   cfg.CookieSecure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
