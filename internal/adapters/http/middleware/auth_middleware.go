package middleware

import (
	"strings"

	"tradelink-backend/internal/config"
	"tradelink-backend/internal/pkg/jwt"
	"tradelink-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SessionCookieName is the admin session cookie.
const SessionCookieName = "admin_session"

// AdminAuth gates every review operation behind a valid admin session.
// Missing, malformed and expired tokens all produce the same opaque
// unauthorized response: an unauthenticated caller learns nothing about
// which admin operation was attempted or whether a resource exists.
func AdminAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var token string

		// 1. Try to get token from cookie first
		token = c.Cookies(SessionCookieName)

		// 2. If not in cookie, try Authorization header
		if token == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				token = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if token == "" {
			return response.Unauthorized(c, "Unauthorized")
		}

		claims, err := jwt.ValidateSessionToken(token, cfg.Session.Secret)
		if err != nil {
			return response.Unauthorized(c, "Unauthorized")
		}

		c.Locals("isAdmin", claims.IsAdmin)
		c.Locals("sessionIssuedAt", claims.IssuedAt.Time)

		return c.Next()
	}
}
