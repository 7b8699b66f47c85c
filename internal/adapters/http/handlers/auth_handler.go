package handlers

import (
	"errors"
	"time"

	"tradelink-backend/internal/config"
	"tradelink-backend/internal/core/domain"
	"tradelink-backend/internal/core/services"
	"tradelink-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles admin authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// LoginRequest represents the admin login request body
type LoginRequest struct {
	Token string `json:"token"`
}

// Login handles admin login with a one-time code
// @Summary Admin login
// @Description Verify TOTP code and issue an admin session cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "One-time code"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	sessionToken, err := h.authService.Login(req.Token)
	if err != nil {
		// Wrong code and missing secret both collapse to the same
		// outcome here; the distinction lives in the logs only.
		return response.Unauthorized(c, "Unauthorized")
	}

	h.setSessionCookie(c, sessionToken)

	return response.Success(c, "Login successful", nil)
}

// Logout clears the session cookie. Idempotent.
// @Summary Admin logout
// @Description Clear the admin session cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.clearSessionCookie(c)
	return response.Success(c, "Logged out successfully", nil)
}

// Setup generates a new shared TOTP secret plus provisioning URI.
// Only reachable while no secret is configured; 403 afterwards.
// @Summary TOTP setup
// @Description Generate a new shared secret and provisioning URI
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/auth/setup [get]
func (h *AuthHandler) Setup(c *fiber.Ctx) error {
	result, err := h.authService.GenerateSetup()
	if err != nil {
		if errors.Is(err, domain.ErrSetupAlreadyComplete) {
			return response.Forbidden(c, "Setup is already complete")
		}
		return response.InternalServerError(c, "Failed to generate setup secret")
	}

	return response.Success(c, "Scan the provisioning URI, then set ADMIN_TOTP_SECRET and relaunch", result)
}

// setSessionCookie sets the admin session cookie
func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "admin_session",
		Value:    token,
		Path:     "/",
		MaxAge:   h.cfg.Session.ExpiryDays * 24 * 60 * 60,
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}

// clearSessionCookie clears the admin session cookie
func (h *AuthHandler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     "admin_session",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-1 * time.Hour),
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}
