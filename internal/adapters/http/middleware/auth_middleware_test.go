package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"tradelink-backend/internal/config"
	"tradelink-backend/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuardedApp(t *testing.T) (*fiber.App, *config.Config) {
	t.Helper()
	cfg := &config.Config{
		Session: config.SessionConfig{Secret: "test-session-secret", ExpiryDays: 7},
	}

	app := fiber.New()
	app.Get("/admin/ping", AdminAuth(cfg), func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})
	return app, cfg
}

func TestAdminAuthRejectsMissingToken(t *testing.T) {
	app, _ := newGuardedApp(t)

	req := httptest.NewRequest("GET", "/admin/ping", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminAuthRejectsBadToken(t *testing.T) {
	app, _ := newGuardedApp(t)

	req := httptest.NewRequest("GET", "/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "not.a.token"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminAuthRejectsWrongSecret(t *testing.T) {
	app, _ := newGuardedApp(t)

	token, err := jwt.GenerateSessionToken("some-other-secret", 7)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminAuthAcceptsSessionCookie(t *testing.T) {
	app, cfg := newGuardedApp(t)

	token, err := jwt.GenerateSessionToken(cfg.Session.Secret, cfg.Session.ExpiryDays)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAdminAuthAcceptsBearerHeader(t *testing.T) {
	app, cfg := newGuardedApp(t)

	token, err := jwt.GenerateSessionToken(cfg.Session.Secret, cfg.Session.ExpiryDays)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
