package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedApp(t *testing.T) *fiber.App {
	t.Helper()
	SetJWTConfig("test-secret", 15*time.Minute)

	app := fiber.New()
	app.Get("/protected", JWTMiddleware(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"agentId": c.Locals("agent_id"),
			"email":   c.Locals("agent_email"),
		})
	})
	return app
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	app := newProtectedApp(t)

	token, err := GenerateJWT(42, "agent@slt.lk")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.EqualValues(t, 42, body["agentId"])
	assert.Equal(t, "agent@slt.lk", body["email"])
}

func TestJWTMiddleware_MissingHeader(t *testing.T) {
	app := newProtectedApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.NoError(t, err)

	assert.Equal(t, 401, resp.StatusCode)
}

func TestJWTMiddleware_WrongScheme(t *testing.T) {
	app := newProtectedApp(t)

	token, err := GenerateJWT(1, "agent@slt.lk")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, 401, resp.StatusCode)
}

func TestJWTMiddleware_TamperedToken(t *testing.T) {
	app := newProtectedApp(t)

	token, err := GenerateJWT(1, "agent@slt.lk")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token+"x")

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, 401, resp.StatusCode)
}

func TestJWTMiddleware_ExpiredToken(t *testing.T) {
	SetJWTConfig("test-secret", time.Nanosecond)
	token, err := GenerateJWT(1, "agent@slt.lk")
	require.NoError(t, err)

	app := newProtectedApp(t) // resets TTL to 15m for verification
	time.Sleep(10 * time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, 401, resp.StatusCode)
}
