package controller_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatecrm/models"
)

func TestLoginSucceedsWithFixtureCredentials(t *testing.T) {
	app, _ := newTestApp(t)

	resp := request(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"email":    "admin@realestate.com",
		"password": "admin123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["access_token"])
	assert.NotEmpty(t, body["refresh_token"])

	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "super_admin", user["role"])
	assert.NotContains(t, user, "password_hash", "credentials must never be serialized")
}

func TestLoginEmailIsCaseInsensitive(t *testing.T) {
	app, _ := newTestApp(t)

	resp := request(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"email":    "ADMIN@RealEstate.COM",
		"password": "admin123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	app, _ := newTestApp(t)

	wrongPassword := request(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"email":    "admin@realestate.com",
		"password": "not-the-password",
	})
	require.Equal(t, http.StatusUnauthorized, wrongPassword.StatusCode)
	wrongPasswordBody := decodeBody(t, wrongPassword)

	unknownEmail := request(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"email":    "nobody@realestate.com",
		"password": "whatever1",
	})
	require.Equal(t, http.StatusUnauthorized, unknownEmail.StatusCode)
	unknownEmailBody := decodeBody(t, unknownEmail)

	// Same generic message either way, so the endpoint does not reveal
	// which emails exist
	assert.Equal(t, "Invalid email or password", wrongPasswordBody["error"])
	assert.Equal(t, wrongPasswordBody["error"], unknownEmailBody["error"])
}

func TestGetCurrentUserRequiresAuth(t *testing.T) {
	app, _ := newTestApp(t)

	unauthenticated := request(t, app, http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, unauthenticated.StatusCode)

	token := login(t, app, "agent1@realestate.com", "agent123")
	resp := request(t, app, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data, ok := dataOf(t, resp).(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "agent1@realestate.com", data["email"])
	assert.Equal(t, "sales_agent", data["role"])
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	app, _ := newTestApp(t)

	loginResp := request(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"email":    "supervisor@realestate.com",
		"password": "super123",
	})
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	body := decodeBody(t, loginResp)

	refresh, ok := body["refresh_token"].(string)
	require.True(t, ok)

	resp := request(t, app, http.MethodPost, "/auth/refresh", "", fiber.Map{
		"refresh_token": refresh,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	refreshed := decodeBody(t, resp)
	assert.NotEmpty(t, refreshed["access_token"])
	assert.NotEmpty(t, refreshed["refresh_token"])
}

func TestChangePasswordRotatesCredential(t *testing.T) {
	app, _ := newTestApp(t)
	token := login(t, app, "agent2@realestate.com", "agent123")

	// Wrong current password is rejected
	resp := request(t, app, http.MethodPost, "/auth/change-password", token, fiber.Map{
		"current_password": "nope",
		"new_password":     "brand-new-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = request(t, app, http.MethodPost, "/auth/change-password", token, fiber.Map{
		"current_password": "agent123",
		"new_password":     "brand-new-pass",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Old credential is dead, new one works
	resp = request(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"email":    "agent2@realestate.com",
		"password": "agent123",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	login(t, app, "agent2@realestate.com", "brand-new-pass")
}

func TestInactiveAccountCannotLogin(t *testing.T) {
	app, db := newTestApp(t)

	require.NoError(t, db.Model(&models.User{}).Where("id = ?", 5).
		Update("is_active", false).Error)

	resp := request(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"email":    "agent3@realestate.com",
		"password": "agent123",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
