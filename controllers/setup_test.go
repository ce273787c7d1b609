package controller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"estatecrm/config"
	"estatecrm/models"
	"estatecrm/routes"
)

// newTestApp builds a Fiber app backed by a fresh in-memory database seeded
// with the demo fixtures.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, config.MigrateDB(db))
	require.NoError(t, models.SeedFixtures(db))

	config.DB = db
	config.AppConfig.JWTSecret = "test-secret"
	config.AppConfig.RateLimitLogin = 1000

	app := fiber.New()
	routes.SetupRoutes(app, db)
	return app, db
}

// login authenticates with fixture credentials and returns the access token.
func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()

	resp := request(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "login as %s should succeed", email)

	body := decodeBody(t, resp)
	token, ok := body["access_token"].(string)
	require.True(t, ok, "login response must carry an access token")
	return token
}

func request(t *testing.T, app *fiber.App, method, path, token string, payload interface{}) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// dataOf unwraps the "data" envelope of a success response.
func dataOf(t *testing.T, resp *http.Response) interface{} {
	t.Helper()

	body := decodeBody(t, resp)
	require.Equal(t, true, body["success"], "expected a success envelope, got %v", body)
	return body["data"]
}
