package controller_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyBrowserIsForManagers(t *testing.T) {
	app, _ := newTestApp(t)

	agentToken := login(t, app, "agent1@realestate.com", "agent123")
	resp := request(t, app, http.MethodGet, "/api/v1/properties/", agentToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	superToken := login(t, app, "supervisor@realestate.com", "super123")
	resp = request(t, app, http.MethodGet, "/api/v1/properties/", superToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	properties, ok := dataOf(t, resp).([]interface{})
	require.True(t, ok)
	assert.Len(t, properties, 4)
}

func TestPropertyFilters(t *testing.T) {
	app, _ := newTestApp(t)
	token := login(t, app, "supervisor@realestate.com", "super123")

	resp := request(t, app, http.MethodGet, "/api/v1/properties/?status=active", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	active, ok := dataOf(t, resp).([]interface{})
	require.True(t, ok)
	assert.Len(t, active, 3, "one fixture listing is pending")

	resp = request(t, app, http.MethodGet, "/api/v1/properties/?max_price=1000000&min_bedrooms=4", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	filtered, ok := dataOf(t, resp).([]interface{})
	require.True(t, ok)
	require.Len(t, filtered, 1)
	assert.Equal(t, "MLS-2024-003", filtered[0].(map[string]interface{})["mls_number"])
}

func TestGetPropertyByID(t *testing.T) {
	app, _ := newTestApp(t)
	token := login(t, app, "admin@realestate.com", "admin123")

	resp := request(t, app, http.MethodGet, "/api/v1/properties/1", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	property, ok := dataOf(t, resp).(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "MLS-2024-001", property["mls_number"])

	resp = request(t, app, http.MethodGet, "/api/v1/properties/999", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
