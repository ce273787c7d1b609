package controller_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statsOf(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	stats, ok := dataOf(t, resp).(map[string]interface{})
	require.True(t, ok)
	return stats
}

func TestDashboardStatsForManagersCoverWholePipeline(t *testing.T) {
	app, _ := newTestApp(t)
	token := login(t, app, "admin@realestate.com", "admin123")

	resp := request(t, app, http.MethodGet, "/api/v1/dashboard/stats", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	stats := statsOf(t, resp)
	assert.EqualValues(t, 8, stats["total_leads"])
	assert.EqualValues(t, 1, stats["new_leads"])
	assert.EqualValues(t, 2, stats["contacted_leads"])
	assert.EqualValues(t, 2, stats["promising_leads"])
	assert.EqualValues(t, 1, stats["future_leads"])
	assert.EqualValues(t, 1, stats["converted_leads"])
	assert.EqualValues(t, 1, stats["lost_leads"])
	assert.InDelta(t, 12.5, stats["conversion_rate"], 0.001, "1 of 8 leads converted")
}

func TestDashboardStatsAreScopedForAgents(t *testing.T) {
	app, _ := newTestApp(t)
	token := login(t, app, "agent1@realestate.com", "agent123")

	resp := request(t, app, http.MethodGet, "/api/v1/dashboard/stats", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	stats := statsOf(t, resp)
	assert.EqualValues(t, 3, stats["total_leads"])
	assert.EqualValues(t, 2, stats["promising_leads"])
	assert.EqualValues(t, 1, stats["contacted_leads"])
	assert.EqualValues(t, 0, stats["converted_leads"])
	assert.InDelta(t, 0, stats["conversion_rate"], 0.001)
}

func TestDashboardStatsFollowStatusChanges(t *testing.T) {
	app, _ := newTestApp(t)
	token := login(t, app, "agent1@realestate.com", "agent123")

	resp := request(t, app, http.MethodPut, "/api/v1/leads/1/status", token, fiber.Map{
		"status": "converted",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = request(t, app, http.MethodGet, "/api/v1/dashboard/stats", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	stats := statsOf(t, resp)
	assert.EqualValues(t, 1, stats["converted_leads"])
	assert.EqualValues(t, 1, stats["promising_leads"])
	assert.InDelta(t, 33.3, stats["conversion_rate"], 0.001, "1 of 3 rounds to one decimal")
}

func TestRecentLeadsAreCappedAtFive(t *testing.T) {
	app, _ := newTestApp(t)
	token := login(t, app, "supervisor@realestate.com", "super123")

	resp := request(t, app, http.MethodGet, "/api/v1/dashboard/recent-leads", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	leads, ok := dataOf(t, resp).([]interface{})
	require.True(t, ok)
	assert.Len(t, leads, 5, "8 fixture leads, capped at 5")
}

func TestRecentActivitiesFollowLeadVisibilityForAgents(t *testing.T) {
	app, _ := newTestApp(t)
	supervisorToken := login(t, app, "supervisor@realestate.com", "super123")
	agentToken := login(t, app, "agent1@realestate.com", "agent123")

	// A supervisor touching the agent's lead must still show up on the
	// agent's dashboard.
	resp := request(t, app, http.MethodPut, "/api/v1/leads/1/status", supervisorToken, map[string]interface{}{
		"status": "contacted",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = request(t, app, http.MethodGet, "/api/v1/dashboard/recent-activities", agentToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	activities, ok := dataOf(t, resp).([]interface{})
	require.True(t, ok)
	require.NotEmpty(t, activities)

	// Leads 1, 2 and 7 belong to agent 1.
	sawSupervisorEntry := false
	for _, raw := range activities {
		activity := raw.(map[string]interface{})
		assert.Contains(t, []float64{1, 2, 7}, activity["lead_id"].(float64),
			"agent dashboard leaked an activity on a foreign lead")
		if activity["user_id"].(float64) == 2 {
			sawSupervisorEntry = true
		}
	}
	assert.True(t, sawSupervisorEntry, "supervisor's change on the agent's lead is missing")
}
