package controller_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportSummaryIsAdminOnly(t *testing.T) {
	app, _ := newTestApp(t)

	for _, creds := range [][2]string{
		{"supervisor@realestate.com", "super123"},
		{"agent1@realestate.com", "agent123"},
	} {
		token := login(t, app, creds[0], creds[1])
		resp := request(t, app, http.MethodGet, "/api/v1/reports/summary", token, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, "%s must not see reports", creds[0])
	}

	token := login(t, app, "admin@realestate.com", "admin123")
	resp := request(t, app, http.MethodGet, "/api/v1/reports/summary", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAgentPerformanceIsForManagers(t *testing.T) {
	app, _ := newTestApp(t)

	agentToken := login(t, app, "agent1@realestate.com", "agent123")
	resp := request(t, app, http.MethodGet, "/api/v1/performance/agents", agentToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	superToken := login(t, app, "supervisor@realestate.com", "super123")
	resp = request(t, app, http.MethodGet, "/api/v1/performance/agents", superToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAgentPerformanceNumbers(t *testing.T) {
	app, _ := newTestApp(t)
	token := login(t, app, "supervisor@realestate.com", "super123")

	resp := request(t, app, http.MethodGet, "/api/v1/performance/agents", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, ok := dataOf(t, resp).(map[string]interface{})
	require.True(t, ok)

	agents, ok := body["agents"].([]interface{})
	require.True(t, ok)
	require.Len(t, agents, 3, "one entry per fixture agent")

	byID := map[float64]map[string]interface{}{}
	for _, raw := range agents {
		entry := raw.(map[string]interface{})
		byID[entry["agent_id"].(float64)] = entry
	}

	// Agent 3 holds three leads, none converted, three logged calls
	first := byID[3]
	require.NotNil(t, first)
	assert.EqualValues(t, 3, first["total_leads"])
	assert.EqualValues(t, 0, first["converted"])
	assert.EqualValues(t, 3, first["calls"])
	assert.InDelta(t, 0, first["conversion_rate"], 0.001)

	// Agent 4 closed one of three
	second := byID[4]
	require.NotNil(t, second)
	assert.EqualValues(t, 3, second["total_leads"])
	assert.EqualValues(t, 1, second["converted"])
	assert.InDelta(t, 33.3, second["conversion_rate"], 0.001)

	totals, ok := body["totals"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 8, totals["total_leads"])
	assert.EqualValues(t, 1, totals["total_converted"])
	assert.InDelta(t, 12.5, totals["conversion_rate"], 0.001)
}

func TestReportSummaryDistributions(t *testing.T) {
	app, _ := newTestApp(t)
	token := login(t, app, "admin@realestate.com", "admin123")

	resp := request(t, app, http.MethodGet, "/api/v1/reports/summary", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	summary, ok := dataOf(t, resp).(map[string]interface{})
	require.True(t, ok)

	assert.EqualValues(t, 8, summary["total_leads"])
	assert.EqualValues(t, 3, summary["active_agents"])
	assert.InDelta(t, 12.5, summary["conversion_rate"], 0.001)

	counts := func(key string) map[string]float64 {
		items, ok := summary[key].([]interface{})
		require.True(t, ok)
		out := map[string]float64{}
		for _, raw := range items {
			item := raw.(map[string]interface{})
			out[item["name"].(string)] = item["count"].(float64)
		}
		return out
	}

	sources := counts("sources")
	assert.EqualValues(t, 4, sources["website"])
	assert.EqualValues(t, 2, sources["referral"])
	assert.EqualValues(t, 2, sources["call"])

	interest := counts("interest")
	assert.EqualValues(t, 5, interest["buy"])
	assert.EqualValues(t, 3, interest["rent"])
}
