package server_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatwrapped/internal/config"
	"chatwrapped/internal/logging"
	"chatwrapped/internal/report"
	"chatwrapped/internal/server"
	"chatwrapped/internal/stats"
)

func newTestServer(t *testing.T) (*server.Server, *config.Config, *report.Store) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		AppName:   "chatwrapped-test",
		AppPort:   "0",
		StatsFile: filepath.Join(dir, "stats", "stats.json"),
	}
	store, err := report.NewStore(filepath.Join(dir, "storage", "runs.db"), logging.NewTestLogger())
	require.NoError(t, err)
	return server.New(cfg, logging.NewTestLogger(), store), cfg, store
}

func TestStatsEndpointBeforeAggregation(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["error"], "aggregate")
}

func TestStatsEndpointServesDocument(t *testing.T) {
	srv, cfg, _ := newTestServer(t)
	doc := &stats.Report{
		Year:     2025,
		Insights: map[string]string{"hero": "You had 42 conversations"},
	}
	require.NoError(t, report.WriteStats(cfg.StatsFile, doc))

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var got stats.Report
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, 2025, got.Year)
	assert.Equal(t, "You had 42 conversations", got.Insights["hero"])
}

func TestRunsEndpointListsHistory(t *testing.T) {
	srv, _, store := newTestServer(t)
	require.NoError(t, store.RecordRun(&report.Run{Year: 2024, TotalConversations: 10}))
	require.NoError(t, store.RecordRun(&report.Run{Year: 2025, TotalConversations: 99}))

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/api/runs?limit=1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Runs []report.Run `json:"runs"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Runs, 1)
	assert.Equal(t, 2025, body.Runs[0].Year)
}

func TestHealthReflectsStatsPresence(t *testing.T) {
	srv, cfg, _ := newTestServer(t)

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	var health map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "waiting_for_stats", health["status"])

	require.NoError(t, report.WriteStats(cfg.StatsFile, &stats.Report{Year: 2025}))

	resp, err = srv.App().Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "ok", health["status"])
}
