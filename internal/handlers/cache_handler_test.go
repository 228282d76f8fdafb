package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"portfolio-api/internal/cache"

	"github.com/stretchr/testify/require"
)

type cacheStatsResponse struct {
	Instances  []cache.Stats      `json:"instances"`
	Monitor    cache.MonitorStats `json:"monitor"`
	Dashboards int                `json:"dashboards"`
}

func TestCacheStats(t *testing.T) {
	app := newTestApp(t)
	token := app.adminToken(t)

	app.do(t, http.MethodGet, "/api/projects", nil, "")
	app.do(t, http.MethodGet, "/api/projects", nil, "")

	w := app.do(t, http.MethodGet, "/api/admin/cache/stats", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var resp cacheStatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Instances, 4)
	require.Equal(t, "page", resp.Instances[0].Name)
	require.Contains(t, resp.Instances[0].Keys, "project:filter:all")
	require.GreaterOrEqual(t, resp.Monitor.Hits, int64(1))
	require.Zero(t, resp.Dashboards)

	app.hub.Register("dashboard", &recordingClient{})
	w = app.do(t, http.MethodGet, "/api/admin/cache/stats", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Dashboards)
}

func TestClearCache(t *testing.T) {
	app := newTestApp(t)
	token := app.adminToken(t)

	app.caches.Page.Set("project:slug:a", 1, cache.UseDefaultTTL)
	app.caches.API.Set("post:slug:b", 2, cache.UseDefaultTTL)

	w := app.do(t, http.MethodPost, "/api/admin/cache/clear", map[string]string{"match": "project"}, token)
	require.Equal(t, http.StatusOK, w.Code)
	require.False(t, app.caches.Page.Has("project:slug:a"))
	require.True(t, app.caches.API.Has("post:slug:b"))

	w = app.do(t, http.MethodPost, "/api/admin/cache/clear", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	for _, s := range app.caches.Stats() {
		require.Zero(t, s.Size)
	}
}

func TestClearCache_MalformedBodyKeepsEntries(t *testing.T) {
	app := newTestApp(t)
	token := app.adminToken(t)

	app.caches.Page.Set("project:slug:a", 1, cache.UseDefaultTTL)
	app.caches.API.Set("post:slug:b", 2, cache.UseDefaultTTL)

	w := app.do(t, http.MethodPost, "/api/admin/cache/clear", map[string]any{"match": []string{"project"}}, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.True(t, app.caches.Page.Has("project:slug:a"))
	require.True(t, app.caches.API.Has("post:slug:b"))
}
