package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"portfolio-api/internal/models"
	"portfolio-api/internal/services"

	"github.com/stretchr/testify/require"
)

func TestGetProjects_ServedFromCache(t *testing.T) {
	app := newTestApp(t)
	_, err := app.svc.Projects.Create(t.Context(), services.ProjectInput{Title: "Alpha", Published: true, Featured: true})
	require.NoError(t, err)
	app.caches.Monitor().Reset()

	w := app.do(t, http.MethodGet, "/api/projects?featured=true", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	w = app.do(t, http.MethodGet, "/api/projects?featured=true", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Projects []models.Project `json:"projects"`
		Count    int              `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	require.Equal(t, "alpha", resp.Projects[0].Slug)

	stats := app.caches.Monitor().Stats()
	require.Equal(t, int64(1), stats.Hits)
	require.Equal(t, int64(1), stats.Misses)
}

func TestGetProjects_BadFeaturedParam(t *testing.T) {
	app := newTestApp(t)
	w := app.do(t, http.MethodGet, "/api/projects?featured=maybe", nil, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProjectBySlug_NotFound(t *testing.T) {
	app := newTestApp(t)
	w := app.do(t, http.MethodGet, "/api/projects/nope", nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetPosts_Pagination(t *testing.T) {
	app := newTestApp(t)
	for _, title := range []string{"One", "Two", "Three"} {
		_, err := app.svc.Posts.Create(t.Context(), services.PostInput{Title: title, Published: true})
		require.NoError(t, err)
	}

	w := app.do(t, http.MethodGet, "/api/posts?page=2&limit=2", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var page services.PostPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Equal(t, int64(3), page.Total)
	require.Equal(t, 2, page.Page)
	require.Len(t, page.Posts, 1)
}

func TestAdminCreateProject_InvalidatesAndPublishes(t *testing.T) {
	app := newTestApp(t)
	token := app.adminToken(t)
	dashboard := &recordingClient{}
	app.hub.Register("dashboard", dashboard)

	w := app.do(t, http.MethodGet, "/api/home", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var home services.Homepage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &home))
	require.Empty(t, home.FeaturedProjects)

	w = app.do(t, http.MethodPost, "/api/admin/projects", map[string]any{
		"title":     "Portfolio API",
		"featured":  true,
		"published": true,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, "portfolio-api", created.Slug)

	w = app.do(t, http.MethodGet, "/api/home", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &home))
	require.Len(t, home.FeaturedProjects, 1)

	require.Len(t, dashboard.messages, 1)
	evt := dashboard.messages[0]
	require.Equal(t, "project_created", evt.Type)
	require.Equal(t, "project", evt.Resource)
	require.Equal(t, created.ID, evt.ID)
	require.Equal(t, 1, evt.Version)
	require.NotEmpty(t, evt.UserID)
}

func TestAdminProjectLifecycle(t *testing.T) {
	app := newTestApp(t)
	token := app.adminToken(t)

	w := app.do(t, http.MethodPost, "/api/admin/projects", map[string]any{"title": "Alpha", "published": true}, token)
	require.Equal(t, http.StatusCreated, w.Code)
	var p models.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))

	w = app.do(t, http.MethodPost, "/api/admin/projects", map[string]any{"title": "Alpha"}, token)
	require.Equal(t, http.StatusConflict, w.Code)

	w = app.do(t, http.MethodGet, "/api/projects/alpha", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodPut, "/api/admin/projects/"+p.ID, map[string]any{"published": false}, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/api/projects/alpha", nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(t, http.MethodDelete, "/api/admin/projects/"+p.ID, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	w = app.do(t, http.MethodDelete, "/api/admin/projects/"+p.ID, nil, token)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminRoutes_RequireToken(t *testing.T) {
	app := newTestApp(t)
	w := app.do(t, http.MethodPost, "/api/admin/projects", map[string]any{"title": "Alpha"}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
