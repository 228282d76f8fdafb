package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"portfolio-api/internal/auth"
	"portfolio-api/internal/cache"
	"portfolio-api/internal/middleware"
	"portfolio-api/internal/realtime"
	"portfolio-api/internal/services"
	"portfolio-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type recordingClient struct {
	mu       sync.Mutex
	messages []realtime.Event
}

func (c *recordingClient) Send(message []byte) bool {
	var evt realtime.Event
	if err := json.Unmarshal(message, &evt); err != nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, evt)
	return true
}

func (c *recordingClient) Close() {}

type testApp struct {
	router *gin.Engine
	caches *cache.Registry
	tokens *auth.Tokens
	hub    *realtime.Hub
	svc    Services
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	caches, _ := testutil.NewRegistry(t)

	svc := Services{
		Projects:     services.NewProjectService(db, caches),
		Technologies: services.NewTechnologyService(db, caches),
		Posts:        services.NewPostService(db, caches),
		Experience:   services.NewExperienceService(db, caches),
		Users:        services.NewUserService(db, caches),
	}
	svc.Homepage = services.NewHomepageService(caches, svc.Projects, svc.Posts, svc.Experience, svc.Technologies)

	tokens := auth.NewTokens("test-secret", "portfolio-api", "portfolio-admin")
	hub := realtime.NewHub(nil)
	h := New(svc, caches, tokens, hub, nil)

	r := gin.New()
	r.POST("/api/login", h.Login)
	r.GET("/api/projects", h.GetProjects)
	r.GET("/api/projects/:slug", h.GetProjectBySlug)
	r.GET("/api/posts", h.GetPosts)
	r.GET("/api/home", h.GetHome)

	admin := r.Group("/api/admin")
	admin.Use(middleware.JWTAuthMiddleware(tokens))
	admin.GET("/me", h.Me)
	admin.GET("/ws", h.WebSocketHandler)
	admin.POST("/projects", h.CreateProject)
	admin.PUT("/projects/:id", h.UpdateProject)
	admin.DELETE("/projects/:id", h.DeleteProject)
	admin.POST("/posts", h.CreatePost)
	admin.POST("/technologies", h.CreateTechnology)
	admin.GET("/cache/stats", h.GetCacheStats)
	admin.POST("/cache/clear", h.ClearCache)

	return &testApp{router: r, caches: caches, tokens: tokens, hub: hub, svc: svc}
}

func (a *testApp) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) adminToken(t *testing.T) string {
	t.Helper()
	_, err := a.svc.Users.EnsureAdmin(t.Context(), "admin", "s3cret")
	require.NoError(t, err)

	w := a.do(t, http.MethodPost, "/api/login", map[string]string{"username": "admin", "password": "s3cret"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}
