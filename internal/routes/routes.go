package routes

import (
	"net/http"

	"portfolio-api/internal/auth"
	"portfolio-api/internal/handlers"
	"portfolio-api/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func SetupRoutes(h *handlers.Handler, tokens *auth.Tokens, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery())
	ginRouter.Use(middleware.RequestLogger(logger))
	ginRouter.Use(middleware.CORS())

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Portfolio API is running",
		})
	})

	// Public routes (no authentication required); reads are served through the cache
	api := ginRouter.Group("/api")
	{
		api.POST("/login", h.Login)

		api.GET("/home", h.GetHome)
		api.GET("/projects", h.GetProjects)
		api.GET("/projects/:slug", h.GetProjectBySlug)
		api.GET("/posts", h.GetPosts)
		api.GET("/posts/:slug", h.GetPostBySlug)
		api.GET("/technologies", h.GetTechnologies)
		api.GET("/experience", h.GetExperience)
	}

	// Admin routes (authentication required); writes invalidate the cache
	admin := api.Group("/admin")
	admin.Use(middleware.JWTAuthMiddleware(tokens))
	{
		admin.GET("/me", h.Me)
		admin.GET("/ws", h.WebSocketHandler)

		admin.GET("/projects", h.ListAllProjects)
		admin.GET("/projects/:id", h.GetProject)
		admin.POST("/projects", h.CreateProject)
		admin.PUT("/projects/:id", h.UpdateProject)
		admin.DELETE("/projects/:id", h.DeleteProject)

		admin.GET("/posts", h.ListAllPosts)
		admin.POST("/posts", h.CreatePost)
		admin.PUT("/posts/:id", h.UpdatePost)
		admin.DELETE("/posts/:id", h.DeletePost)

		admin.POST("/technologies", h.CreateTechnology)
		admin.DELETE("/technologies/:id", h.DeleteTechnology)

		admin.POST("/experience", h.CreateExperience)
		admin.DELETE("/experience/:id", h.DeleteExperience)

		admin.GET("/cache/stats", h.GetCacheStats)
		admin.POST("/cache/stats/reset", h.ResetCacheStats)
		admin.POST("/cache/clear", h.ClearCache)
	}

	return ginRouter
}
