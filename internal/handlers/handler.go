package handlers

import (
	"errors"
	"net/http"

	"portfolio-api/internal/auth"
	"portfolio-api/internal/cache"
	"portfolio-api/internal/realtime"
	"portfolio-api/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Services bundles everything the handlers read from and write to.
type Services struct {
	Projects     *services.ProjectService
	Technologies *services.TechnologyService
	Posts        *services.PostService
	Experience   *services.ExperienceService
	Homepage     *services.HomepageService
	Users        *services.UserService
}

// Handler serves the public content API and the admin dashboard API.
type Handler struct {
	svc    Services
	caches *cache.Registry
	tokens *auth.Tokens
	hub    *realtime.Hub
	logger *zap.Logger
}

func New(svc Services, caches *cache.Registry, tokens *auth.Tokens, hub *realtime.Hub, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if hub == nil {
		hub = realtime.NewHub(logger)
	}
	return &Handler{
		svc:    svc,
		caches: caches,
		tokens: tokens,
		hub:    hub,
		logger: logger,
	}
}

// respondError maps service errors to status codes. Anything unexpected is
// logged and reported as a 500 with a generic message.
func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
	default:
		_ = c.Error(err)
		h.logger.Error(fallback, zap.Error(err), zap.String("path", c.FullPath()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// publish tells connected dashboards that a resource changed.
func (h *Handler) publish(c *gin.Context, eventType, resource, id string) {
	h.hub.Publish(realtime.Event{
		Type:     eventType,
		Resource: resource,
		ID:       id,
		UserID:   c.GetString("user_id"),
	})
}
