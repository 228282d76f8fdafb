package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// InvalidateRequest selects keys to drop. An empty match clears everything.
type InvalidateRequest struct {
	Match string `json:"match"`
}

// GetCacheStats handles GET /api/admin/cache/stats
func (h *Handler) GetCacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"instances":  h.caches.Stats(),
		"monitor":    h.caches.Monitor().Stats(),
		"dashboards": h.hub.Connections(),
	})
}

// ClearCache handles POST /api/admin/cache/clear
// With a {"match": "..."} body only keys containing it are dropped.
func (h *Handler) ClearCache(c *gin.Context) {
	var req InvalidateRequest
	// an empty body means clear everything; anything else must parse
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request. Expected {\"match\": \"...\"} or an empty body."})
		return
	}

	match := strings.TrimSpace(req.Match)
	if match == "" {
		h.caches.Clear()
		h.publish(c, "cache_cleared", "cache", "")
		c.JSON(http.StatusOK, gin.H{"message": "Cache cleared"})
		return
	}

	removed := h.caches.InvalidateMatching(match)
	h.publish(c, "cache_invalidated", "cache", match)
	c.JSON(http.StatusOK, gin.H{"message": "Cache invalidated", "match": match, "removed": removed})
}

// ResetCacheStats handles POST /api/admin/cache/stats/reset
func (h *Handler) ResetCacheStats(c *gin.Context) {
	h.caches.Monitor().Reset()
	c.JSON(http.StatusOK, gin.H{"message": "Cache stats reset"})
}
