package handlers

import (
	"net/http"
	"strconv"

	"portfolio-api/internal/services"

	"github.com/gin-gonic/gin"
)

// GetHome handles GET /api/home
func (h *Handler) GetHome(c *gin.Context) {
	home, err := h.svc.Homepage.Get(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to load homepage")
		return
	}
	c.JSON(http.StatusOK, home)
}

/*
GetProjects handles GET /api/projects
Optional query params: featured (true|false), tech (technology slug), limit.
*/
func (h *Handler) GetProjects(c *gin.Context) {
	var filter services.ProjectFilter
	if raw := c.Query("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "featured must be true or false"})
			return
		}
		filter.Featured = &featured
	}
	filter.Technology = c.Query("tech")
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}

	projects, err := h.svc.Projects.List(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err, "Failed to fetch projects")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
		"count":    len(projects),
	})
}

// GetProjectBySlug handles GET /api/projects/:slug
func (h *Handler) GetProjectBySlug(c *gin.Context) {
	project, err := h.svc.Projects.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.respondError(c, err, "Failed to fetch project")
		return
	}
	c.JSON(http.StatusOK, project)
}

// GetPosts handles GET /api/posts?page=&limit=
func (h *Handler) GetPosts(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(services.DefaultPostLimit)))
	if err != nil {
		limit = services.DefaultPostLimit
	}

	result, err := h.svc.Posts.ListPublished(c.Request.Context(), page, limit)
	if err != nil {
		h.respondError(c, err, "Failed to fetch posts")
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetPostBySlug handles GET /api/posts/:slug
func (h *Handler) GetPostBySlug(c *gin.Context) {
	post, err := h.svc.Posts.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.respondError(c, err, "Failed to fetch post")
		return
	}
	c.JSON(http.StatusOK, post)
}

// GetTechnologies handles GET /api/technologies
func (h *Handler) GetTechnologies(c *gin.Context) {
	techs, err := h.svc.Technologies.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to fetch technologies")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"technologies": techs,
		"count":        len(techs),
	})
}

// GetExperience handles GET /api/experience
func (h *Handler) GetExperience(c *gin.Context) {
	items, err := h.svc.Experience.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to fetch experience")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"experience": items,
		"count":      len(items),
	})
}
