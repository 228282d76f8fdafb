package handlers

import (
	"net/http"

	"portfolio-api/internal/services"

	"github.com/gin-gonic/gin"
)

// ListAllProjects handles GET /api/admin/projects (drafts included, uncached)
func (h *Handler) ListAllProjects(c *gin.Context) {
	projects, err := h.svc.Projects.ListAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to fetch projects")
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects, "count": len(projects)})
}

// GetProject handles GET /api/admin/projects/:id
func (h *Handler) GetProject(c *gin.Context) {
	project, err := h.svc.Projects.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to fetch project")
		return
	}
	c.JSON(http.StatusOK, project)
}

// CreateProject handles POST /api/admin/projects
func (h *Handler) CreateProject(c *gin.Context) {
	var req services.ProjectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.svc.Projects.Create(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "Failed to create project")
		return
	}

	h.publish(c, "project_created", "project", project.ID)
	c.JSON(http.StatusCreated, project)
}

// UpdateProject handles PUT /api/admin/projects/:id
func (h *Handler) UpdateProject(c *gin.Context) {
	var req services.ProjectPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.svc.Projects.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.respondError(c, err, "Failed to update project")
		return
	}

	h.publish(c, "project_updated", "project", project.ID)
	c.JSON(http.StatusOK, project)
}

// DeleteProject handles DELETE /api/admin/projects/:id
func (h *Handler) DeleteProject(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Projects.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "Failed to delete project")
		return
	}

	h.publish(c, "project_deleted", "project", id)
	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully", "id": id})
}

// ListAllPosts handles GET /api/admin/posts (drafts included, uncached)
func (h *Handler) ListAllPosts(c *gin.Context) {
	posts, err := h.svc.Posts.ListAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to fetch posts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts, "count": len(posts)})
}

// CreatePost handles POST /api/admin/posts
func (h *Handler) CreatePost(c *gin.Context) {
	var req services.PostInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.svc.Posts.Create(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "Failed to create post")
		return
	}

	h.publish(c, "post_created", "post", post.ID)
	c.JSON(http.StatusCreated, post)
}

// UpdatePost handles PUT /api/admin/posts/:id
func (h *Handler) UpdatePost(c *gin.Context) {
	var req services.PostPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.svc.Posts.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.respondError(c, err, "Failed to update post")
		return
	}

	h.publish(c, "post_updated", "post", post.ID)
	c.JSON(http.StatusOK, post)
}

// DeletePost handles DELETE /api/admin/posts/:id
func (h *Handler) DeletePost(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Posts.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "Failed to delete post")
		return
	}

	h.publish(c, "post_deleted", "post", id)
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully", "id": id})
}

// CreateTechnology handles POST /api/admin/technologies
func (h *Handler) CreateTechnology(c *gin.Context) {
	var req services.TechnologyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tech, err := h.svc.Technologies.Create(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "Failed to create technology")
		return
	}

	h.publish(c, "technology_created", "technology", tech.ID)
	c.JSON(http.StatusCreated, tech)
}

// DeleteTechnology handles DELETE /api/admin/technologies/:id
func (h *Handler) DeleteTechnology(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Technologies.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "Failed to delete technology")
		return
	}

	h.publish(c, "technology_deleted", "technology", id)
	c.JSON(http.StatusOK, gin.H{"message": "Technology deleted successfully", "id": id})
}

// CreateExperience handles POST /api/admin/experience
func (h *Handler) CreateExperience(c *gin.Context) {
	var req services.ExperienceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.svc.Experience.Create(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "Failed to create experience")
		return
	}

	h.publish(c, "experience_created", "experience", item.ID)
	c.JSON(http.StatusCreated, item)
}

// DeleteExperience handles DELETE /api/admin/experience/:id
func (h *Handler) DeleteExperience(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Experience.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "Failed to delete experience")
		return
	}

	h.publish(c, "experience_deleted", "experience", id)
	c.JSON(http.StatusOK, gin.H{"message": "Experience deleted successfully", "id": id})
}
