package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"doabli/internal/models"
	"doabli/internal/services"
)

type ProjectHandler struct {
	service services.ProjectService
}

func NewProjectHandler(service services.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	owner := c.Query("ownerId")
	projects, err := h.service.List(c.Request.Context(), owner)
	if err != nil {
		respondError(c, "[project][list]", err)
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}
	c.JSON(http.StatusOK, projects)
}

// GET /api/projects/:id
func (h *ProjectHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, "[project][getByID]", err)
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary   Create project
// @Tags      Projects
// @Accept    json
// @Produce   json
// @Param     body  body      models.ProjectInput  true  "Project"
// @Success   201   {object}  models.Project
// @Router    /api/projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var in models.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "[project][create]", err)
		return
	}
	p, err := h.service.Create(c.Request.Context(), currentUserID(c), in)
	if err != nil {
		respondError(c, "[project][create]", err)
		return
	}
	log.Printf("[project][create][ok] id=%d owner=%s", p.ID, p.OwnerID)
	c.JSON(http.StatusCreated, p)
}

// PATCH /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var u models.ProjectUpdate
	if err := c.ShouldBindJSON(&u); err != nil {
		badRequest(c, "[project][update]", err)
		return
	}
	p, err := h.service.Update(c.Request.Context(), id, u)
	if err != nil {
		respondError(c, "[project][update]", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DELETE /api/projects/:id removes the project with its tasks, pages, members and automations.
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "[project][delete]", err)
		return
	}
	log.Printf("[project][delete][ok] id=%d", id)
	c.Status(http.StatusNoContent)
}
