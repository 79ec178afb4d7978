package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"doabli/internal/models"
	"doabli/internal/pdf"
	"doabli/internal/services"
)

type PageHandler struct {
	service  services.PageService
	renderer pdf.Renderer
}

func NewPageHandler(service services.PageService, renderer pdf.Renderer) *PageHandler {
	return &PageHandler{service: service, renderer: renderer}
}

// GET /api/pages?projectId=
func (h *PageHandler) List(c *gin.Context) {
	projectID, ok := optionalID(c, "projectId")
	if !ok {
		return
	}
	pages, err := h.service.List(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, "[page][list]", err)
		return
	}
	if pages == nil {
		pages = []models.Page{}
	}
	c.JSON(http.StatusOK, pages)
}

func (h *PageHandler) load(c *gin.Context, tag string) (*models.Page, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return nil, false
	}
	page, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, tag, err)
		return nil, false
	}
	if page == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "page not found"})
		return nil, false
	}
	return page, true
}

// GET /api/pages/:id
func (h *PageHandler) GetByID(c *gin.Context) {
	if page, ok := h.load(c, "[page][getByID]"); ok {
		c.JSON(http.StatusOK, page)
	}
}

// POST /api/pages
func (h *PageHandler) Create(c *gin.Context) {
	var in models.PageInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "[page][create]", err)
		return
	}
	page, err := h.service.Create(c.Request.Context(), currentUserID(c), in)
	if err != nil {
		respondError(c, "[page][create]", err)
		return
	}
	c.JSON(http.StatusCreated, page)
}

// PATCH /api/pages/:id
func (h *PageHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var u models.PageUpdate
	if err := c.ShouldBindJSON(&u); err != nil {
		badRequest(c, "[page][update]", err)
		return
	}
	page, err := h.service.Update(c.Request.Context(), id, u)
	if err != nil {
		respondError(c, "[page][update]", err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// DELETE /api/pages/:id; children are detached, not removed.
func (h *PageHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "[page][delete]", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary   Export page as PDF
// @Tags      Pages
// @Produce   application/pdf
// @Param     id   path  int  true  "Page ID"
// @Success   200
// @Router    /api/pages/{id}/pdf [get]
func (h *PageHandler) PDF(c *gin.Context) {
	page, ok := h.load(c, "[page][pdf]")
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.renderer.RenderPage(&buf, page); err != nil {
		respondError(c, "[page][pdf]", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="page-%d.pdf"`, page.ID))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
